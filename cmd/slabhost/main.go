//go:build cgo

// Command slabhost builds the process-wide slab allocator as a C shared
// library:
//
//	go build -buildmode=c-shared -o libslab.so ./cmd/slabhost
//
// A host that wants the arena placed in its own memory calls
// slab_supply_region (or slab_supply_region_aligned) before the first
// slab_allocate. The fallback is the C heap, so no pointer handed across
// the boundary refers to Go-managed memory. SLAB_CONFIG names an optional
// YAML configuration read at load time.
package main

// #include <stddef.h>
import "C"

import (
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/pavanmanishd/slab"
)

func init() {
	cfg, err := loadConfig(os.Getenv("SLAB_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "slabhost:", err)
		os.Exit(1)
	}
	if err := slab.Configure(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "slabhost:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (slab.Config, error) {
	cfg := slab.DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return slab.Config{}, err
		}
		defer f.Close()
		if cfg, err = slab.LoadConfig(f); err != nil {
			return slab.Config{}, err
		}
	}
	cfg.Backend = slab.BackendLibc
	if os.Getenv("SLAB_DEBUG") != "" {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cfg, nil
}

//export slab_supply_region
func slab_supply_region(ptr unsafe.Pointer, size uintptr) bool {
	return slab.DefaultHost.Supply(ptr, size)
}

//export slab_supply_region_aligned
func slab_supply_region_aligned(ptr unsafe.Pointer, size, align uintptr) bool {
	return slab.DefaultHost.SupplyAligned(ptr, size, align)
}

//export slab_allocate
func slab_allocate(size, align uintptr) unsafe.Pointer {
	return slab.Allocate(size, align)
}

//export slab_deallocate
func slab_deallocate(ptr unsafe.Pointer, size, align uintptr) {
	slab.Deallocate(ptr, size, align)
}

func main() {}
