package slab

import (
	"sync"
	"unsafe"
)

var (
	defaultMu      sync.Mutex
	defaultCfg     *Config
	defaultStarted bool
	defaultOnce    sync.Once
	defaultAlloc   *Allocator
)

// Configure sets the configuration of the process-wide allocator. It must
// run before the first call to Default, Allocate or Deallocate; afterwards
// it returns ErrConfigured.
func Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultStarted {
		return ErrConfigured
	}
	defaultCfg = &cfg
	return nil
}

// Default returns the process-wide allocator, creating it on first use.
// Its arena comes from DefaultHost when a region was supplied there, and
// from the OS otherwise.
func Default() *Allocator {
	defaultOnce.Do(func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		defaultStarted = true

		cfg := DefaultConfig()
		if defaultCfg != nil {
			cfg = *defaultCfg
		}
		if cfg.Host == nil {
			cfg.Host = &DefaultHost
		}
		a, err := New(cfg)
		if err != nil {
			panic(err)
		}
		defaultAlloc = a
	})
	return defaultAlloc
}

// Allocate serves a request from the process-wide allocator.
func Allocate(size, align uintptr) unsafe.Pointer {
	return Default().Allocate(size, align)
}

// Deallocate releases a pointer obtained from Allocate with the same size
// and align.
func Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	Default().Deallocate(ptr, size, align)
}
