package slab

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"gopkg.in/yaml.v3"
)

// Delegate is the allocator behind the slab: it serves every request the
// size classes do not. Allocate returns nil when it cannot satisfy the
// request; Deallocate receives the same size and align that were passed
// to Allocate.
type Delegate interface {
	Allocate(size, align uintptr) unsafe.Pointer
	Deallocate(ptr unsafe.Pointer, size, align uintptr)
}

// Backend selects a built-in Delegate.
type Backend int

const (
	// BackendSystem allocates from the Go runtime heap. Deallocate is a
	// no-op; memory is reclaimed once no unsafe.Pointer refers to it.
	BackendSystem Backend = iota
	// BackendPages maps anonymous pages for every request.
	BackendPages
	// BackendLibc uses C malloc and free. It needs cgo.
	BackendLibc
)

var backendNames = [...]string{
	BackendSystem: "system",
	BackendPages:  "pages",
	BackendLibc:   "libc",
}

func (b Backend) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}
	return backendNames[b]
}

// ParseBackend converts a backend name as printed by String.
func ParseBackend(s string) (Backend, error) {
	for i, name := range backendNames {
		if strings.EqualFold(s, name) {
			return Backend(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBackend, s)
}

func (b Backend) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(backendNames) {
		return nil, fmt.Errorf("%w: %d", ErrBackend, int(b))
	}
	return []byte(b.String()), nil
}

func (b *Backend) UnmarshalText(text []byte) error {
	v, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b *Backend) UnmarshalYAML(node *yaml.Node) error {
	return b.UnmarshalText([]byte(node.Value))
}

// Resolve returns the backend actually used on this platform. Windows
// always gets BackendSystem, as does any backend that is not built into
// the current binary.
func (b Backend) Resolve() Backend {
	if forceSystem {
		return BackendSystem
	}
	switch b {
	case BackendPages:
		if !havePages {
			return BackendSystem
		}
	case BackendLibc:
		if !haveLibc {
			return BackendSystem
		}
	}
	return b
}

// Delegate returns the allocator implementing the resolved backend.
func (b Backend) Delegate() (Delegate, error) {
	if b < 0 || int(b) >= len(backendNames) {
		return nil, fmt.Errorf("%w: %d", ErrBackend, int(b))
	}
	switch b.Resolve() {
	case BackendPages:
		return pageHeap{}, nil
	case BackendLibc:
		return libcHeap{}, nil
	default:
		return systemHeap{}, nil
	}
}

// systemHeap hands out Go-allocated byte slices. The memory is invisible
// to the garbage collector's pointer scan, so it must not hold the only
// reference to a Go object.
type systemHeap struct{}

func (systemHeap) Allocate(size, align uintptr) unsafe.Pointer {
	if size > math.MaxInt-align-MaxAlign {
		return nil
	}
	if align <= MaxAlign {
		n := alignUp(size, MaxAlign)
		if n == 0 {
			n = MaxAlign
		}
		return unsafe.Pointer(unsafe.SliceData(make([]byte, n)))
	}
	p := unsafe.Pointer(unsafe.SliceData(make([]byte, size+align)))
	return unsafe.Add(p, alignUp(uintptr(p), align)-uintptr(p))
}

func (systemHeap) Deallocate(unsafe.Pointer, uintptr, uintptr) {}

// alignUp rounds n up to a multiple of align, a power of two.
func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
