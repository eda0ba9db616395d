package slab

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// smallClasses is the default size table with a reduced per-class
// capacity, so tests do not commit the full default arena.
func smallClasses(capacity uintptr) []Class {
	classes := DefaultClasses()
	for i := range classes {
		classes[i].Capacity = capacity
	}
	return classes
}

func newTestAllocator(t *testing.T, cfg Config) *Allocator {
	t.Helper()
	if cfg.Classes == nil {
		cfg.Classes = smallClasses(64 << 10)
	}
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

// countingDelegate wraps the Go heap and records traffic.
type countingDelegate struct {
	mu     sync.Mutex
	allocs int
	frees  int
	fail   bool
}

func (d *countingDelegate) Allocate(size, align uintptr) unsafe.Pointer {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allocs++
	if d.fail {
		return nil
	}
	return systemHeap{}.Allocate(size, align)
}

func (d *countingDelegate) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frees++
}

func (d *countingDelegate) counts() (allocs, frees int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocs, d.frees
}

func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
