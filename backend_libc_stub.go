//go:build !cgo || windows

package slab

import "unsafe"

const haveLibc = false

// libcHeap is never selected without cgo; Backend.Resolve maps
// BackendLibc to BackendSystem.
type libcHeap struct{}

func (libcHeap) Allocate(uintptr, uintptr) unsafe.Pointer { return nil }

func (libcHeap) Deallocate(unsafe.Pointer, uintptr, uintptr) {}
