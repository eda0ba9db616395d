//go:build !linux && !darwin && !freebsd

package slab

import (
	"os"
	"unsafe"
)

const havePages = false

var pageSize = uintptr(os.Getpagesize())

// pageHeap is never selected here; Backend.Resolve maps BackendPages to
// BackendSystem.
type pageHeap struct{}

func (pageHeap) Allocate(uintptr, uintptr) unsafe.Pointer { return nil }

func (pageHeap) Deallocate(unsafe.Pointer, uintptr, uintptr) {}
