//go:build cgo && !windows

package slab

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

const haveLibc = true

// mallocAlign is the alignment malloc guarantees on 64-bit platforms.
const mallocAlign = 16

type libcHeap struct{}

func (libcHeap) Allocate(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	if align <= mallocAlign {
		return C.malloc(C.size_t(size))
	}
	var p unsafe.Pointer
	if C.posix_memalign(&p, C.size_t(align), C.size_t(size)) != 0 {
		return nil
	}
	return p
}

func (libcHeap) Deallocate(ptr unsafe.Pointer, _, _ uintptr) {
	C.free(ptr)
}
