//go:build linux || darwin || freebsd

package slab

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const havePages = true

var pageSize = uintptr(unix.Getpagesize())

// pageHeap maps a fresh anonymous region per request. Alignments beyond
// the page size are not served.
type pageHeap struct{}

func (pageHeap) Allocate(size, align uintptr) unsafe.Pointer {
	if align > pageSize {
		return nil
	}
	n := roundPages(size)
	if n == 0 || n > uintptr(int(^uint(0)>>1)) {
		return nil
	}
	b, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

func (pageHeap) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	// Munmap only accepts the exact slice Mmap returned; rebuilding it from
	// the base and the rounded length reproduces it.
	_ = unix.Munmap(unsafe.Slice((*byte)(ptr), roundPages(size)))
}

// roundPages rounds n up to whole pages, at least one. It returns 0 on
// overflow.
func roundPages(n uintptr) uintptr {
	if n == 0 {
		return pageSize
	}
	r := alignUp(n, pageSize)
	if r < n {
		return 0
	}
	return r
}
