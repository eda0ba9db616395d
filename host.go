package slab

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

const (
	hostEmpty uint32 = iota
	hostWriting
	hostSupplied
	hostSealed
)

// HostRegion lets an embedding host hand the allocator its backing memory
// instead of having it reserved from the OS. The first Supply wins; every
// later Supply, and any Supply after the region was consumed by an
// allocator's first use, is ignored.
//
// The supplied memory must stay valid for the life of the process and must
// not be managed by anything else.
type HostRegion struct {
	state atomic.Uint32
	ptr   unsafe.Pointer
	size  uintptr
}

// DefaultHost is the region consulted by the Default allocator.
var DefaultHost HostRegion

// Supply offers size bytes at ptr. It reports whether the region was
// accepted.
func (h *HostRegion) Supply(ptr unsafe.Pointer, size uintptr) bool {
	if ptr == nil || size == 0 {
		return false
	}
	if !h.state.CompareAndSwap(hostEmpty, hostWriting) {
		return false
	}
	h.ptr, h.size = ptr, size
	h.state.Store(hostSupplied)
	return true
}

// SupplyAligned is Supply for a host that also states the alignment of
// ptr. A region whose pointer does not honour the stated alignment is
// rejected.
func (h *HostRegion) SupplyAligned(ptr unsafe.Pointer, size, align uintptr) bool {
	if align == 0 || align&(align-1) != 0 || uintptr(ptr)&(align-1) != 0 {
		return false
	}
	return h.Supply(ptr, size)
}

// take seals the region and returns it. Only the first caller gets the
// memory; an empty region is sealed so that later Supply calls are no-ops.
func (h *HostRegion) take() (unsafe.Pointer, uintptr, bool) {
	for {
		switch h.state.Load() {
		case hostEmpty:
			if h.state.CompareAndSwap(hostEmpty, hostSealed) {
				return nil, 0, false
			}
		case hostWriting:
			runtime.Gosched()
		case hostSupplied:
			if h.state.CompareAndSwap(hostSupplied, hostSealed) {
				return h.ptr, h.size, true
			}
		default:
			return nil, 0, false
		}
	}
}
