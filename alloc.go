package slab

import "unsafe"

// Alloc allocates a zeroed T from h. T must not contain Go pointers: the
// garbage collector does not scan slab memory.
func Alloc[T any](h Delegate) *T {
	var zero T
	size, align := unsafe.Sizeof(zero), unsafe.Alignof(zero)
	p := h.Allocate(size, align)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), size))
	return (*T)(p)
}

// AllocUninitialized is Alloc without zeroing. The contents are whatever
// the block last held, including the free-list link in its first word.
func AllocUninitialized[T any](h Delegate) *T {
	var zero T
	return (*T)(h.Allocate(unsafe.Sizeof(zero), unsafe.Alignof(zero)))
}

// Free releases a value obtained from Alloc with the same h.
func Free[T any](h Delegate, p *T) {
	if p == nil {
		return
	}
	var zero T
	h.Deallocate(unsafe.Pointer(p), unsafe.Sizeof(zero), unsafe.Alignof(zero))
}

// AllocSlice allocates a zeroed slice of n elements from h. It returns nil
// if n <= 0 or the fallback fails.
func AllocSlice[T any](h Delegate, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elem := unsafe.Sizeof(zero)
	if elem != 0 && uintptr(n) > ^uintptr(0)/elem {
		return nil
	}
	size, align := elem*uintptr(n), unsafe.Alignof(zero)
	p := h.Allocate(size, align)
	if p == nil {
		return nil
	}
	clear(unsafe.Slice((*byte)(p), size))
	return unsafe.Slice((*T)(p), n)
}

// FreeSlice releases a slice obtained from AllocSlice. s must have the
// length it was allocated with.
func FreeSlice[T any](h Delegate, s []T) {
	if len(s) == 0 {
		return
	}
	var zero T
	h.Deallocate(unsafe.Pointer(unsafe.SliceData(s)), unsafe.Sizeof(zero)*uintptr(len(s)), unsafe.Alignof(zero))
}
