package slab

import (
	"sync"
	"unsafe"
)

// SharedCache is a mutex-protected Cache for code that cannot give every
// goroutine its own. All operations are safe for concurrent use but
// serialize on the lock.
type SharedCache struct {
	mu sync.Mutex
	c  *Cache
}

// NewSharedCache returns an empty SharedCache bound to a.
func (a *Allocator) NewSharedCache() *SharedCache {
	return &SharedCache{c: a.NewCache()}
}

// Allocate is Cache.Allocate under the lock.
func (s *SharedCache) Allocate(size, align uintptr) unsafe.Pointer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Allocate(size, align)
}

// Deallocate is Cache.Deallocate under the lock.
func (s *SharedCache) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Deallocate(ptr, size, align)
}

// Cached is Cache.Cached under the lock.
func (s *SharedCache) Cached(class int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Cached(class)
}

// Close returns every cached block to the global lists.
func (s *SharedCache) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Close()
}
