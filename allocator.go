package slab

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// MaxShards caps the number of shard caches behind Allocator.Allocate and
// Allocator.Deallocate. An Allocator uses min(GOMAXPROCS, MaxShards).
const MaxShards = 32

// Allocator serves small fixed-size blocks from a lazily built arena and
// forwards everything else to its fallback Delegate.
//
// Each size class owns one lock-free global free list. Goroutines reach it
// through a Cache, which keeps up to FlushThreshold-1 free blocks per class
// and trades with the global list BatchSize blocks at a time.
type Allocator struct {
	classes  []Class
	table    classTable
	fallback Delegate
	host     *HostRegion
	log      *slog.Logger

	once  sync.Once
	arena atomic.Pointer[arena]

	// shards serve callers without a Cache of their own. They live as long
	// as the Allocator, so the blocks they hold stay bounded.
	shards []SharedCache
	next   atomic.Uint32

	delegated      atomic.Uint64
	delegatedFrees atomic.Uint64
}

// New returns an Allocator for cfg. The arena is not built until the first
// Allocate or Deallocate.
func New(cfg Config) (*Allocator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	fallback := cfg.Fallback
	if fallback == nil {
		d, err := cfg.Backend.Delegate()
		if err != nil {
			return nil, err
		}
		fallback = d
	}

	a := &Allocator{
		classes:  cfg.Classes,
		table:    newClassTable(cfg.Classes),
		fallback: fallback,
		host:     cfg.Host,
		log:      cfg.Logger,
	}
	a.shards = make([]SharedCache, min(runtime.GOMAXPROCS(0), MaxShards))
	for i := range a.shards {
		a.shards[i].c = a.NewCache()
	}
	return a, nil
}

// init builds the arena exactly once. Concurrent first callers wait for
// the winner.
func (a *Allocator) init() *arena {
	a.once.Do(func() {
		a.arena.Store(newArena(a.classes, a.host, a.fallback, a.log))
	})
	return a.arena.Load()
}

// Resolve returns the class serving a request, or false when the request
// goes to the fallback.
func (a *Allocator) Resolve(size, align uintptr) (int, bool) {
	return a.table.resolve(size, align)
}

// Classes returns a copy of the size-class table.
func (a *Allocator) Classes() []Class {
	return append([]Class(nil), a.classes...)
}

// Contains reports whether p points into the arena. It is false before
// the arena is built.
func (a *Allocator) Contains(p unsafe.Pointer) bool {
	ar := a.arena.Load()
	return ar != nil && ar.contains(p)
}

// NewCache returns an empty cache bound to a. A Cache must not be used by
// more than one goroutine at a time.
func (a *Allocator) NewCache() *Cache {
	return &Cache{a: a, lists: make([]list, len(a.classes))}
}

// Allocate serves one request through a shared shard cache. Callers on a
// hot path should hold their own Cache instead.
func (a *Allocator) Allocate(size, align uintptr) unsafe.Pointer {
	s := a.shard()
	p := s.c.Allocate(size, align)
	s.mu.Unlock()
	return p
}

// Deallocate releases p through a shared shard cache.
func (a *Allocator) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	s := a.shard()
	s.c.Deallocate(ptr, size, align)
	s.mu.Unlock()
}

// Shards returns the number of shard caches behind Allocate and
// Deallocate. Together they hold at most Shards()*(FlushThreshold-1)
// free blocks per class.
func (a *Allocator) Shards() int {
	return len(a.shards)
}

// Drain returns the blocks held by the shard caches to the global lists.
func (a *Allocator) Drain() {
	for i := range a.shards {
		a.shards[i].Close()
	}
}

// shard returns a locked shard, preferring one no other goroutine holds.
func (a *Allocator) shard() *SharedCache {
	n := uint32(len(a.shards))
	start := a.next.Add(1)
	for i := uint32(0); i < n; i++ {
		s := &a.shards[(start+i)%n]
		if s.mu.TryLock() {
			return s
		}
	}
	s := &a.shards[start%n]
	s.mu.Lock()
	return s
}

func (a *Allocator) delegate(size, align uintptr) unsafe.Pointer {
	a.delegated.Add(1)
	return a.fallback.Allocate(size, align)
}

func (a *Allocator) delegateFree(ptr unsafe.Pointer, size, align uintptr) {
	a.delegatedFrees.Add(1)
	a.fallback.Deallocate(ptr, size, align)
}

// exhausted records a refill that found the global list empty.
func (a *Allocator) exhausted(class int, g *region) {
	g.exhausted.Add(1)
	if !g.warned.Load() && g.warned.CompareAndSwap(false, true) {
		a.log.Warn("slab: class exhausted, using fallback",
			"class", class,
			"size", g.size,
			"blocks", g.blocks)
	}
}
