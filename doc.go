// Package slab implements a size-class slab allocator for small,
// fixed-size blocks under heavy concurrent allocate/free traffic.
//
// # Overview
//
// Requests of at most 1024 bytes (with the default table) and alignment
// at most 8 are served from one arena, split into a region per size class:
//
//	16, 32, 64, 128, 256, 512, 1024 bytes
//
// Every region feeds a lock-free global free list. Goroutines do not touch
// those lists per request; they go through a Cache, which pops and pushes
// privately and trades with the global list 64 blocks at a time. Anything
// else is forwarded, unchanged, to a fallback Delegate.
//
// # Basic Usage
//
//	a, err := slab.New(slab.Config{})
//	if err != nil {
//		return err
//	}
//	c := a.NewCache() // one per goroutine
//	defer c.Close()
//
//	p := c.Allocate(64, 8)
//	// ... use the 64 bytes at p ...
//	c.Deallocate(p, 64, 8)
//
// Callers without a cache of their own can use a.Allocate and
// a.Deallocate, or the package-level Allocate and Deallocate on the
// process-wide Default allocator. Both lock one of a fixed set of shard
// caches per call, so the free blocks parked outside the global lists stay
// bounded by Shards()*(FlushThreshold-1) per class; Drain returns them.
//
// Typed helpers wrap the raw calls:
//
//	v := slab.Alloc[point](c)
//	defer slab.Free(c, v)
//
// # Memory Layout
//
// The arena is reserved once, on the first Allocate or Deallocate, and is
// never released. It comes from an anonymous OS mapping, or from a region
// a host handed over through HostRegion before first use. Each free block
// stores the link to the next free block in its first word; blocks need no
// header while they are handed out.
//
// Popping a fresh class list yields ascending addresses, so a first burst
// of allocations touches memory sequentially.
//
// # Contract
//
// Deallocate must receive the size and align passed to Allocate. Freeing a
// foreign pointer, freeing twice or passing a different layout is
// undefined and not detected. Slab memory is not scanned by the garbage
// collector: it must not hold the only reference to a Go object.
//
// # Fallback
//
// Oversized, over-aligned and exhausted requests go to the fallback
// Delegate: the Go heap (BackendSystem), one anonymous mapping per request
// (BackendPages) or C malloc (BackendLibc, needs cgo). Windows always uses
// BackendSystem. A failing fallback returns nil, which is passed through.
//
// The Backend set is closed and small on purpose: any other allocator is
// plugged in as a Delegate through Config.Fallback.
//
// # Metrics
//
//	s := a.Stats()
//	for _, cs := range s.Classes {
//		fmt.Printf("%5d: %.2f%% in use\n", cs.Size, cs.Utilization()*100)
//	}
package slab
