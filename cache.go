package slab

import "unsafe"

// Cache is a private stash of free blocks, one list per size class. It
// plays the role a per-thread cache plays in a C allocator: the owning
// goroutine pops and pushes without synchronization and only touches the
// shared global lists to refill or flush a batch.
//
// A Cache is not safe for concurrent use. A Cache dropped without Close
// keeps the blocks it holds, at most FlushThreshold-1 per class, out of
// circulation for good.
type Cache struct {
	a     *Allocator
	ar    *arena
	lists []list
}

// list is a singly linked chain through the free blocks themselves.
// count always equals the number of blocks reachable from head, and the
// last block's link is 0.
type list struct {
	head  ref
	count int
}

func (c *Cache) arena() *arena {
	if c.ar == nil {
		c.ar = c.a.init()
	}
	return c.ar
}

// Allocate returns at least size bytes aligned to align. Eligible requests
// come from the cache, refilled from the global list when empty; the rest,
// and any request whose class is exhausted, go to the fallback. It returns
// nil only when the fallback does.
func (c *Cache) Allocate(size, align uintptr) unsafe.Pointer {
	class, ok := c.a.table.resolve(size, align)
	if !ok {
		return c.a.delegate(size, align)
	}
	g := &c.arena().regions[class]
	l := &c.lists[class]
	if l.count == 0 && !c.refill(g, l) {
		c.a.exhausted(class, g)
		return c.a.delegate(size, align)
	}
	r := l.head
	l.head = g.link(r)
	l.count--
	return g.addr(r)
}

// Deallocate releases ptr, which must come from Allocate with the same
// size and align on any Cache of the same Allocator. Arena blocks land in
// this cache; a batch goes back to the global list once the class holds
// FlushThreshold blocks. A nil ptr is ignored.
func (c *Cache) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	if ptr == nil {
		return
	}
	class, ok := c.a.table.resolve(size, align)
	if !ok {
		c.a.delegateFree(ptr, size, align)
		return
	}
	ar := c.arena()
	if !ar.contains(ptr) {
		c.a.delegateFree(ptr, size, align)
		return
	}
	g := &ar.regions[class]
	l := &c.lists[class]
	r := g.refOf(ptr)
	g.setLink(r, l.head)
	l.head = r
	l.count++
	if l.count >= FlushThreshold {
		c.flush(g, l)
	}
}

// refill replaces an empty list with a batch from the global list.
func (c *Cache) refill(g *region, l *list) bool {
	first, _, n := g.popBatch(BatchSize)
	if n == 0 {
		return false
	}
	l.head, l.count = first, n
	return true
}

// flush moves the BatchSize most recently freed blocks to the global list.
func (c *Cache) flush(g *region, l *list) {
	first, last := l.head, l.head
	for i := 1; i < BatchSize; i++ {
		last = g.link(last)
	}
	l.head = g.link(last)
	l.count -= BatchSize
	g.pushBatch(first, last, BatchSize)
	g.flushes.Add(1)
}

// Cached returns the number of free blocks the cache holds for class.
func (c *Cache) Cached(class int) int {
	if class < 0 || class >= len(c.lists) {
		return 0
	}
	return c.lists[class].count
}

// Close returns every cached block to the global lists. The cache stays
// usable.
func (c *Cache) Close() {
	if c.ar == nil {
		return
	}
	for i := range c.lists {
		l := &c.lists[i]
		if l.count == 0 {
			continue
		}
		g := &c.ar.regions[i]
		last := l.head
		for j := 1; j < l.count; j++ {
			last = g.link(last)
		}
		g.pushBatch(l.head, last, l.count)
		l.head, l.count = 0, 0
	}
}
