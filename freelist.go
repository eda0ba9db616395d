package slab

import (
	"sync/atomic"
	"unsafe"
)

// A ref names a block inside one class region: block i is ref i+1 and 0 is
// the nil link. Free blocks store the ref of their successor in their first
// word; nothing else in this package reads or writes block memory.
type ref = uint32

const maxRef = 1<<32 - 1

// cacheLine pads shared heads apart.
const cacheLine = 64

// region is the slice of the arena serving one size class, together with
// its global free list.
type region struct {
	base   unsafe.Pointer
	size   uintptr
	blocks uint32

	// head packs the list head ref in the low 32 bits and a modification tag
	// in the high 32 bits. Every successful CAS bumps the tag, so a head that
	// was detached and pushed back between a load and a CAS is not mistaken
	// for the one that was loaded.
	head atomic.Uint64

	free      atomic.Int64
	refills   atomic.Uint64
	flushes   atomic.Uint64
	exhausted atomic.Uint64
	warned    atomic.Bool

	_ [cacheLine]byte
}

func pack(r ref, tag uint32) uint64 { return uint64(tag)<<32 | uint64(r) }

func unpack(v uint64) (ref, uint32) { return ref(v), uint32(v >> 32) }

// addr returns the address of block r.
func (g *region) addr(r ref) unsafe.Pointer {
	return unsafe.Add(g.base, uintptr(r-1)*g.size)
}

// refOf returns the ref of the block at p. p must lie inside the region.
func (g *region) refOf(p unsafe.Pointer) ref {
	return ref((uintptr(p)-uintptr(g.base))/g.size) + 1
}

func (g *region) word(r ref) *uint64 {
	return (*uint64)(g.addr(r))
}

// link reads the successor of r.
//
// A refill may read the link of a block that another cache has just taken
// and overwritten. Such a value is discarded when the CAS that follows
// fails, but it must never lead the walk outside the region.
func (g *region) link(r ref) ref {
	next := atomic.LoadUint64(g.word(r))
	if next > uint64(g.blocks) {
		return 0
	}
	return ref(next)
}

func (g *region) setLink(r, next ref) {
	atomic.StoreUint64(g.word(r), uint64(next))
}

// thread links every block of the region into the global list so that
// popping from the head yields ascending addresses. It runs before the
// region is published.
func (g *region) thread() {
	var head ref
	for r := ref(g.blocks); r > 0; r-- {
		g.setLink(r, head)
		head = r
	}
	g.head.Store(pack(head, 0))
	g.free.Store(int64(g.blocks))
}

// popBatch detaches up to max blocks from the global list and returns the
// first and last refs of the chain and its length. The last block's link is
// cleared. It returns n == 0 when the list is empty.
func (g *region) popBatch(max int) (first, last ref, n int) {
	for {
		old := g.head.Load()
		h, tag := unpack(old)
		if h == 0 {
			return 0, 0, 0
		}
		first, last, n = h, h, 1
		next := g.link(last)
		for n < max && next != 0 {
			last = next
			n++
			next = g.link(last)
		}
		if g.head.CompareAndSwap(old, pack(next, tag+1)) {
			g.setLink(last, 0)
			g.free.Add(int64(-n))
			g.refills.Add(1)
			return first, last, n
		}
	}
}

// pushBatch prepends the chain first..last of n blocks to the global list.
func (g *region) pushBatch(first, last ref, n int) {
	for {
		old := g.head.Load()
		head, tag := unpack(old)
		g.setLink(last, head)
		if g.head.CompareAndSwap(old, pack(first, tag+1)) {
			g.free.Add(int64(n))
			return
		}
	}
}
