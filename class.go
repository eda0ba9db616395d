package slab

import (
	"fmt"
	"math/bits"
)

const (
	// MaxAlign is the strictest alignment the arena serves. Requests with a
	// larger alignment go to the fallback delegate.
	MaxAlign = 8

	// BatchSize is the number of blocks moved by one refill or flush.
	BatchSize = 64

	// FlushThreshold is the cache length at which a deallocation flushes a
	// batch back to the global list.
	FlushThreshold = 2 * BatchSize

	// DefaultCapacity is the per-class arena capacity of DefaultClasses.
	DefaultCapacity = 4 << 20

	// linkSize is the width of the link word stored in a free block.
	linkSize = 8
)

// Class configures one size class: the block size it serves and the number
// of arena bytes set aside for it.
type Class struct {
	Size     uintptr `yaml:"size" json:"size"`
	Capacity uintptr `yaml:"capacity" json:"capacity"`
}

// Blocks returns the number of blocks the class region holds.
func (c Class) Blocks() int {
	if c.Size == 0 {
		return 0
	}
	return int(c.Capacity / c.Size)
}

// DefaultClasses returns the 16..1024 byte power-of-two table with
// DefaultCapacity bytes per class.
func DefaultClasses() []Class {
	sizes := []uintptr{16, 32, 64, 128, 256, 512, 1024}
	classes := make([]Class, len(sizes))
	for i, s := range sizes {
		classes[i] = Class{Size: s, Capacity: DefaultCapacity}
	}
	return classes
}

// validateClasses checks that sizes are powers of two, strictly increasing,
// and that every capacity holds at least one and at most 2^32-1 blocks.
func validateClasses(classes []Class) error {
	if len(classes) == 0 {
		return ErrNoClasses
	}
	for i, c := range classes {
		if c.Size < linkSize || c.Size&(c.Size-1) != 0 {
			return fmt.Errorf("class %d (size %d): %w", i, c.Size, ErrClassSize)
		}
		if i > 0 && c.Size <= classes[i-1].Size {
			return fmt.Errorf("class %d (size %d after %d): %w", i, c.Size, classes[i-1].Size, ErrClassOrder)
		}
		if n := c.Capacity / c.Size; n == 0 || uint64(n) > maxRef {
			return fmt.Errorf("class %d (capacity %d): %w", i, c.Capacity, ErrClassCapacity)
		}
	}
	return nil
}

// classTable maps request sizes to class indices.
type classTable struct {
	sizes []uintptr
	// byShift[k] is the smallest class whose size is >= 1<<k, or -1.
	byShift [bits.UintSize + 1]int8
}

// newClassTable builds the lookup table. classes must already be valid.
func newClassTable(classes []Class) classTable {
	t := classTable{sizes: make([]uintptr, len(classes))}
	for i, c := range classes {
		t.sizes[i] = c.Size
	}
	for k := range t.byShift {
		t.byShift[k] = -1
		if k >= bits.UintSize {
			continue
		}
		want := uintptr(1) << k
		for i, s := range t.sizes {
			if s >= want {
				t.byShift[k] = int8(i)
				break
			}
		}
	}
	return t
}

// resolve returns the smallest class serving (size, align).
func (t *classTable) resolve(size, align uintptr) (int, bool) {
	if align > MaxAlign {
		return -1, false
	}
	if size <= t.sizes[0] {
		return 0, true
	}
	if size > t.sizes[len(t.sizes)-1] {
		return -1, false
	}
	idx := t.byShift[bits.Len(uint(size-1))]
	return int(idx), idx >= 0
}

// maxSize is the largest block size served.
func (t *classTable) maxSize() uintptr {
	return t.sizes[len(t.sizes)-1]
}
