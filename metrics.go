package slab

// ClassStats describes one size class.
type ClassStats struct {
	Size     uintptr `json:"size"`
	Capacity uintptr `json:"capacity"`
	Blocks   int     `json:"blocks"`    // blocks in the class region
	Free     int     `json:"free"`      // blocks on the global free list
	Refills  uint64  `json:"refills"`   // batches moved to caches
	Flushes  uint64  `json:"flushes"`   // batches moved back by deallocation
	Exhaust  uint64  `json:"exhausted"` // requests sent to the fallback on an empty list
}

// InUse returns the blocks not on the global list: handed out or sitting
// in some cache.
func (s ClassStats) InUse() int {
	return s.Blocks - s.Free
}

// Utilization returns InUse as a fraction of Blocks (0.0 to 1.0).
func (s ClassStats) Utilization() float64 {
	if s.Blocks == 0 {
		return 0
	}
	return float64(s.InUse()) / float64(s.Blocks)
}

// Stats is a snapshot of allocator counters. Counters are read one at a
// time, so a snapshot taken under load is not a consistent cut.
type Stats struct {
	Ready          bool         `json:"ready"`
	Source         string       `json:"source,omitempty"`
	ArenaSize      uintptr      `json:"arena_size"`
	Classes        []ClassStats `json:"classes"`
	Delegated      uint64       `json:"delegated"`
	DelegatedFrees uint64       `json:"delegated_frees"`
}

// Stats returns a snapshot of a's counters. It does not build the arena.
func (a *Allocator) Stats() Stats {
	s := Stats{
		Classes:        make([]ClassStats, len(a.classes)),
		Delegated:      a.delegated.Load(),
		DelegatedFrees: a.delegatedFrees.Load(),
	}
	ar := a.arena.Load()
	if ar != nil {
		s.Ready, s.Source, s.ArenaSize = true, ar.source, ar.size
	}
	for i, c := range a.classes {
		cs := ClassStats{Size: c.Size, Capacity: c.Capacity, Blocks: c.Blocks(), Free: c.Blocks()}
		if ar != nil {
			g := &ar.regions[i]
			cs.Free = int(g.free.Load())
			cs.Refills = g.refills.Load()
			cs.Flushes = g.flushes.Load()
			cs.Exhaust = g.exhausted.Load()
		}
		s.Classes[i] = cs
	}
	return s
}
