package slab

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// Arena sources reported in Stats.
const (
	SourceHost     = "host"
	SourcePages    = "pages"
	SourceDelegate = "delegate"
)

// arena is the single block of memory behind every size class. It is
// never released.
type arena struct {
	base    unsafe.Pointer
	size    uintptr
	source  string
	regions []region
}

// layout returns each class region's offset from an arena base aligned to
// the largest class size, and the total arena length.
func layout(classes []Class) (offsets []uintptr, total uintptr) {
	offsets = make([]uintptr, len(classes))
	for i, c := range classes {
		total = alignUp(total, c.Size)
		offsets[i] = total
		total += uintptr(c.Blocks()) * c.Size
	}
	return offsets, total
}

// newArena obtains the backing memory and threads every class region into
// its global free list. Any failure to obtain memory panics: there is no
// way to serve the size classes without it.
func newArena(classes []Class, host *HostRegion, fallback Delegate, log *slog.Logger) *arena {
	offsets, total := layout(classes)
	maxSize := classes[len(classes)-1].Size

	var (
		raw    unsafe.Pointer
		n      uintptr
		source string
	)
	if host != nil {
		if p, size, ok := host.take(); ok {
			raw, n, source = p, size, SourceHost
		}
	}
	if raw == nil {
		n = total + maxSize
		raw, source = reserve(n, fallback)
		if raw == nil {
			panic(fmt.Errorf("%w: %d bytes from %s", ErrReserve, n, source))
		}
	}

	pad := alignUp(uintptr(raw), maxSize) - uintptr(raw)
	if n < pad || n-pad < total {
		panic(fmt.Errorf("%w: have %d bytes, need %d", ErrRegionTooSmall, n, total+pad))
	}

	a := &arena{
		base:    unsafe.Add(raw, pad),
		size:    total,
		source:  source,
		regions: make([]region, len(classes)),
	}
	for i, c := range classes {
		g := &a.regions[i]
		g.base = unsafe.Add(a.base, offsets[i])
		g.size = c.Size
		g.blocks = uint32(c.Blocks())
		g.thread()
	}

	log.Info("slab: arena ready",
		"source", source,
		"base", fmt.Sprintf("%#x", uintptr(a.base)),
		"size", a.size,
		"classes", len(classes))
	return a
}

// reserve obtains n bytes of page-aligned memory: straight from the OS
// where anonymous mappings are available, from the fallback otherwise.
// On mmap platforms an injected Config.Fallback never backs the arena.
func reserve(n uintptr, fallback Delegate) (unsafe.Pointer, string) {
	if havePages {
		return pageHeap{}.Allocate(n, pageSize), SourcePages
	}
	return fallback.Allocate(n, pageSize), SourceDelegate
}

// contains reports whether p points into the arena.
func (a *arena) contains(p unsafe.Pointer) bool {
	return uintptr(p)-uintptr(a.base) < a.size
}
