package slab

import "errors"

var (
	// ErrNoClasses indicates a configuration without any size class.
	ErrNoClasses = errors.New("slab: no size classes configured")

	// ErrClassSize indicates a class size that is not a power of two or is
	// too small to hold a free-list link.
	ErrClassSize = errors.New("slab: class size must be a power of two >= 8")

	// ErrClassOrder indicates class sizes that are not strictly increasing.
	ErrClassOrder = errors.New("slab: class sizes must be strictly increasing")

	// ErrClassCapacity indicates a class whose capacity cannot hold a single
	// block, or holds more blocks than a free-list reference can address.
	ErrClassCapacity = errors.New("slab: invalid class capacity")

	// ErrBackend indicates an unknown fallback backend.
	ErrBackend = errors.New("slab: unknown backend")

	// ErrConfigured indicates the default allocator is already in use.
	ErrConfigured = errors.New("slab: default allocator already initialized")

	// ErrReserve indicates the arena's backing memory could not be obtained.
	ErrReserve = errors.New("slab: arena reservation failed")

	// ErrRegionTooSmall indicates a host-supplied region smaller than the
	// arena the class table needs.
	ErrRegionTooSmall = errors.New("slab: host region too small for arena")
)
