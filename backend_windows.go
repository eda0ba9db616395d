package slab

// Windows always uses the Go heap as fallback.
const forceSystem = true
