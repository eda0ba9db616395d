//go:build !windows

package slab

const forceSystem = false
