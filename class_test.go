package slab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMinimalClass(t *testing.T) {
	table := newClassTable(DefaultClasses())
	for size := uintptr(1); size <= 1024; size++ {
		for _, align := range []uintptr{0, 1, 2, 4, 8} {
			idx, ok := table.resolve(size, align)
			require.True(t, ok, "size %d align %d", size, align)
			require.GreaterOrEqual(t, table.sizes[idx], size)
			if idx > 0 {
				require.Less(t, table.sizes[idx-1], size, "size %d: class %d is not minimal", size, idx)
			}
		}
	}
}

func TestResolveBoundaries(t *testing.T) {
	table := newClassTable(DefaultClasses())
	tests := []struct {
		size  uintptr
		align uintptr
		class int
		ok    bool
	}{
		{0, 8, 0, true},
		{1, 1, 0, true},
		{16, 8, 0, true},
		{17, 8, 1, true},
		{32, 8, 1, true},
		{33, 8, 2, true},
		{64, 8, 2, true},
		{512, 8, 5, true},
		{513, 8, 6, true},
		{1024, 8, 6, true},
		{1025, 8, -1, false},
		{2048, 8, -1, false},
		{64, 16, -1, false},
		{16, 4096, -1, false},
		{^uintptr(0), 8, -1, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("size=%d/align=%d", tt.size, tt.align), func(t *testing.T) {
			idx, ok := table.resolve(tt.size, tt.align)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.class, idx)
			}
		})
	}
}

func TestResolveSparseTable(t *testing.T) {
	// A gap between 16 and 256 resolves to the next configured class.
	table := newClassTable([]Class{{Size: 16, Capacity: 4096}, {Size: 256, Capacity: 4096}})
	idx, ok := table.resolve(17, 8)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	idx, ok = table.resolve(200, 8)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	_, ok = table.resolve(257, 8)
	assert.False(t, ok)
	assert.Equal(t, uintptr(256), table.maxSize())
}

func TestValidateClasses(t *testing.T) {
	tests := []struct {
		name    string
		classes []Class
		err     error
	}{
		{"default", DefaultClasses(), nil},
		{"empty", []Class{}, ErrNoClasses},
		{"not power of two", []Class{{Size: 24, Capacity: 4096}}, ErrClassSize},
		{"smaller than link", []Class{{Size: 4, Capacity: 4096}}, ErrClassSize},
		{"zero size", []Class{{Size: 0, Capacity: 4096}}, ErrClassSize},
		{"not increasing", []Class{{Size: 64, Capacity: 4096}, {Size: 32, Capacity: 4096}}, ErrClassOrder},
		{"duplicate", []Class{{Size: 64, Capacity: 4096}, {Size: 64, Capacity: 4096}}, ErrClassOrder},
		{"capacity below size", []Class{{Size: 64, Capacity: 63}}, ErrClassCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateClasses(tt.classes)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassBlocks(t *testing.T) {
	assert.Equal(t, 4, Class{Size: 16, Capacity: 64}.Blocks())
	assert.Equal(t, 3, Class{Size: 16, Capacity: 63}.Blocks())
	assert.Equal(t, 0, Class{}.Blocks())
	for _, c := range DefaultClasses() {
		assert.Equal(t, int(DefaultCapacity/c.Size), c.Blocks())
	}
}
