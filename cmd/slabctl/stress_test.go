package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressCommand(t *testing.T) {
	resetFlags(t)
	configPath = writeConfig(t, smallConfig)

	var out bytes.Buffer
	require.NoError(t, runStress(&out))
	assertContains(t, out.String(), []string{"4 workers x 5000 cycles", "REFILLS", "fallback: 0 allocations"})
}

func TestStressCommandJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	configPath = writeConfig(t, smallConfig)

	var out bytes.Buffer
	require.NoError(t, runStress(&out))

	var report stressReport
	decodeJSON(t, out.String(), &report)
	require.True(t, report.Stats.Ready)
	require.Len(t, report.Stats.Classes, 3)

	// Every cache was closed, so all blocks are back on the global lists.
	for _, cs := range report.Stats.Classes {
		assert.Equal(t, cs.Blocks, cs.Free, "class %d", cs.Size)
	}
	assert.Positive(t, report.Stats.Classes[1].Refills)
	assert.Zero(t, report.Stats.Delegated)
}

func TestStressCommandFallback(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	configPath = writeConfig(t, smallConfig)
	stressSize = 4096

	var out bytes.Buffer
	require.NoError(t, runStress(&out))

	var report stressReport
	decodeJSON(t, out.String(), &report)
	assert.Equal(t, uint64(4*5000), report.Stats.Delegated)
	assert.Equal(t, uint64(4*5000), report.Stats.DelegatedFrees)
}

func TestStressCommandRejectsBadFlags(t *testing.T) {
	resetFlags(t)
	stressWorkers = 0
	require.Error(t, runStress(&bytes.Buffer{}))
}
