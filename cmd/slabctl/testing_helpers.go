package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallConfig = `
backend: system
classes:
  - {size: 16, capacity: 65536}
  - {size: 64, capacity: 262144}
  - {size: 256, capacity: 262144}
`

// writeConfig writes doc to a temporary YAML file and returns its path.
func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

// resetFlags restores the global flags between test cases.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, jsonOut, configPath = false, false, ""
	stressWorkers, stressCycles, stressBurst = 4, 5000, 100
	stressSize, stressAlign = 64, 8
}

// decodeJSON unmarshals output into v and fails on invalid JSON.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		assert.Contains(t, output, want)
	}
}
