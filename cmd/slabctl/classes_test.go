package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassesCommand(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "default table",
			wantContain: []string{"Backend: system", "CLASS", "1024", "4.0 MiB"},
		},
		{
			name:        "config file",
			config:      smallConfig,
			wantContain: []string{"256 KiB", "4096"},
		},
		{
			name:    "invalid config",
			config:  "classes:\n  - {size: 24, capacity: 4096}\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			if tt.config != "" {
				configPath = writeConfig(t, tt.config)
			}
			var out bytes.Buffer
			err := runClasses(&out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, out.String(), tt.wantContain)
		})
	}
}

func TestClassesCommandJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true
	configPath = writeConfig(t, smallConfig)

	var out bytes.Buffer
	require.NoError(t, runClasses(&out))

	var report classesReport
	decodeJSON(t, out.String(), &report)
	require.Len(t, report.Classes, 3)
	assert.Equal(t, classRow{Class: 1, Size: 64, Capacity: 262144, Blocks: 4096}, report.Classes[1])
	assert.Equal(t, "system", report.Backend.String())
}

func TestClassesCommandMissingConfig(t *testing.T) {
	resetFlags(t)
	configPath = "does-not-exist.yaml"
	err := runClasses(&bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open config")
}
