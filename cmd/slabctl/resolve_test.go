package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "exact class",
			args:        []string{"64"},
			wantContain: []string{"class 1 (64-byte blocks)"},
		},
		{
			name:        "rounds up",
			args:        []string{"17"},
			wantContain: []string{"class 1 (64-byte blocks)"},
		},
		{
			name:        "zero size",
			args:        []string{"0"},
			wantContain: []string{"class 0 (16-byte blocks)"},
		},
		{
			name:        "too large",
			args:        []string{"257"},
			wantContain: []string{"fallback (system)"},
		},
		{
			name:        "over-aligned",
			args:        []string{"64", "16"},
			wantContain: []string{"fallback"},
		},
		{
			name:        "hex size",
			args:        []string{"0x100"},
			wantContain: []string{"class 2 (256-byte blocks)"},
		},
		{
			name:    "bad size",
			args:    []string{"big"},
			wantErr: true,
		},
		{
			name:    "bad align",
			args:    []string{"8", "-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			configPath = writeConfig(t, smallConfig)
			var out bytes.Buffer
			err := runResolve(&out, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, out.String(), tt.wantContain)
		})
	}
}

func TestResolveCommandJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	var out bytes.Buffer
	require.NoError(t, runResolve(&out, []string{"100"}))

	var res resolveResult
	decodeJSON(t, out.String(), &res)
	assert.Equal(t, resolveResult{Size: 100, Align: 8, Eligible: true, Class: 3, Block: 128}, res)
}
