package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pavanmanishd/slab"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "slabctl",
	Short: "Inspect and exercise slab allocator configurations",
	Long: `slabctl loads a slab allocator configuration (the built-in default or a
YAML file), prints its size-class table, resolves requests against it and
runs a multi-goroutine allocate/free smoke test.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log allocator events to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", "", "YAML allocator configuration (default: built-in table)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig returns the configuration named by --config, or the default.
func loadConfig() (slab.Config, error) {
	cfg := slab.DefaultConfig()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return slab.Config{}, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()
		if cfg, err = slab.LoadConfig(f); err != nil {
			return slab.Config{}, err
		}
	}
	cfg.Logger = newLogger(os.Stderr)
	return cfg, nil
}

func newLogger(w io.Writer) *slog.Logger {
	if !verbose {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
