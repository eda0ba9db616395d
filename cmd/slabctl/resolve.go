package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pavanmanishd/slab"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newResolveCmd())
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <size> [align]",
		Short: "Show which class serves a request",
		Long: `The resolve command reports the size class a request of the given size
and alignment (default 8) is served from, or that it goes to the fallback.

Example:
  slabctl resolve 100
  slabctl resolve 64 16`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), args)
		},
	}
}

type resolveResult struct {
	Size     uintptr `json:"size"`
	Align    uintptr `json:"align"`
	Eligible bool    `json:"eligible"`
	Class    int     `json:"class,omitempty"`
	Block    uintptr `json:"block,omitempty"`
}

func runResolve(w io.Writer, args []string) error {
	size, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", args[0], err)
	}
	align := uint64(slab.MaxAlign)
	if len(args) > 1 {
		if align, err = strconv.ParseUint(args[1], 0, 64); err != nil {
			return fmt.Errorf("invalid align %q: %w", args[1], err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := slab.New(cfg)
	if err != nil {
		return err
	}

	res := resolveResult{Size: uintptr(size), Align: uintptr(align)}
	if class, ok := a.Resolve(res.Size, res.Align); ok {
		res.Eligible, res.Class, res.Block = true, class, a.Classes()[class].Size
	}
	if jsonOut {
		return printJSON(w, res)
	}
	if !res.Eligible {
		fmt.Fprintf(w, "size %d align %d: fallback (%s)\n", res.Size, res.Align, cfg.Backend.Resolve())
		return nil
	}
	fmt.Fprintf(w, "size %d align %d: class %d (%d-byte blocks)\n", res.Size, res.Align, res.Class, res.Block)
	return nil
}
