package main

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/pavanmanishd/slab"
	"github.com/spf13/cobra"
)

var (
	stressWorkers int
	stressCycles  int
	stressBurst   int
	stressSize    uint
	stressAlign   uint
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVarP(&stressWorkers, "workers", "w", 32, "Number of goroutines")
	cmd.Flags().IntVar(&stressCycles, "cycles", 200000, "Allocate/free cycles per goroutine")
	cmd.Flags().IntVar(&stressBurst, "burst", 1000, "Blocks allocated before freeing them all")
	cmd.Flags().UintVar(&stressSize, "size", 64, "Request size in bytes")
	cmd.Flags().UintVar(&stressAlign, "align", 8, "Request alignment")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a concurrent allocate/free burst workload",
		Long: `The stress command starts a number of goroutines, each with its own cache,
that repeatedly allocate a burst of blocks and then free them all. It
reports throughput and the allocator's counters afterwards.

Example:
  slabctl stress
  slabctl stress --workers 8 --size 256 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd.OutOrStdout())
		},
	}
}

type stressReport struct {
	Workers   int           `json:"workers"`
	Cycles    int           `json:"cycles"`
	Burst     int           `json:"burst"`
	Size      uintptr       `json:"size"`
	Align     uintptr       `json:"align"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	OpsPerSec float64       `json:"ops_per_sec"`
	Stats     slab.Stats    `json:"stats"`
}

func runStress(w io.Writer) error {
	if stressWorkers <= 0 || stressCycles <= 0 || stressBurst <= 0 {
		return fmt.Errorf("workers, cycles and burst must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := slab.New(cfg)
	if err != nil {
		return err
	}

	size, align := uintptr(stressSize), uintptr(stressAlign)
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < stressWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := a.NewCache()
			defer c.Close()
			ptrs := make([]unsafe.Pointer, stressBurst)
			for done := 0; done < stressCycles; done += stressBurst {
				n := min(stressBurst, stressCycles-done)
				for j := 0; j < n; j++ {
					ptrs[j] = c.Allocate(size, align)
				}
				for j := 0; j < n; j++ {
					c.Deallocate(ptrs[j], size, align)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	report := stressReport{
		Workers:   stressWorkers,
		Cycles:    stressCycles,
		Burst:     stressBurst,
		Size:      size,
		Align:     align,
		Elapsed:   elapsed,
		OpsPerSec: float64(2*stressWorkers*stressCycles) / elapsed.Seconds(),
		Stats:     a.Stats(),
	}
	if jsonOut {
		return printJSON(w, report)
	}

	fmt.Fprintf(w, "%d workers x %d cycles (burst %d, %d bytes): %v, %.0f ops/s\n",
		report.Workers, report.Cycles, report.Burst, report.Size, elapsed.Round(time.Millisecond), report.OpsPerSec)
	fmt.Fprintf(w, "Arena: %s from %s; fallback: %d allocations, %d frees\n",
		humanize.IBytes(uint64(report.Stats.ArenaSize)), report.Stats.Source, report.Stats.Delegated, report.Stats.DelegatedFrees)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SIZE\tBLOCKS\tFREE\tREFILLS\tFLUSHES\tEXHAUSTED\t")
	for _, cs := range report.Stats.Classes {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t\n", cs.Size, cs.Blocks, cs.Free, cs.Refills, cs.Flushes, cs.Exhaust)
	}
	return tw.Flush()
}
