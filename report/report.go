// Package report formats and records simulation results.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cachesim/timing/core"
)

// Print writes the statistics in the fixed report order.
func Print(w io.Writer, stats core.Stats) error {
	_, err := fmt.Fprintf(w, `
Total loads: %d
Total stores: %d
Load hits: %d
Load misses: %d
Store hits: %d
Store misses: %d
Total cycles: %d

`,
		stats.Loads,
		stats.Stores,
		stats.LoadHits,
		stats.LoadMisses,
		stats.StoreHits,
		stats.StoreMisses,
		stats.Cycles,
	)
	return err
}

// CSVHeader is the header line matching PrintCSV.
const CSVHeader = "loads,stores,load_hits,load_misses,store_hits,store_misses,cycles"

// PrintCSV writes the statistics as one CSV row, optionally preceded by the
// header.
func PrintCSV(w io.Writer, stats core.Stats, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d,%d\n",
		stats.Loads,
		stats.Stores,
		stats.LoadHits,
		stats.LoadMisses,
		stats.StoreHits,
		stats.StoreMisses,
		stats.Cycles,
	)
	return err
}

// EstimatedSeconds converts a cycle count into seconds at freq.
func EstimatedSeconds(cycles uint64, freq sim.Freq) float64 {
	if freq <= 0 {
		return 0
	}
	return float64(cycles) / float64(freq)
}

// PrintSummary writes derived figures that are not part of the fixed report:
// hit rate and, when freq is positive, the estimated run time.
func PrintSummary(w io.Writer, stats core.Stats, freq sim.Freq) error {
	if _, err := fmt.Fprintf(w, "Hit rate: %.2f%%\n", 100*stats.HitRate()); err != nil {
		return err
	}

	if freq > 0 {
		_, err := fmt.Fprintf(w, "Estimated time at %.2f GHz: %.6f s\n",
			float64(freq/sim.GHz), EstimatedSeconds(stats.Cycles, freq))
		return err
	}

	return nil
}
