// Command benchmark runs the CacheSim benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv    Output results in CSV format (default: human-readable)
//	-sets   Number of sets (default 256)
//	-lines  Lines per set (default 4)
//	-bytes  Line size in bytes (default 16)
//	-seed   Seed for randomized workloads and the random policy
//	-config Path to timing configuration JSON file
//
// Example:
//
//	# Run all benchmarks with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Every workload runs under every replacement policy and legal write policy.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/cachesim/benchmarks"
	"github.com/sarchlab/cachesim/timing/latency"
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	numSets := flag.Int("sets", 256, "Number of sets")
	linesPerSet := flag.Int("lines", 4, "Lines per set")
	lineSize := flag.Int("bytes", 16, "Line size in bytes")
	seed := flag.Uint64("seed", 1, "Seed for randomized workloads and the random policy")
	configPath := flag.String("config", "", "Path to timing configuration JSON file")
	flag.Parse()

	// Configure harness
	config := benchmarks.DefaultConfig()
	config.Configs = benchmarks.SweepConfigs(*numSets, *linesPerSet, *lineSize)
	config.Seed = *seed
	config.Output = os.Stdout

	if *configPath != "" {
		timing, err := latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
			os.Exit(1)
		}
		config.Timing = timing
	}

	// Create harness and add benchmarks
	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

	// Print configuration
	if !*csvOutput {
		fmt.Println("CacheSim Benchmark Harness")
		fmt.Println("==========================")
		fmt.Printf("Cache: %d sets x %d lines x %dB\n", *numSets, *linesPerSet, *lineSize)
		fmt.Println("")
	}

	// Run benchmarks
	results, err := harness.RunAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running benchmarks: %v\n", err)
		os.Exit(1)
	}

	// Output results
	if *csvOutput {
		harness.PrintCSV(results)
	} else {
		harness.PrintResults(results)

		fmt.Println("=== Summary ===")
		fmt.Println("")
		fmt.Println("Expected characteristics:")
		fmt.Println("- sequential_loads: one compulsory miss per line")
		fmt.Println("- strided_stores: every store misses; no-write-allocate pays twice")
		fmt.Println("- hot_loop: working set fits, near-perfect hit rate after the first pass")
		fmt.Println("- conflict_thrash: LRU and FIFO never hit, random sometimes does")
		fmt.Println("- read_modify_write: write-back turns store hits into dirty lines")
		fmt.Println("- random_mixed: hit rate tracks cache size over footprint")
	}
}
