// Package main provides a profiling wrapper for CacheSim to identify
// performance bottlenecks in the simulation loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/cachesim/loader"
	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/core"
)

var (
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	numSets     = flag.Int("sets", 256, "number of sets")
	linesPerSet = flag.Int("lines", 4, "lines per set")
	lineSize    = flag.Int("bytes", 16, "line size in bytes")
	policyName  = flag.String("policy", "lru", "replacement policy: fifo, lru or random")
	repeat      = flag.Int("repeat", 1, "number of times to replay the trace")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <trace>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(tracePath string) int {
	policy, err := cache.ParsePolicyKind(*policyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	s, err := core.NewSimulator(core.Config{
		NumSets:       *numSets,
		LinesPerSet:   *linesPerSet,
		LineSize:      *lineSize,
		Policy:        policy,
		Write:         cache.WritePolicy{Mode: cache.WriteBack, Alloc: cache.WriteAllocate},
		ClockOnMemory: true,
	}, core.WithSeed(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulator: %v\n", err)
		return 1
	}

	records, err := loader.Load(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		return 1
	}
	fmt.Printf("Loaded: %s (%d accesses)\n", tracePath, len(records))

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	start := time.Now()

	var stats core.Stats
	for i := 0; i < *repeat; i++ {
		stats = s.Run(records)
	}

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	total := uint64(*repeat) * stats.Accesses()

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Total cycles (last run): %d\n", stats.Cycles)
	fmt.Printf("Accesses simulated: %d\n", total)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if total > 0 {
		fmt.Printf("Accesses/second: %.0f\n", float64(total)/elapsed.Seconds())
	}

	return 0
}
