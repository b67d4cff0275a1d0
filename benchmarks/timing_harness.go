package benchmarks

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/core"
	"github.com/sarchlab/cachesim/timing/latency"
)

// BenchmarkResult holds the results of one workload on one configuration.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Cache geometry and policies
	NumSets     int    `json:"num_sets"`
	LinesPerSet int    `json:"lines_per_set"`
	LineSize    int    `json:"line_size"`
	Policy      string `json:"policy"`
	WritePolicy string `json:"write_policy"`

	// Stats are the simulator counters
	Stats core.Stats `json:"stats"`

	// HitRate is the fraction of accesses that hit
	HitRate float64 `json:"hit_rate"`

	// CyclesPerAccess is the average cost of an access
	CyclesPerAccess float64 `json:"cycles_per_access"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single synthetic workload.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Trace builds the access sequence. Randomized workloads derive their
	// addresses from seed.
	Trace func(seed uint64) []core.AccessRecord
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Configs are the cache configurations every benchmark runs on
	Configs []core.Config

	// Timing is the cycle cost model (default: latency.DefaultTimingConfig)
	Timing *latency.TimingConfig

	// Seed drives randomized workloads and the Random policy
	Seed uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// SweepConfigs returns one configuration per replacement policy and legal
// write policy for the given geometry.
func SweepConfigs(numSets, linesPerSet, lineSize int) []core.Config {
	writes := []cache.WritePolicy{
		{Mode: cache.WriteThrough, Alloc: cache.NoWriteAllocate},
		{Mode: cache.WriteThrough, Alloc: cache.WriteAllocate},
		{Mode: cache.WriteBack, Alloc: cache.WriteAllocate},
	}

	configs := make([]core.Config, 0, 9)
	for _, policy := range []cache.PolicyKind{cache.FIFO, cache.LRU, cache.Random} {
		for _, write := range writes {
			configs = append(configs, core.Config{
				NumSets:       numSets,
				LinesPerSet:   linesPerSet,
				LineSize:      lineSize,
				Policy:        policy,
				Write:         write,
				ClockOnMemory: true,
			})
		}
	}

	return configs
}

// DefaultConfig returns a default harness configuration: a 16KB, 4-way cache
// with 16B lines under every policy combination.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Configs: SweepConfigs(256, 4, 16),
		Timing:  latency.DefaultTimingConfig(),
		Seed:    1,
		Output:  os.Stdout,
		Verbose: false,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes every benchmark on every configuration, benchmark-major.
func (h *Harness) RunAll() ([]BenchmarkResult, error) {
	results := make([]BenchmarkResult, 0, len(h.benchmarks)*len(h.config.Configs))

	for _, bench := range h.benchmarks {
		trace := bench.Trace(h.config.Seed)

		for _, config := range h.config.Configs {
			result, err := h.runBenchmark(bench, trace, config)
			if err != nil {
				return nil, fmt.Errorf("benchmark %s: %w", bench.Name, err)
			}
			results = append(results, result)
		}
	}

	return results, nil
}

// runBenchmark executes a single benchmark on a single configuration.
func (h *Harness) runBenchmark(
	bench Benchmark,
	trace []core.AccessRecord,
	config core.Config,
) (BenchmarkResult, error) {
	s, err := core.NewSimulator(config,
		core.WithTimingConfig(h.config.Timing),
		core.WithSeed(h.config.Seed),
	)
	if err != nil {
		return BenchmarkResult{}, err
	}

	start := time.Now()
	stats := s.Run(trace)
	wallTime := time.Since(start)

	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
		NumSets:     config.NumSets,
		LinesPerSet: config.LinesPerSet,
		LineSize:    config.LineSize,
		Policy:      config.Policy.String(),
		WritePolicy: config.Write.String(),
		Stats:       stats,
		HitRate:     stats.HitRate(),
		WallTime:    wallTime,
	}
	if n := stats.Accesses(); n > 0 {
		result.CyclesPerAccess = float64(stats.Cycles) / float64(n)
	}

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s on %s %s: %d cycles\n",
			bench.Name, result.Policy, result.WritePolicy, stats.Cycles)
	}

	return result, nil
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== CacheSim Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		s := r.Stats
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Cache: %d sets x %d lines x %dB, %s, %s\n",
			r.NumSets, r.LinesPerSet, r.LineSize, r.Policy, r.WritePolicy)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Accesses ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Loads:        %d (hits %d, misses %d)\n",
			s.Loads, s.LoadHits, s.LoadMisses)
		_, _ = fmt.Fprintf(h.config.Output, "  Stores:       %d (hits %d, misses %d)\n",
			s.Stores, s.StoreHits, s.StoreMisses)
		_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate:     %.1f%%\n", 100*r.HitRate)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Total Cycles: %d\n", s.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles/Access: %.2f\n", r.CyclesPerAccess)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,sets,lines,line_size,policy,write_policy,loads,stores,load_hits,load_misses,store_hits,store_misses,cycles,hit_rate")

	for _, r := range results {
		s := r.Stats
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%s,%s,%d,%d,%d,%d,%d,%d,%d,%.4f\n",
			r.Name,
			r.NumSets,
			r.LinesPerSet,
			r.LineSize,
			r.Policy,
			r.WritePolicy,
			s.Loads,
			s.Stores,
			s.LoadHits,
			s.LoadMisses,
			s.StoreHits,
			s.StoreMisses,
			s.Cycles,
			r.HitRate,
		)
	}
}
