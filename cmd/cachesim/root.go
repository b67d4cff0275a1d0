package main

import (
	"fmt"
	"log"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/loader"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/timing/core"
	"github.com/sarchlab/cachesim/timing/latency"
)

type options struct {
	tracePath     string
	configPath    string
	clockOnMemory bool
	drainDirty    bool
	seed          uint64
	verbose       bool
	csv           bool
	recordPath    string
	freqGHz       float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cachesim <sets> <lines> <bytes> [fifo|lru|random] [write-through|write-back] [write-allocate|no-write-allocate]",
		Short: "Simulate a set-associative data cache over a memory trace.",
		Long: `CacheSim replays a memory trace through a single-level set-associative ` +
			`cache and reports load/store hits and misses and the total cycle count. ` +
			`The trace is read from --trace or standard input, one "l <addr>" or ` +
			`"s <addr>" access per line.`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tracePath, "trace", "", "Path to the trace file (default: standard input)")
	flags.StringVar(&opts.configPath, "config", "", "Path to timing configuration JSON file")
	flags.BoolVar(&opts.clockOnMemory, "clock-on-memory", true,
		"Charge a flat cycle per access instead of a cycle per hit")
	flags.BoolVar(&opts.drainDirty, "drain-dirty", false,
		"Charge a write-back for every dirty line left at the end of the trace")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for the random policy (0: unseeded)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every access to standard error")
	flags.BoolVar(&opts.csv, "csv", false, "Output results in CSV format")
	flags.StringVar(&opts.recordPath, "record", "", "Append the result to this SQLite database")
	flags.Float64Var(&opts.freqGHz, "freq-ghz", 0, "Report the estimated run time at this clock frequency")

	return cmd
}

func runSimulation(cmd *cobra.Command, args []string, opts *options) error {
	config, err := parseArgs(args)
	if err != nil {
		return err
	}
	config.ClockOnMemory = opts.clockOnMemory
	config.DrainDirty = opts.drainDirty

	timing := latency.DefaultTimingConfig()
	if opts.configPath != "" {
		timing, err = latency.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	simOpts := []core.Option{core.WithTimingConfig(timing)}
	if opts.seed != 0 {
		simOpts = append(simOpts, core.WithSeed(opts.seed))
	}

	s, err := core.NewSimulator(config, simOpts...)
	if err != nil {
		return err
	}

	if opts.verbose {
		s.AcceptHook(core.NewAccessLogger(log.New(cmd.ErrOrStderr(), "", 0)))
	}

	traceName := opts.tracePath
	var records []core.AccessRecord
	if opts.tracePath != "" {
		records, err = loader.Load(opts.tracePath)
	} else {
		traceName = "<stdin>"
		records, err = loader.Read(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	stats := s.Run(records)

	out := cmd.OutOrStdout()
	if opts.csv {
		err = report.PrintCSV(out, stats, true)
	} else {
		err = report.Print(out, stats)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.freqGHz > 0 || opts.verbose {
		freq := sim.Freq(opts.freqGHz) * sim.GHz
		if err := report.PrintSummary(out, stats, freq); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if opts.recordPath != "" {
		return record(opts.recordPath, traceName, config, stats)
	}

	return nil
}

func record(path, trace string, config core.Config, stats core.Stats) error {
	recorder := report.NewSQLiteRecorder(path)
	if err := recorder.Init(); err != nil {
		return err
	}

	if err := recorder.Record(report.NewRunRecord(trace, config, stats)); err != nil {
		_ = recorder.Close()
		return err
	}

	return recorder.Close()
}
