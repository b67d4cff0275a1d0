// Package core provides the trace-driven cache simulator.
// It wires the address decoder, the cache, a replacement policy, the write
// policy and the clock together and replays an access trace through them.
package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/latency"
)

// ErrInvalidGeometry is returned when the cache dimensions are unusable.
var ErrInvalidGeometry = errors.New("invalid cache geometry")

// AccessRecord is one entry of a memory trace.
type AccessRecord struct {
	// IsLoad is true for loads and false for stores.
	IsLoad bool
	// Addr is the byte address accessed.
	Addr uint32
}

// Config describes one cache configuration.
type Config struct {
	// NumSets is the number of sets. Must be a power of two.
	NumSets int
	// LinesPerSet is the associativity.
	LinesPerSet int
	// LineSize is the block size in bytes. Must be a power of two.
	LineSize int

	// Policy selects the replacement policy.
	Policy cache.PolicyKind
	// Write selects the write and allocation behavior.
	Write cache.WritePolicy

	// ClockOnMemory charges a flat cycle per access instead of a cycle per
	// hit.
	ClockOnMemory bool

	// DrainDirty charges one memory transfer per dirty line left in the
	// cache after the last access.
	DrainDirty bool
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.NumSets <= 0 || !isPowerOfTwo(c.NumSets) {
		return fmt.Errorf("%w: number of sets must be a positive power of two, got %d",
			ErrInvalidGeometry, c.NumSets)
	}
	if c.LinesPerSet <= 0 {
		return fmt.Errorf("%w: lines per set must be > 0, got %d",
			ErrInvalidGeometry, c.LinesPerSet)
	}
	if c.LineSize <= 0 || !isPowerOfTwo(c.LineSize) {
		return fmt.Errorf("%w: line size must be a positive power of two, got %d",
			ErrInvalidGeometry, c.LineSize)
	}
	if uint64(c.NumSets)*uint64(c.LineSize) > 1<<32 {
		return fmt.Errorf("%w: %d sets of %d bytes exceed the 32-bit address space",
			ErrInvalidGeometry, c.NumSets, c.LineSize)
	}
	if !c.Policy.Valid() {
		return fmt.Errorf("unknown replacement policy %d", int(c.Policy))
	}
	return c.Write.Validate()
}

func isPowerOfTwo(n int) bool {
	return n&(n-1) == 0
}

// Stats holds the counters of one run, in report order.
type Stats struct {
	Loads       uint64
	Stores      uint64
	LoadHits    uint64
	LoadMisses  uint64
	StoreHits   uint64
	StoreMisses uint64
	Cycles      uint64
}

// Accesses returns the number of records processed.
func (s Stats) Accesses() uint64 {
	return s.Loads + s.Stores
}

// HitRate returns the fraction of accesses that hit.
func (s Stats) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}
	return float64(s.LoadHits+s.StoreHits) / float64(s.Accesses())
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRandSource makes the Random policy draw from rnd. The source is shared
// by every run of the simulator.
func WithRandSource(rnd cache.RandSource) Option {
	return func(s *Simulator) {
		s.newRand = func() cache.RandSource { return rnd }
	}
}

// WithSeed gives every run a fresh source seeded with seed, so repeated runs
// over the same trace produce the same result.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.newRand = func() cache.RandSource { return cache.NewSeededRand(seed) }
	}
}

// WithTimingConfig sets the cycle cost model. A nil config keeps the default.
func WithTimingConfig(config *latency.TimingConfig) Option {
	return func(s *Simulator) {
		if config != nil {
			s.timing = config
		}
	}
}

// Simulator replays access traces through a freshly built cache. The
// configuration is fixed at construction; each Run owns its own cache and
// policy state. A Simulator must not run two traces at the same time.
//
// Hooks registered with AcceptHook are invoked at HookPosRunStart,
// HookPosAccess and HookPosRunEnd. Without hooks no trace data is built.
type Simulator struct {
	*sim.HookableBase

	config  Config
	timing  *latency.TimingConfig
	newRand func() cache.RandSource
}

// NewSimulator validates config and creates a Simulator.
func NewSimulator(config Config, opts ...Option) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		HookableBase: sim.NewHookableBase(),
		config:       config,
		timing:       latency.DefaultTimingConfig(),
		newRand:      cache.NewRand,
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.timing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}

	return s, nil
}

// Simulate builds a Simulator and runs records through it once.
func Simulate(config Config, records []AccessRecord, opts ...Option) (Stats, error) {
	s, err := NewSimulator(config, opts...)
	if err != nil {
		return Stats{}, err
	}
	return s.Run(records), nil
}

// Config returns the cache configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// TimingConfig returns the cycle cost model.
func (s *Simulator) TimingConfig() *latency.TimingConfig {
	return s.timing
}

// Run replays records in order and returns the final counters.
func (s *Simulator) Run(records []AccessRecord) Stats {
	r := s.newRun()

	if s.hooked() {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosRunStart,
			Detail: Geometry{
				NumSets:       s.config.NumSets,
				LinesPerSet:   s.config.LinesPerSet,
				LineSize:      s.config.LineSize,
				SetMask:       r.decoder.SetMask(),
				TagMask:       r.decoder.TagMask(),
				MemoryLatency: r.clock.MemoryLatency(),
			},
		})
	}

	for _, rec := range records {
		r.access(rec)
	}

	if s.config.DrainDirty && s.config.Write.WriteBack() {
		r.drain()
	}

	r.stats.Cycles = r.clock.Cycles()

	if s.hooked() {
		s.InvokeHook(sim.HookCtx{
			Domain: s,
			Pos:    HookPosRunEnd,
			Detail: r.stats,
		})
	}

	return r.stats
}

func (s *Simulator) hooked() bool {
	return s.NumHooks() > 0
}
