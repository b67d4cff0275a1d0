// Package latency provides the cycle cost model of the cache simulator.
//
// A run charges a fixed memory latency, derived from the line size, for
// every transfer between the cache and memory, plus small per-hit or
// per-access costs.
package latency

// MemoryLatency returns the cost of moving one line of lineSize bytes:
// (lineSize / WordSize) * WordLatency.
func (c *TimingConfig) MemoryLatency(lineSize int) uint64 {
	return (uint64(lineSize) / c.WordSize) * c.WordLatency
}

// Clock accumulates the cycles of one simulation run.
//
// In clock-on-memory mode each access pays AccessOverhead at its end and
// hits are otherwise free. With the mode off, hits pay HitLatency and there
// is no per-access overhead.
type Clock struct {
	config        *TimingConfig
	memoryLatency uint64
	onMemory      bool
	cycles        uint64
}

// NewClock creates a clock for lines of lineSize bytes.
func NewClock(config *TimingConfig, lineSize int, onMemory bool) *Clock {
	return &Clock{
		config:        config,
		memoryLatency: config.MemoryLatency(lineSize),
		onMemory:      onMemory,
	}
}

// MemoryLatency returns the per-transfer cost fixed for this run.
func (c *Clock) MemoryLatency() uint64 {
	return c.memoryLatency
}

// OnMemory reports whether per-access overhead accounting is enabled.
func (c *Clock) OnMemory() bool {
	return c.onMemory
}

// Memory charges one memory transfer.
func (c *Clock) Memory() {
	c.cycles += c.memoryLatency
}

// Hit charges a cache hit. It costs nothing in clock-on-memory mode.
func (c *Clock) Hit() {
	if !c.onMemory {
		c.cycles += c.config.HitLatency
	}
}

// EndAccess closes an access. It charges AccessOverhead in clock-on-memory
// mode.
func (c *Clock) EndAccess() {
	if c.onMemory {
		c.cycles += c.config.AccessOverhead
	}
}

// Cycles returns the total so far.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}
