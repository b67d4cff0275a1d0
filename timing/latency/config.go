package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds the cycle costs charged by the cache model.
type TimingConfig struct {
	// WordSize is the number of bytes moved per memory transfer unit.
	// Default: 4 bytes.
	WordSize uint64 `json:"word_size"`

	// WordLatency is the cycle cost of moving one word to or from memory.
	// Default: 100 cycles.
	WordLatency uint64 `json:"word_latency"`

	// HitLatency is charged for a cache hit when per-access overhead is
	// disabled. Default: 1 cycle.
	HitLatency uint64 `json:"hit_latency"`

	// AccessOverhead is charged once per access, whatever the outcome, when
	// per-access overhead is enabled. Default: 1 cycle.
	AccessOverhead uint64 `json:"access_overhead"`
}

// DefaultTimingConfig returns the default cost model: 100 cycles per 4-byte
// word and a single cycle for hits and per-access overhead.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		WordSize:       4,
		WordLatency:    100,
		HitLatency:     1,
		AccessOverhead: 1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that the memory cost can be derived.
func (c *TimingConfig) Validate() error {
	if c.WordSize == 0 {
		return fmt.Errorf("word_size must be > 0")
	}
	if c.WordLatency == 0 {
		return fmt.Errorf("word_latency must be > 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
