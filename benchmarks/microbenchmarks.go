// Package benchmarks provides synthetic trace workloads and a harness that
// runs them across cache configurations.
package benchmarks

import (
	"math/rand/v2"

	"github.com/sarchlab/cachesim/timing/core"
)

// GetMicrobenchmarks returns the standard set of synthetic workloads.
// Each one stresses a specific cache behavior.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		sequentialLoads(),
		stridedStores(),
		hotLoop(),
		conflictThrash(),
		readModifyWrite(),
		randomMixed(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 workloads for quick
// validation: streaming, reuse and conflict.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		sequentialLoads(),
		hotLoop(),
		conflictThrash(),
	}
}

// 1. Sequential Loads - word-by-word streaming over 16KB, spatial locality only
func sequentialLoads() Benchmark {
	return Benchmark{
		Name:        "sequential_loads",
		Description: "4096 word loads over a 16KB array",
		Trace: func(uint64) []core.AccessRecord {
			records := make([]core.AccessRecord, 0, 4096)
			for i := uint32(0); i < 4096; i++ {
				records = append(records, core.AccessRecord{IsLoad: true, Addr: 0x10000 + i*4})
			}
			return records
		},
	}
}

// 2. Strided Stores - one store per 64B block, no reuse
func stridedStores() Benchmark {
	return Benchmark{
		Name:        "strided_stores",
		Description: "2048 stores with a 64B stride",
		Trace: func(uint64) []core.AccessRecord {
			records := make([]core.AccessRecord, 0, 2048)
			for i := uint32(0); i < 2048; i++ {
				records = append(records, core.AccessRecord{IsLoad: false, Addr: 0x40000 + i*64})
			}
			return records
		},
	}
}

// 3. Hot Loop - a 2KB working set walked 8 times, temporal locality
func hotLoop() Benchmark {
	return Benchmark{
		Name:        "hot_loop",
		Description: "8 passes over a 2KB working set, 1 store per 4 loads",
		Trace: func(uint64) []core.AccessRecord {
			records := make([]core.AccessRecord, 0, 8*512)
			for pass := 0; pass < 8; pass++ {
				for i := uint32(0); i < 512; i++ {
					records = append(records, core.AccessRecord{
						IsLoad: i%5 != 4,
						Addr:   0x8000 + i*4,
					})
				}
			}
			return records
		},
	}
}

// 4. Conflict Thrash - 5 blocks 64KB apart cycled, mapping to one set in
// any cache smaller than 64KB per way
func conflictThrash() Benchmark {
	return Benchmark{
		Name:        "conflict_thrash",
		Description: "5 blocks in the same set accessed round-robin",
		Trace: func(uint64) []core.AccessRecord {
			records := make([]core.AccessRecord, 0, 1000)
			for i := uint32(0); i < 1000; i++ {
				records = append(records, core.AccessRecord{IsLoad: true, Addr: (i % 5) << 16})
			}
			return records
		},
	}
}

// 5. Read-Modify-Write - load then store of each word, exercising dirty lines
func readModifyWrite() Benchmark {
	return Benchmark{
		Name:        "read_modify_write",
		Description: "load/store pairs over a 32KB array",
		Trace: func(uint64) []core.AccessRecord {
			records := make([]core.AccessRecord, 0, 2*8192)
			for i := uint32(0); i < 8192; i++ {
				addr := 0x100000 + i*4
				records = append(records,
					core.AccessRecord{IsLoad: true, Addr: addr},
					core.AccessRecord{IsLoad: false, Addr: addr},
				)
			}
			return records
		},
	}
}

// 6. Random Mixed - uniform random accesses over 64KB, 2 loads per store
func randomMixed() Benchmark {
	return Benchmark{
		Name:        "random_mixed",
		Description: "10000 random word accesses over 64KB",
		Trace: func(seed uint64) []core.AccessRecord {
			rnd := rand.New(rand.NewPCG(seed, seed+1))
			records := make([]core.AccessRecord, 0, 10000)
			for i := 0; i < 10000; i++ {
				records = append(records, core.AccessRecord{
					IsLoad: rnd.IntN(3) != 0,
					Addr:   uint32(rnd.IntN(1<<14)) * 4,
				})
			}
			return records
		},
	}
}
