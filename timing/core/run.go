package core

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/latency"
)

// run is the mutable state of a single Simulator.Run call.
type run struct {
	owner *Simulator

	decoder cache.Decoder
	cache   *cache.Cache
	clock   *latency.Clock

	writeBack bool
	allocate  bool

	stats Stats
}

func (s *Simulator) newRun() *run {
	var rnd cache.RandSource
	if s.config.Policy == cache.Random {
		rnd = s.newRand()
	}

	c := cache.New(
		s.config.NumSets,
		s.config.LinesPerSet,
		s.config.LineSize,
		cache.NewVictimFinder(s.config.Policy, s.config.NumSets, rnd),
	)

	return &run{
		owner:     s,
		decoder:   c.Decoder(),
		cache:     c,
		clock:     latency.NewClock(s.timing, s.config.LineSize, s.config.ClockOnMemory),
		writeBack: s.config.Write.WriteBack(),
		allocate:  s.config.Write.Allocate(),
	}
}

func (r *run) access(rec AccessRecord) {
	before := r.clock.Cycles()
	block, hit := r.cache.Lookup(rec.Addr)
	flushed := false

	if rec.IsLoad {
		block, flushed = r.load(rec.Addr, block, hit)
	} else {
		block, flushed = r.store(rec.Addr, block, hit)
	}

	r.clock.EndAccess()

	if r.owner.hooked() {
		set, tag := r.decoder.Decode(rec.Addr)
		line := -1
		if block != nil {
			line = block.WayID
		}

		r.owner.InvokeHook(sim.HookCtx{
			Domain: r.owner,
			Pos:    HookPosAccess,
			Item:   rec,
			Detail: AccessDetail{
				Set:     set,
				Tag:     tag,
				Hit:     hit,
				Line:    line,
				Flushed: flushed,
				Cycles:  r.clock.Cycles() - before,
			},
		})
	}
}

func (r *run) load(
	addr uint32,
	block *akitacache.Block,
	hit bool,
) (*akitacache.Block, bool) {
	r.stats.Loads++

	if hit {
		r.stats.LoadHits++
		r.clock.Hit()
		return block, false
	}

	r.stats.LoadMisses++
	r.clock.Memory()

	// Freshly fetched data matches memory.
	return r.fill(addr, false)
}

func (r *run) store(
	addr uint32,
	block *akitacache.Block,
	hit bool,
) (*akitacache.Block, bool) {
	r.stats.Stores++

	if hit {
		r.stats.StoreHits++
		if r.writeBack {
			block.IsDirty = true
			r.clock.Hit()
		} else {
			r.clock.Memory()
		}
		return block, false
	}

	r.stats.StoreMisses++
	r.clock.Memory()

	if !r.allocate {
		// The store goes straight to memory and the cache is untouched.
		r.clock.Memory()
		return nil, false
	}

	block, flushed := r.fill(addr, r.writeBack)
	if !r.writeBack {
		r.clock.Memory()
	}

	return block, flushed
}

// fill evicts a victim from addr's set and installs addr's block in its
// place, writing the victim back first if it is dirty.
func (r *run) fill(addr uint32, dirty bool) (*akitacache.Block, bool) {
	victim := r.cache.ChooseVictim(addr)
	flushed := false

	if r.writeBack && victim.IsValid && victim.IsDirty {
		r.clock.Memory()
		flushed = true
	}

	r.cache.Fill(victim, addr, dirty)

	return victim, flushed
}

// drain writes back every dirty line left at the end of the trace.
func (r *run) drain() {
	n := r.cache.DirtyLines()
	for i := 0; i < n; i++ {
		r.clock.Memory()
	}
}
