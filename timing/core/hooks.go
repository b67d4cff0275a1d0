package core

import (
	"log"

	"github.com/sarchlab/akita/v4/sim"
)

// HookPosRunStart marks the start of a run. The hook detail is a Geometry.
var HookPosRunStart = &sim.HookPos{Name: "RunStart"}

// HookPosAccess marks the end of one access. The hook item is the
// AccessRecord and the detail is an AccessDetail.
var HookPosAccess = &sim.HookPos{Name: "Access"}

// HookPosRunEnd marks the end of a run. The hook detail is the final Stats.
var HookPosRunEnd = &sim.HookPos{Name: "RunEnd"}

// Geometry describes how a run decodes addresses.
type Geometry struct {
	NumSets       int
	LinesPerSet   int
	LineSize      int
	SetMask       uint32
	TagMask       uint32
	MemoryLatency uint64
}

// AccessDetail describes the outcome of one access.
type AccessDetail struct {
	// Set and Tag are the decoded address.
	Set int
	Tag uint32
	// Hit tells whether the tag was found.
	Hit bool
	// Line is the line that was hit or filled, or -1 when a store miss
	// bypassed the cache.
	Line int
	// Flushed tells whether a dirty victim was written back.
	Flushed bool
	// Cycles is the cost charged for this access.
	Cycles uint64
}

// AccessLogger is a hook that prints every simulation event.
type AccessLogger struct {
	logger *log.Logger
}

// NewAccessLogger creates an AccessLogger writing to logger.
func NewAccessLogger(logger *log.Logger) *AccessLogger {
	return &AccessLogger{logger: logger}
}

// Func prints the event described by ctx.
func (h *AccessLogger) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosRunStart:
		g := ctx.Detail.(Geometry)
		h.logger.Printf("sets=%d lines=%d line_size=%d set_mask=%#x tag_mask=%#x mem_latency=%d",
			g.NumSets, g.LinesPerSet, g.LineSize, g.SetMask, g.TagMask, g.MemoryLatency)
	case HookPosAccess:
		rec := ctx.Item.(AccessRecord)
		d := ctx.Detail.(AccessDetail)

		kind := "s"
		if rec.IsLoad {
			kind = "l"
		}

		outcome := "miss"
		if d.Hit {
			outcome = "hit"
		}

		h.logger.Printf("%s %#x set=%d tag=%#x %s line=%d flushed=%t cycles=%d",
			kind, rec.Addr, d.Set, d.Tag, outcome, d.Line, d.Flushed, d.Cycles)
	case HookPosRunEnd:
		s := ctx.Detail.(Stats)
		h.logger.Printf("done: accesses=%d hit_rate=%.4f cycles=%d",
			s.Accesses(), s.HitRate(), s.Cycles)
	}
}
