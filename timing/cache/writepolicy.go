package cache

import (
	"errors"
	"fmt"
)

// ErrWriteModeConflict is returned for write-back without write-allocate.
var ErrWriteModeConflict = errors.New("write-back requires write-allocate")

// WriteMode decides when stores reach memory.
type WriteMode int

const (
	// WriteThrough sends every store to memory.
	WriteThrough WriteMode = iota
	// WriteBack defers stores until the line is evicted.
	WriteBack
)

func (m WriteMode) String() string {
	if m == WriteBack {
		return "write-back"
	}
	return "write-through"
}

// AllocMode decides whether a store miss brings the block into the cache.
type AllocMode int

const (
	// WriteAllocate loads the block on a store miss.
	WriteAllocate AllocMode = iota
	// NoWriteAllocate writes straight to memory on a store miss.
	NoWriteAllocate
)

func (a AllocMode) String() string {
	if a == NoWriteAllocate {
		return "no-write-allocate"
	}
	return "write-allocate"
}

// WritePolicy pairs a write mode with an allocation mode. Only values
// returned by NewWritePolicy or WritePolicyFromFlags are legal.
type WritePolicy struct {
	Mode  WriteMode
	Alloc AllocMode
}

// NewWritePolicy validates and returns a write policy.
func NewWritePolicy(mode WriteMode, alloc AllocMode) (WritePolicy, error) {
	p := WritePolicy{Mode: mode, Alloc: alloc}
	if err := p.Validate(); err != nil {
		return WritePolicy{}, err
	}
	return p, nil
}

// WritePolicyFromFlags maps the boolean command-line surface onto a write
// policy. writeThrough=false means write-back and writeAllocate=false means
// no-write-allocate, so two false flags are rejected.
func WritePolicyFromFlags(writeThrough, writeAllocate bool) (WritePolicy, error) {
	mode := WriteBack
	if writeThrough {
		mode = WriteThrough
	}

	alloc := NoWriteAllocate
	if writeAllocate {
		alloc = WriteAllocate
	}

	return NewWritePolicy(mode, alloc)
}

// Validate checks that the combination is supported.
func (p WritePolicy) Validate() error {
	if p.Mode != WriteThrough && p.Mode != WriteBack {
		return fmt.Errorf("unknown write mode %d", int(p.Mode))
	}
	if p.Alloc != WriteAllocate && p.Alloc != NoWriteAllocate {
		return fmt.Errorf("unknown allocation mode %d", int(p.Alloc))
	}
	if p.Mode == WriteBack && p.Alloc == NoWriteAllocate {
		return ErrWriteModeConflict
	}
	return nil
}

// WriteBack reports whether stores are deferred.
func (p WritePolicy) WriteBack() bool {
	return p.Mode == WriteBack
}

// Allocate reports whether store misses allocate.
func (p WritePolicy) Allocate() bool {
	return p.Alloc == WriteAllocate
}

func (p WritePolicy) String() string {
	return p.Mode.String() + "/" + p.Alloc.String()
}
