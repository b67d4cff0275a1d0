package cache

import (
	"errors"
	"fmt"
	"strings"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// ErrPolicyCount is returned when not exactly one replacement policy is
// selected.
var ErrPolicyCount = errors.New("exactly one of fifo, lru, random must be selected")

// PolicyKind selects a replacement policy.
type PolicyKind int

const (
	// FIFO evicts lines in a fixed round-robin order per set.
	FIFO PolicyKind = iota
	// LRU evicts the least recently used line of a set.
	LRU
	// Random evicts an empty line if one exists, otherwise a random line.
	Random
)

func (k PolicyKind) String() string {
	switch k {
	case FIFO:
		return "fifo"
	case LRU:
		return "lru"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("PolicyKind(%d)", int(k))
	}
}

// Valid reports whether k names a known policy.
func (k PolicyKind) Valid() bool {
	return k == FIFO || k == LRU || k == Random
}

// ParsePolicyKind converts a policy name to a PolicyKind.
func ParsePolicyKind(name string) (PolicyKind, error) {
	switch strings.ToLower(name) {
	case "fifo":
		return FIFO, nil
	case "lru":
		return LRU, nil
	case "random":
		return Random, nil
	default:
		return 0, fmt.Errorf("unknown replacement policy %q", name)
	}
}

// SelectPolicy turns the three independent selector flags into a policy.
// Exactly one flag must be set.
func SelectPolicy(fifo, lru, random bool) (PolicyKind, error) {
	count := 0
	kind := FIFO
	if fifo {
		count++
		kind = FIFO
	}
	if lru {
		count++
		kind = LRU
	}
	if random {
		count++
		kind = Random
	}

	if count != 1 {
		return 0, fmt.Errorf("%w, but %d were", ErrPolicyCount, count)
	}

	return kind, nil
}

// NewVictimFinder creates the replacement policy of the given kind for a
// cache of numSets sets. rnd is only used by Random; a nil rnd falls back to
// an unseeded source.
//
// Lookups are shared by every policy and go through the directory, which
// keeps each set's recency order. Only LRU reads that order.
func NewVictimFinder(
	kind PolicyKind,
	numSets int,
	rnd RandSource,
) akitacache.VictimFinder {
	switch kind {
	case FIFO:
		return NewFIFOVictimFinder(numSets)
	case LRU:
		return akitacache.NewLRUVictimFinder()
	case Random:
		if rnd == nil {
			rnd = NewRand()
		}
		return NewRandomVictimFinder(rnd)
	default:
		panic(fmt.Sprintf("unknown replacement policy %d", int(kind)))
	}
}

// FIFOVictimFinder evicts the line under a per-set pointer and then advances
// the pointer. It does not look for empty lines first.
type FIFOVictimFinder struct {
	next []int
}

// NewFIFOVictimFinder creates a FIFO policy with every pointer at line 0.
func NewFIFOVictimFinder(numSets int) *FIFOVictimFinder {
	return &FIFOVictimFinder{
		next: make([]int, numSets),
	}
}

// FindVictim returns the line under the set's pointer and advances the
// pointer.
func (f *FIFOVictimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	setID := set.Blocks[0].SetID
	victim := set.Blocks[f.next[setID]]
	f.next[setID] = (f.next[setID] + 1) % len(set.Blocks)
	return victim
}

// Next returns the line the next eviction in set will target.
func (f *FIFOVictimFinder) Next(setID int) int {
	return f.next[setID]
}

// RandomVictimFinder fills empty lines first and evicts a uniformly random
// line once the set is full. It keeps no per-set state.
type RandomVictimFinder struct {
	rnd RandSource
}

// NewRandomVictimFinder creates a Random policy drawing from rnd.
func NewRandomVictimFinder(rnd RandSource) *RandomVictimFinder {
	return &RandomVictimFinder{rnd: rnd}
}

// FindVictim returns the first invalid line, or a random one.
func (f *RandomVictimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	for _, block := range set.Blocks {
		if !block.IsValid {
			return block
		}
	}

	return set.Blocks[f.rnd.IntN(len(set.Blocks))]
}
