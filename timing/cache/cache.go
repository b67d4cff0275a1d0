// Package cache provides the storage and policy pieces of a single-level,
// set-associative data cache model.
//
// Lines are tracked by an Akita cache directory. A block's Tag holds the
// block-aligned address, so two blocks of one set share a Tag exactly when
// they share the decoded tag.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Cache is an S x L grid of lines. No data is modeled, only tags and the
// valid and dirty bits.
type Cache struct {
	directory *akitacache.DirectoryImpl
	decoder   Decoder
}

// New creates a cache with all lines invalid. victimFinder decides which
// line of a full set is replaced.
func New(
	numSets, linesPerSet, lineSize int,
	victimFinder akitacache.VictimFinder,
) *Cache {
	return &Cache{
		directory: akitacache.NewDirectory(
			numSets,
			linesPerSet,
			lineSize,
			victimFinder,
		),
		decoder: NewDecoder(numSets, lineSize),
	}
}

// NumSets returns the number of sets.
func (c *Cache) NumSets() int {
	return c.directory.NumSets
}

// LinesPerSet returns the associativity.
func (c *Cache) LinesPerSet() int {
	return c.directory.NumWays
}

// Decoder returns the address decoder matching the cache geometry.
func (c *Cache) Decoder() Decoder {
	return c.decoder
}

// Set returns the lines of the given set, in way order.
func (c *Cache) Set(set int) []*akitacache.Block {
	return c.directory.GetSets()[set].Blocks
}

// Lookup returns the valid line holding addr. A hit marks the line as the
// most recently used one of its set.
func (c *Cache) Lookup(addr uint32) (*akitacache.Block, bool) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block == nil {
		return nil, false
	}

	c.directory.Visit(block)

	return block, true
}

// ChooseVictim returns the line of addr's set that a new block replaces.
// The returned line may still be valid and dirty.
func (c *Cache) ChooseVictim(addr uint32) *akitacache.Block {
	return c.directory.FindVictim(c.blockAddr(addr))
}

// Fill places addr's block into victim and marks it the most recently used
// line of its set.
func (c *Cache) Fill(victim *akitacache.Block, addr uint32, dirty bool) {
	victim.Tag = c.blockAddr(addr)
	victim.IsValid = true
	victim.IsDirty = dirty

	c.directory.Visit(victim)
}

// DirtyLines counts valid lines that have been written since they were loaded.
func (c *Cache) DirtyLines() int {
	n := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty {
				n++
			}
		}
	}
	return n
}

func (c *Cache) blockAddr(addr uint32) uint64 {
	return uint64(c.decoder.BlockAddr(addr))
}
