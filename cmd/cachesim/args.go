package main

import (
	"fmt"
	"strconv"

	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/timing/core"
)

// parseArgs builds a cache configuration from the positional syntax
//
//	<sets> <lines> <bytes> [keywords...]
//
// Keywords are fifo, lru, random, write-through, write-back, write-allocate
// and no-write-allocate. Without write-through the cache is write-back, and
// without write-allocate it does not allocate on store misses.
func parseArgs(args []string) (core.Config, error) {
	if len(args) < 3 {
		return core.Config{}, fmt.Errorf("expected <sets> <lines> <bytes>, got %d arguments", len(args))
	}

	var geometry [3]int
	names := [3]string{"sets", "lines", "bytes"}
	for i := range geometry {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return core.Config{}, fmt.Errorf("invalid %s %q: %w", names[i], args[i], err)
		}
		geometry[i] = v
	}

	var fifo, lru, random, writeThrough, writeAllocate bool
	for _, kw := range args[3:] {
		switch kw {
		case "fifo":
			fifo = true
		case "lru":
			lru = true
		case "random":
			random = true
		case "write-through":
			writeThrough = true
		case "write-allocate":
			writeAllocate = true
		case "write-back", "no-write-allocate":
			// Already the default.
		default:
			return core.Config{}, fmt.Errorf("unknown keyword %q", kw)
		}
	}

	policy, err := cache.SelectPolicy(fifo, lru, random)
	if err != nil {
		return core.Config{}, err
	}

	write, err := cache.WritePolicyFromFlags(writeThrough, writeAllocate)
	if err != nil {
		return core.Config{}, err
	}

	return core.Config{
		NumSets:     geometry[0],
		LinesPerSet: geometry[1],
		LineSize:    geometry[2],
		Policy:      policy,
		Write:       write,
	}, nil
}
