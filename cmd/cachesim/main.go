// Package main provides the entry point for CacheSim.
// CacheSim replays a memory access trace through a single-level
// set-associative cache and reports hits, misses and an estimated cycle
// count.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
