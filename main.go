// Package main provides the entry point for CacheSim.
// CacheSim is a trace-driven set-associative data cache simulator built on
// Akita.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("CacheSim - Set-Associative Data Cache Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: cachesim <sets> <lines> <bytes> [keywords...] < trace")
	fmt.Println("")
	fmt.Println("Keywords:")
	fmt.Println("  fifo | lru | random             Replacement policy (exactly one)")
	fmt.Println("  write-through | write-back       Write policy")
	fmt.Println("  write-allocate | no-write-allocate")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cachesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}
