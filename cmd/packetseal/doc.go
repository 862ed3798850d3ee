// Package main provides the entry point for packetseal.
//
// The CLI tool exercises the packet cipher library from the outside:
//
//   - Known-answer self-test across every registered variant
//   - Throughput benchmark at a configurable payload size
//   - Dump of the registered descriptors and their vectors
//
// Usage:
//
//	packetseal [command] [flags]
//	packetseal selftest --verbose
//	packetseal bench --packet-size 1200
//	packetseal vectors
package main
