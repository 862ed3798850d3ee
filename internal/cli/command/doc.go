// Package command provides CLI command definitions for packetseal.
//
// It uses urfave/cli/v2 for command parsing. The binary is an operator
// tool around the packet cipher library: run the known-answer self-test,
// benchmark the variants, and dump the registered descriptors.
package command
