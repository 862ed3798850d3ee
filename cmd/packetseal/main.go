// Package main provides the entry point for packetseal.
//
// packetseal is the operator tool around the packet cipher library:
// known-answer self-test, throughput benchmark, and vector dump.
package main

import (
	"fmt"
	"os"

	"github.com/packetseal/packetseal-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
