// Package command provides CLI command definitions for packetseal.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/packetseal/packetseal-go/pkg/crypto/rtpgcm"
)

// VectorsCommand returns the vectors subcommand.
func VectorsCommand() *cli.Command {
	return &cli.Command{
		Name:   "vectors",
		Usage:  "Print the registered cipher descriptors and their known-answer vectors",
		Action: runVectors,
	}
}

func runVectors(c *cli.Context) error {
	w := c.App.Writer
	for _, d := range rtpgcm.Descriptors() {
		fmt.Fprintf(w, "%s (algorithm %d, key+salt %d bytes)\n", d.Name, d.Algorithm, d.KeyLen)
		for i, tc := range d.TestCases {
			fmt.Fprintf(w, "  case %d (tag %d bytes)\n", i+1, tc.TagLen)
			fmt.Fprintf(w, "    key:        %x\n", tc.Key)
			fmt.Fprintf(w, "    iv:         %x\n", tc.IV)
			fmt.Fprintf(w, "    aad:        %x\n", tc.AAD)
			fmt.Fprintf(w, "    plaintext:  %x\n", tc.Plaintext)
			fmt.Fprintf(w, "    ciphertext: %x\n", tc.CiphertextWithTag)
		}
	}
	return nil
}
