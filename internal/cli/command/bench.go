// Package command provides CLI command definitions for packetseal.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/packetseal/packetseal-go/internal/core/domain"
	"github.com/packetseal/packetseal-go/internal/speed"
)

// BenchCommand returns the bench subcommand.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Benchmark cipher throughput at a given payload size",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "packet-size",
				Aliases: []string{"p"},
				Usage:   "Payload size in bytes",
			},
		},
		Action: runBench,
	}
}

func runBench(c *cli.Context) error {
	size := GetConfig(c).Bench.PacketSize
	if c.IsSet("packet-size") {
		size = c.Int("packet-size")
	}
	if size <= 0 {
		return domain.ErrInvalidArgument.WithDetails("packet size must be positive")
	}
	return speed.Run(c.App.Writer, size)
}
