// Package command provides CLI command definitions for packetseal.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/packetseal/packetseal-go/internal/core/domain"
	"github.com/packetseal/packetseal-go/internal/selftest"
	"github.com/packetseal/packetseal-go/internal/telemetry/logger"
	"github.com/packetseal/packetseal-go/internal/telemetry/metric"
)

// SelfTestCommand returns the selftest subcommand.
func SelfTestCommand() *cli.Command {
	return &cli.Command{
		Name:  "selftest",
		Usage: "Run the known-answer self-test for all cipher variants",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Print every case, not only failures",
			},
		},
		Action: runSelfTest,
	}
}

func runSelfTest(c *cli.Context) error {
	runner := selftest.NewRunner(
		selftest.WithLogger(logger.Default()),
		selftest.WithMetrics(metric.NewRegistry()),
	)
	report := runner.Run()

	w := c.App.Writer
	for _, res := range report.Cases {
		if res.Passed {
			if c.Bool("verbose") {
				fmt.Fprintf(w, "PASS  %-12s tag=%-2d (%s)\n", res.Variant, res.TagLen, res.Elapsed)
			}
			continue
		}
		fmt.Fprintf(w, "FAIL  %-12s tag=%-2d: %s\n", res.Variant, res.TagLen, res.Failure)
	}

	if !report.Passed {
		fmt.Fprintf(w, "self-test %s: %d of %d cases failed\n",
			report.RunID, report.NumFail, report.NumCases)
		return domain.ErrSelfTestFailed.WithDetails(
			fmt.Sprintf("%d of %d cases failed", report.NumFail, report.NumCases))
	}

	fmt.Fprintf(w, "self-test %s: all %d cases passed in %s\n",
		report.RunID, report.NumCases, report.Elapsed)
	return nil
}
