// Package command provides CLI command definitions for packetseal.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/packetseal/packetseal-go/internal/infra/buildinfo"
	"github.com/packetseal/packetseal-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "packetseal",
		Usage:   "Packet cipher self-test and benchmark tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SelfTestCommand(),
			BenchCommand(),
			VectorsCommand(),
		},
		Before: func(c *cli.Context) error {
			cfg, err := LoadConfig(c)
			if err != nil {
				return err
			}
			logger.SetDefault(logger.New(logger.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
			}))
			c.App.Metadata["config"] = cfg
			return nil
		},
		Metadata: map[string]any{},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to YAML configuration file",
			EnvVars: []string{"PACKETSEAL_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"PACKETSEAL_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format: text, json",
			EnvVars: []string{"PACKETSEAL_LOG_FORMAT"},
		},
	}
}

// GetConfig retrieves the loaded configuration from app metadata.
func GetConfig(c *cli.Context) *Config {
	if cfg, ok := c.App.Metadata["config"].(*Config); ok {
		return cfg
	}
	cfg := DefaultConfig()
	return &cfg
}
