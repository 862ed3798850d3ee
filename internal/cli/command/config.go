// Package command provides CLI command definitions for packetseal.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/packetseal/packetseal-go/internal/core/domain"
	"github.com/packetseal/packetseal-go/internal/infra/confloader"
	"github.com/packetseal/packetseal-go/internal/speed"
)

// Config holds the tool configuration.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Bench BenchConfig `koanf:"bench"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BenchConfig holds benchmark configuration.
type BenchConfig struct {
	PacketSize int `koanf:"packet_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			PacketSize: speed.DefaultPacketSize,
		},
	}
}

func (cfg *Config) validate() error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return domain.ErrConfigInvalid.WithDetails("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return domain.ErrConfigInvalid.WithDetails("log.format must be text or json")
	}
	if cfg.Bench.PacketSize <= 0 {
		return domain.ErrConfigInvalid.WithDetails("bench.packet_size must be positive")
	}
	return nil
}

// LoadConfig builds the effective configuration: defaults, then config
// file, then environment, then command-line flags.
func LoadConfig(c *cli.Context) (*Config, error) {
	cfg := DefaultConfig()

	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	if err := confloader.NewLoader(opts...).Load(&cfg); err != nil {
		return nil, domain.ErrConfigLoad.WithCause(err)
	}

	// Flags win over file and environment.
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := c.String("log-format"); v != "" {
		cfg.Log.Format = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
