// Package confloader provides configuration loading for PacketSeal tooling.
//
// It uses koanf to merge configuration from multiple sources with
// priority Env > File > Default:
//
//   - YAML configuration files
//   - Environment variables with the PACKETSEAL_ prefix
//   - Maps, for flag overrides and tests
//
// The harness is a one-shot tool, so there is no file watching or
// reload support.
package confloader
