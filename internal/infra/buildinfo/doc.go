// Package buildinfo provides build-time version information for the
// packetseal binary, injected via ldflags.
package buildinfo
