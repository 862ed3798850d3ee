// Package logger provides structured logging for PacketSeal tooling.
//
// It wraps the standard library log/slog to provide structured logging
// with automatic redaction of cryptographic material.
//
// Features:
//
//   - Text (default) and JSON structured output
//   - Automatic redaction of key/salt/plaintext attribute values
//   - Dynamic log level adjustment
//   - Buffer helper that logs byte-buffer lengths, never contents
//
// The cipher core itself never logs; logging belongs to the tooling and
// harness layers around it.
package logger
