// Package logger provides structured logging for PacketSeal tooling.
package logger

import (
	"log/slog"
	"strconv"
	"strings"
)

// Attribute keys whose values carry secret or payload material. Tags and
// nonces travel on the wire in the clear, so they stay loggable; keys,
// salts, and plaintext never are.
var sensitiveKeyPatterns = []string{
	"key",
	"salt",
	"plaintext",
	"secret",
	"password",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive redacts attributes whose key names suggest secret
// material, recursing into groups.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if IsSensitiveKey(a.Key) && a.Value.String() != "" {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}
	return a
}

// IsSensitiveKey checks if an attribute key suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// Buffer describes a byte buffer for logging without exposing contents:
// only its length is formatted. Use this for keys, payloads, and AAD.
func Buffer(b []byte) string {
	if b == nil {
		return "nil"
	}
	return "[" + strconv.Itoa(len(b)) + " bytes]"
}
