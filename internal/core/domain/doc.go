// Package domain defines shared domain types for PacketSeal tooling.
//
// The cipher core in pkg/crypto/rtpgcm is self-contained so external
// transport stacks can depend on it alone. This package holds what the
// surrounding tooling shares:
//
//   - Errors: coded error definitions for the CLI, config, and self-test
//     harness surface
//
// Domain types are pure values without IO dependencies or framework
// coupling.
package domain
