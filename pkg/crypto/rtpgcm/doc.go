// Package rtpgcm implements the AES-GCM packet cipher used by the
// PacketSeal real-time transport stack.
//
// The package exposes the per-packet cipher contract the protocol layer
// drives once per packet: allocate a context, bind a key, then for every
// packet select the IV and direction, accumulate additional authenticated
// data, transform the payload, and emit or verify the authentication tag.
//
// Variants:
//
//   - AES-128-GCM: 28-byte key-plus-salt blob, 16-byte AES key
//   - AES-256-GCM: 44-byte key-plus-salt blob, 32-byte AES key
//
// Both variants use a 12-byte nonce and an 8- or 16-byte authentication
// tag, fixed at allocation time.
//
// Design notes:
//
//   - A context holds two sub-engines keyed from the same key material,
//     one fixed to the encrypt direction and one to the decrypt direction.
//     The packet's direction, chosen at SetIV time, selects which engine
//     is active.
//   - AAD may arrive in several fragments (RTP header, then extension);
//     it is buffered and committed to the engine in a single shot when the
//     transform runs.
//   - Authentication failure is reported as ErrAuthFailure, distinct from
//     ErrCipherFailure, so the transport layer can apply its drop-and-count
//     policy instead of treating the packet as a transient fault.
//
// A context is not safe for concurrent use; the transport layer owns one
// context per stream and serializes access to it.
package rtpgcm
