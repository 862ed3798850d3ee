// Package selftest replays the cipher descriptors' known-answer vectors
// through the public packet cipher contract.
//
// For every vector the harness runs three passes:
//
//   - encrypt: AAD delivered in two fragments, output compared byte for
//     byte against the expected ciphertext-plus-tag
//   - decrypt: the expected ciphertext-plus-tag must verify and recover
//     the exact plaintext
//   - tamper: bit flips in ciphertext, tag, and AAD must each fail with
//     an authentication error, never a successful decrypt
//
// The harness only touches exported API, so a passing report means the
// contract behaves as an embedding transport stack will see it.
package selftest
