// Package metric provides Prometheus metrics for PacketSeal.
//
// The cipher core stays metrics-free; this package gives the embedding
// transport stack and the CLI harness a registry of cipher counters:
//
//   - packetseal_encrypt_ops_total / packetseal_decrypt_ops_total,
//     labelled by algorithm
//   - packetseal_auth_failures_total, the drop-and-count signal for
//     packets whose authentication tag did not verify
//   - packetseal_selftest_runs_total / packetseal_selftest_case_failures_total
//
// Handler() exposes the registry in Prometheus text format for stacks
// that serve /metrics.
package metric
