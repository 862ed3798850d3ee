// Package metric provides Prometheus metrics for PacketSeal.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the cipher counters with their Prometheus registry.
type Registry struct {
	registry *prometheus.Registry

	// EncryptOps counts completed encrypt transforms, by algorithm.
	EncryptOps *prometheus.CounterVec

	// DecryptOps counts completed decrypt transforms, by algorithm.
	DecryptOps *prometheus.CounterVec

	// AuthFailures counts decrypts dropped on tag mismatch, by algorithm.
	AuthFailures *prometheus.CounterVec

	// SelfTestRuns counts self-test harness runs.
	SelfTestRuns prometheus.Counter

	// SelfTestCaseFailures counts failed known-answer cases.
	SelfTestCaseFailures prometheus.Counter
}

// NewRegistry creates a registry with all cipher counters registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		EncryptOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packetseal_encrypt_ops_total",
			Help: "Completed encrypt transforms.",
		}, []string{"algorithm"}),
		DecryptOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packetseal_decrypt_ops_total",
			Help: "Completed decrypt transforms.",
		}, []string{"algorithm"}),
		AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packetseal_auth_failures_total",
			Help: "Packets dropped because the authentication tag did not verify.",
		}, []string{"algorithm"}),
		SelfTestRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packetseal_selftest_runs_total",
			Help: "Self-test harness runs.",
		}),
		SelfTestCaseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "packetseal_selftest_case_failures_total",
			Help: "Failed known-answer self-test cases.",
		}),
	}

	r.registry.MustRegister(
		r.EncryptOps,
		r.DecryptOps,
		r.AuthFailures,
		r.SelfTestRuns,
		r.SelfTestCaseFailures,
	)
	return r
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for embedding stacks that
// merge it into their own exposition endpoint.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
