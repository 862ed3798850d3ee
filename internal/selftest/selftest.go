// Package selftest replays the cipher descriptors' known-answer vectors
// through the public packet cipher contract.
package selftest

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/packetseal/packetseal-go/internal/telemetry/logger"
	"github.com/packetseal/packetseal-go/internal/telemetry/metric"
	"github.com/packetseal/packetseal-go/pkg/crypto/rtpgcm"
)

// CaseResult is the outcome of one known-answer case.
type CaseResult struct {
	Variant   string
	Algorithm rtpgcm.AlgorithmID
	TagLen    int
	Passed    bool
	Failure   string // empty when Passed
	Elapsed   time.Duration
}

// Report is the outcome of a full harness run.
type Report struct {
	RunID    string
	Started  time.Time
	Elapsed  time.Duration
	Cases    []CaseResult
	Passed   bool
	NumCases int
	NumFail  int
}

// Runner drives the known-answer cases.
type Runner struct {
	log     logger.Logger
	metrics *metric.Registry
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger; defaults to the package default logger.
func WithLogger(log logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// WithMetrics attaches a metric registry; nil disables counting.
func WithMetrics(m *metric.Registry) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a self-test runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: logger.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run replays every descriptor's vectors and returns the report. A failed
// case never aborts the run; the report carries all outcomes.
func (r *Runner) Run() *Report {
	report := &Report{
		RunID:   ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Started: time.Now(),
		Passed:  true,
	}
	if r.metrics != nil {
		r.metrics.SelfTestRuns.Inc()
	}

	log := r.log.With("run_id", report.RunID)
	for _, d := range rtpgcm.Descriptors() {
		for _, tc := range d.TestCases {
			start := time.Now()
			failure := r.runCase(d, tc)

			res := CaseResult{
				Variant:   d.Name,
				Algorithm: d.Algorithm,
				TagLen:    tc.TagLen,
				Passed:    failure == "",
				Failure:   failure,
				Elapsed:   time.Since(start),
			}
			report.Cases = append(report.Cases, res)
			report.NumCases++
			if !res.Passed {
				report.NumFail++
				report.Passed = false
				if r.metrics != nil {
					r.metrics.SelfTestCaseFailures.Inc()
				}
				log.Error("known-answer case failed",
					"variant", d.Name, "tag_len", tc.TagLen, "failure", failure)
			} else {
				log.Debug("known-answer case passed",
					"variant", d.Name, "tag_len", tc.TagLen)
			}
		}
	}

	report.Elapsed = time.Since(report.Started)
	log.Info("self-test complete",
		"cases", report.NumCases, "failed", report.NumFail, "elapsed", report.Elapsed)
	return report
}

// runCase runs one vector through encrypt, decrypt, and tamper passes.
// It returns a description of the first failure, or "".
func (r *Runner) runCase(d *rtpgcm.Descriptor, tc rtpgcm.TestCase) string {
	c, err := rtpgcm.New(len(tc.Key), tc.TagLen)
	if err != nil {
		return fmt.Sprintf("alloc: %v", err)
	}
	defer c.Close()

	if err := c.Init(tc.Key); err != nil {
		return fmt.Sprintf("init: %v", err)
	}

	if failure := r.encryptPass(c, d, tc); failure != "" {
		return failure
	}
	if failure := r.decryptPass(c, d, tc, tc.CiphertextWithTag, tc.Plaintext); failure != "" {
		return failure
	}
	return r.tamperPass(c, d, tc)
}

func (r *Runner) encryptPass(c *rtpgcm.CipherContext, d *rtpgcm.Descriptor, tc rtpgcm.TestCase) string {
	if err := c.SetIV(tc.IV, rtpgcm.DirectionEncrypt); err != nil {
		return fmt.Sprintf("encrypt set-iv: %v", err)
	}
	// The AAD goes in as two fragments, the way an RTP header and its
	// extension arrive, exercising the buffering path.
	half := len(tc.AAD) / 2
	if err := c.SetAAD(tc.AAD[:half]); err != nil {
		return fmt.Sprintf("set-aad: %v", err)
	}
	if err := c.SetAAD(tc.AAD[half:]); err != nil {
		return fmt.Sprintf("set-aad: %v", err)
	}

	buf := append([]byte(nil), tc.Plaintext...)
	n, err := c.Encrypt(buf)
	if err != nil {
		return fmt.Sprintf("encrypt: %v", err)
	}
	if r.metrics != nil {
		r.metrics.EncryptOps.WithLabelValues(d.Algorithm.String()).Inc()
	}

	tag := make([]byte, tc.TagLen)
	if _, err := c.GetTag(tag); err != nil {
		return fmt.Sprintf("get-tag: %v", err)
	}

	got := append(buf[:n], tag...)
	if !bytes.Equal(got, tc.CiphertextWithTag) {
		return fmt.Sprintf("ciphertext mismatch: got %x, want %x", got, tc.CiphertextWithTag)
	}
	return ""
}

func (r *Runner) decryptPass(c *rtpgcm.CipherContext, d *rtpgcm.Descriptor, tc rtpgcm.TestCase, input, want []byte) string {
	if err := c.SetIV(tc.IV, rtpgcm.DirectionDecrypt); err != nil {
		return fmt.Sprintf("decrypt set-iv: %v", err)
	}
	if err := c.SetAAD(tc.AAD); err != nil {
		return fmt.Sprintf("set-aad: %v", err)
	}

	buf := append([]byte(nil), input...)
	n, err := c.Decrypt(buf)
	if err != nil {
		if errors.Is(err, rtpgcm.ErrAuthFailure) && r.metrics != nil {
			r.metrics.AuthFailures.WithLabelValues(d.Algorithm.String()).Inc()
		}
		return fmt.Sprintf("decrypt: %v", err)
	}
	if r.metrics != nil {
		r.metrics.DecryptOps.WithLabelValues(d.Algorithm.String()).Inc()
	}
	if !bytes.Equal(buf[:n], want) {
		return fmt.Sprintf("plaintext mismatch: got %x, want %x", buf[:n], want)
	}
	return ""
}

// tamperPass flips one bit in the ciphertext, the tag, and the AAD in
// turn; every variant must be rejected with an authentication error.
func (r *Runner) tamperPass(c *rtpgcm.CipherContext, d *rtpgcm.Descriptor, tc rtpgcm.TestCase) string {
	ctLen := len(tc.CiphertextWithTag) - tc.TagLen

	regions := []struct {
		name string
		pos  int
	}{
		{"ciphertext", 0},
		{"tag", ctLen},
	}
	for _, region := range regions {
		tampered := append([]byte(nil), tc.CiphertextWithTag...)
		tampered[region.pos] ^= 0x01

		if err := c.SetIV(tc.IV, rtpgcm.DirectionDecrypt); err != nil {
			return fmt.Sprintf("tamper set-iv: %v", err)
		}
		if err := c.SetAAD(tc.AAD); err != nil {
			return fmt.Sprintf("tamper set-aad: %v", err)
		}
		buf := append([]byte(nil), tampered...)
		if _, err := c.Decrypt(buf); !errors.Is(err, rtpgcm.ErrAuthFailure) {
			return fmt.Sprintf("tampered %s: error = %v, want auth failure", region.name, err)
		}
		if r.metrics != nil {
			r.metrics.AuthFailures.WithLabelValues(d.Algorithm.String()).Inc()
		}
	}

	badAAD := append([]byte(nil), tc.AAD...)
	badAAD[0] ^= 0x01
	if err := c.SetIV(tc.IV, rtpgcm.DirectionDecrypt); err != nil {
		return fmt.Sprintf("tamper set-iv: %v", err)
	}
	if err := c.SetAAD(badAAD); err != nil {
		return fmt.Sprintf("tamper set-aad: %v", err)
	}
	buf := append([]byte(nil), tc.CiphertextWithTag...)
	if _, err := c.Decrypt(buf); !errors.Is(err, rtpgcm.ErrAuthFailure) {
		return fmt.Sprintf("tampered aad: error = %v, want auth failure", err)
	}
	if r.metrics != nil {
		r.metrics.AuthFailures.WithLabelValues(d.Algorithm.String()).Inc()
	}
	return ""
}
