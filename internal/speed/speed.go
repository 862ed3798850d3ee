// Package speed benchmarks the packet cipher variants and prints a short
// throughput table, so operators can judge a deployment target without
// writing benchmark code themselves.
package speed

import (
	"crypto/rand"
	"fmt"
	"io"
	"testing"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/packetseal/packetseal-go/pkg/crypto/rtpgcm"
)

// DefaultPacketSize is a typical RTP payload after header overhead.
const DefaultPacketSize = 1200

type candidate struct {
	name string
	bf   func(b *testing.B, packetSize int)
}

// Run benchmarks every variant at the given payload size and writes one
// line per candidate to w.
func Run(w io.Writer, packetSize int) error {
	if packetSize <= 0 {
		packetSize = DefaultPacketSize
	}

	candidates := []candidate{
		{"AES-128-GCM", func(b *testing.B, n int) { benchSeal(b, rtpgcm.KeyLen128, n) }},
		{"AES-256-GCM", func(b *testing.B, n int) { benchSeal(b, rtpgcm.KeyLen256, n) }},
		{"XChaCha20-Poly1305", benchXChaCha},
	}

	fmt.Fprintf(w, "payload size: %d bytes\n", packetSize)
	for _, c := range candidates {
		r := testing.Benchmark(func(b *testing.B) { c.bf(b, packetSize) })
		fmt.Fprintf(w, "%-20s %9.2f MB/s\n", c.name, mbPerSec(r))
	}
	return nil
}

// benchSeal drives the packet cipher through its per-packet cycle the
// way a transport stack would: fresh IV, AAD, encrypt in place, read the
// tag.
func benchSeal(b *testing.B, keyLen, packetSize int) {
	key := randomBytes(keyLen)
	iv := randomBytes(rtpgcm.NonceSize)
	aad := randomBytes(12)

	c, err := rtpgcm.New(keyLen, rtpgcm.TagSize)
	if err != nil {
		b.Fatal(err)
	}
	defer c.Close()
	if err := c.Init(key); err != nil {
		b.Fatal(err)
	}

	buf := randomBytes(packetSize)
	tag := make([]byte, rtpgcm.TagSize)

	b.SetBytes(int64(packetSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.SetIV(iv, rtpgcm.DirectionEncrypt); err != nil {
			b.Fatal(err)
		}
		if err := c.SetAAD(aad); err != nil {
			b.Fatal(err)
		}
		if _, err := c.Encrypt(buf); err != nil {
			b.Fatal(err)
		}
		if _, err := c.GetTag(tag); err != nil {
			b.Fatal(err)
		}
	}
}

// benchXChaCha is the reference point: the fastest software-only AEAD on
// machines without AES instructions.
func benchXChaCha(b *testing.B, packetSize int) {
	aead, err := chacha20poly1305.NewX(randomBytes(chacha20poly1305.KeySize))
	if err != nil {
		b.Fatal(err)
	}
	nonce := randomBytes(chacha20poly1305.NonceSizeX)
	aad := randomBytes(12)
	buf := randomBytes(packetSize)
	dst := make([]byte, 0, packetSize+aead.Overhead())

	b.SetBytes(int64(packetSize))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = aead.Seal(dst[:0], nonce, buf, aad)
	}
}

func mbPerSec(r testing.BenchmarkResult) float64 {
	if r.T <= 0 || r.Bytes <= 0 || r.N <= 0 {
		return 0
	}
	return float64(r.Bytes) * float64(r.N) / 1e6 / r.T.Seconds()
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
