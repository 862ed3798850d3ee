package rtpgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
)

// engine is one direction-bound AEAD transform state. The underlying
// primitive fixes direction when the key is bound, not when the nonce is
// set, so a context carries two engines keyed from the same material and
// activates one per packet.
type engine struct {
	direction Direction
	aead      cipher.AEAD

	nonce  [NonceSize]byte
	primed bool

	// Full 16-byte tag of the last completed transform; GetTag truncates.
	tag      [TagSize]byte
	tagValid bool
}

func newEngine(dir Direction) *engine {
	return &engine{direction: dir}
}

// bindKey keys the engine for its fixed direction. Any previous per-packet
// state is discarded.
func (e *engine) bindKey(key []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return ErrInitFailure.WithCause(err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return ErrInitFailure.WithCause(err)
	}
	e.aead = aead
	e.primed = false
	e.tagValid = false
	return nil
}

// reset discards the previous packet's partial transform state.
func (e *engine) reset() error {
	if e.aead == nil {
		return ErrAlgorithmFailure.WithDetails("engine has no key bound")
	}
	e.primed = false
	e.tagValid = false
	for i := range e.nonce {
		e.nonce[i] = 0
	}
	return nil
}

// programNonce loads the packet nonce and primes the transform counter so
// a packet with no AAD still starts at the correct block.
func (e *engine) programNonce(iv []byte) error {
	if e.aead == nil {
		return ErrInitFailure.WithDetails("nonce programmed before key bind")
	}
	copy(e.nonce[:], iv)
	e.primed = true
	return nil
}

// seal transforms buf in place under the programmed nonce, caching the
// full tag for a later GetTag. The staging buffer is sized from the AEAD's
// own overhead, never from caller-supplied lengths.
func (e *engine) seal(buf, aad []byte) (int, error) {
	if !e.primed {
		return 0, ErrAlgorithmFailure.WithDetails("no nonce programmed")
	}
	e.primed = false

	out := e.aead.Seal(make([]byte, 0, len(buf)+e.aead.Overhead()), e.nonce[:], buf, aad)
	n := copy(buf, out[:len(buf)])
	copy(e.tag[:], out[len(buf):])
	e.tagValid = true
	return n, nil
}

// writeTag copies the leading tagLen bytes of the cached tag into buf.
func (e *engine) writeTag(buf []byte, tagLen int) (int, error) {
	if !e.tagValid {
		return 0, ErrCipherFailure.WithDetails("no completed encrypt to tag")
	}
	return copy(buf, e.tag[:tagLen]), nil
}

// open splits buf into ciphertext and a trailing tagLen-byte tag, recovers
// the plaintext in place, and verifies exactly tagLen tag bytes.
//
// Full tags verify through the AEAD directly. Truncated tags are below the
// primitive's minimum, so the engine recomputes: sealing the ciphertext
// yields the plaintext (the GCM keystream is direction-symmetric), and
// sealing that plaintext again yields the full tag over the original
// ciphertext, of which the leading tagLen bytes are compared in constant
// time.
func (e *engine) open(buf []byte, tagLen int, aad []byte) (int, error) {
	if !e.primed {
		return 0, ErrAlgorithmFailure.WithDetails("no nonce programmed")
	}
	e.primed = false
	e.tagValid = false

	n := len(buf) - tagLen
	ciphertext := buf[:n]
	tag := buf[n:]

	if tagLen == TagSize {
		if _, err := e.aead.Open(buf[:0], e.nonce[:], buf, aad); err != nil {
			wipeBytes(ciphertext)
			return 0, ErrAuthFailure.WithCause(err)
		}
		return n, nil
	}

	scratch := e.aead.Seal(make([]byte, 0, n+e.aead.Overhead()), e.nonce[:], ciphertext, aad)
	plaintext := scratch[:n]
	full := e.aead.Seal(make([]byte, 0, n+e.aead.Overhead()), e.nonce[:], plaintext, aad)
	if subtle.ConstantTimeCompare(full[n:n+tagLen], tag) != 1 {
		wipeBytes(plaintext)
		return 0, ErrAuthFailure.WithDetails("truncated tag mismatch")
	}
	copy(buf, plaintext)
	wipeBytes(plaintext)
	return n, nil
}

// wipe zeroizes key-derived state before the engine is released.
func (e *engine) wipe() {
	e.aead = nil
	e.primed = false
	e.tagValid = false
	for i := range e.nonce {
		e.nonce[i] = 0
	}
	for i := range e.tag {
		e.tag[i] = 0
	}
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
