package rtpgcm

import (
	"fmt"
	"runtime"
)

// CipherContext is one logical AES-GCM session. It owns two direction-bound
// sub-engines keyed from the same material, the per-packet AAD buffer, and
// the direction selected by the current packet's SetIV.
//
// Not safe for concurrent use; the transport layer serializes access per
// stream.
type CipherContext struct {
	algorithm AlgorithmID
	keySize   int
	tagLen    int

	aad    [aadCapacity]byte
	aadLen int

	direction Direction
	enc       *engine
	dec       *engine
}

// New allocates a zeroed cipher context for the variant matching keyLen.
//
// keyLen is the key-plus-salt blob length, KeyLen128 or KeyLen256; tagLen
// is TagSize or TagSizeShort. Any other value fails with ErrBadParameter
// and nothing is allocated. Both sub-engines start inert; Init keys them.
func New(keyLen, tagLen int) (*CipherContext, error) {
	var algorithm AlgorithmID
	var keySize int
	switch keyLen {
	case KeyLen128:
		algorithm = AlgorithmAES128GCM
		keySize = KeySize128
	case KeyLen256:
		algorithm = AlgorithmAES256GCM
		keySize = KeySize256
	default:
		return nil, ErrBadParameter.WithDetails(fmt.Sprintf("unsupported key length %d", keyLen))
	}
	if tagLen != TagSize && tagLen != TagSizeShort {
		return nil, ErrBadParameter.WithDetails(fmt.Sprintf("unsupported tag length %d", tagLen))
	}

	return &CipherContext{
		algorithm: algorithm,
		keySize:   keySize,
		tagLen:    tagLen,
		enc:       newEngine(DirectionEncrypt),
		dec:       newEngine(DirectionDecrypt),
	}, nil
}

// Algorithm returns the variant identifier bound at allocation.
func (c *CipherContext) Algorithm() AlgorithmID { return c.algorithm }

// KeySize returns the AES key length in bytes (16 or 32).
func (c *CipherContext) KeySize() int { return c.keySize }

// TagLen returns the tag length fixed at allocation (8 or 16).
func (c *CipherContext) TagLen() int { return c.tagLen }

// Descriptor returns the static descriptor of the bound variant.
func (c *CipherContext) Descriptor() *Descriptor {
	return DescriptorFor(c.algorithm)
}

// Init binds the key-plus-salt blob to both sub-engines, the encrypt engine
// keyed for encryption and the decrypt engine for decryption, even though
// the packet direction is not yet known. Direction resets to unset and any
// buffered AAD is dropped. The blob must be exactly keySize+SaltSize bytes;
// only the leading keySize bytes feed the transform.
func (c *CipherContext) Init(key []byte) error {
	if c.closed() {
		return ErrInitFailure.WithDetails("context is closed")
	}
	if len(key) != c.keySize+SaltSize {
		return ErrInitFailure.WithDetails(fmt.Sprintf("key blob is %d bytes, want %d", len(key), c.keySize+SaltSize))
	}

	c.direction = DirectionUnset
	c.aadLen = 0

	if err := c.enc.bindKey(key[:c.keySize]); err != nil {
		return err
	}
	if err := c.dec.bindKey(key[:c.keySize]); err != nil {
		return err
	}
	return nil
}

// SetIV stores the packet direction, resets the selected sub-engine's
// transform state, and programs the 12-byte nonce. Called exactly once per
// packet, before any SetAAD, Encrypt, or Decrypt for that packet.
func (c *CipherContext) SetIV(iv []byte, dir Direction) error {
	if dir != DirectionEncrypt && dir != DirectionDecrypt {
		return ErrBadParameter.WithDetails("direction must be encrypt or decrypt")
	}
	if len(iv) != NonceSize {
		return ErrBadParameter.WithDetails(fmt.Sprintf("iv is %d bytes, want %d", len(iv), NonceSize))
	}
	if c.closed() {
		return ErrAlgorithmFailure.WithDetails("context is closed")
	}

	c.direction = dir
	// AAD buffered by an aborted packet must not leak into this one.
	c.aadLen = 0

	eng := c.active()
	if err := eng.reset(); err != nil {
		return err
	}
	return eng.programNonce(iv)
}

// SetAAD appends a fragment of additional authenticated data. Fragments
// accumulate until Encrypt or Decrypt commits them to the active engine in
// a single shot; accumulating past the buffer capacity fails with
// ErrBadParameter instead of overflowing.
func (c *CipherContext) SetAAD(aad []byte) error {
	if c.aadLen+len(aad) > aadCapacity {
		return ErrBadParameter.WithDetails(fmt.Sprintf("aad overflow: %d buffered + %d new exceeds %d", c.aadLen, len(aad), aadCapacity))
	}
	copy(c.aad[c.aadLen:], aad)
	c.aadLen += len(aad)
	return nil
}

// consumeAAD hands the buffered AAD to the transform and resets the buffer.
// The length resets only here, on consumption.
func (c *CipherContext) consumeAAD() []byte {
	if c.aadLen == 0 {
		return nil
	}
	aad := append([]byte(nil), c.aad[:c.aadLen]...)
	c.aadLen = 0
	return aad
}

// Encrypt commits any buffered AAD, transforms buf in place, and returns
// the output length (equal to the input length; GCM adds no padding). The
// tag is not appended: GetTag retrieves it. Either concrete direction
// passes through to whichever engine SetIV activated.
func (c *CipherContext) Encrypt(buf []byte) (int, error) {
	if c.direction != DirectionEncrypt && c.direction != DirectionDecrypt {
		return 0, ErrBadParameter.WithDetails("no direction selected")
	}
	return c.active().seal(buf, c.consumeAAD())
}

// GetTag writes the tag of the just-completed encrypt, truncated to the
// context's tag length, into buf. Must run before any other operation
// reuses the active engine.
func (c *CipherContext) GetTag(buf []byte) (int, error) {
	if c.closed() {
		return 0, ErrCipherFailure.WithDetails("context is closed")
	}
	if len(buf) < c.tagLen {
		return 0, ErrBadParameter.WithDetails(fmt.Sprintf("tag buffer is %d bytes, want at least %d", len(buf), c.tagLen))
	}
	return c.active().writeTag(buf, c.tagLen)
}

// Decrypt treats buf as ciphertext followed by a tagLen-byte tag, commits
// any buffered AAD, recovers the plaintext into buf, and verifies the tag
// in constant time. Tag mismatch fails with ErrAuthFailure and the staged
// plaintext is wiped; the caller must treat buf as invalid.
func (c *CipherContext) Decrypt(buf []byte) (int, error) {
	if c.direction != DirectionEncrypt && c.direction != DirectionDecrypt {
		return 0, ErrBadParameter.WithDetails("no direction selected")
	}
	if len(buf) < c.tagLen {
		return 0, ErrBadParameter.WithDetails(fmt.Sprintf("input is %d bytes, shorter than the %d-byte tag", len(buf), c.tagLen))
	}
	return c.active().open(buf, c.tagLen, c.consumeAAD())
}

// Close wipes key-derived state from both sub-engines and the AAD buffer,
// then drops the engine references. Idempotent and nil-safe; the context
// must not be used afterwards.
func (c *CipherContext) Close() error {
	if c == nil {
		return nil
	}
	if c.enc != nil {
		c.enc.wipe()
		c.enc = nil
	}
	if c.dec != nil {
		c.dec.wipe()
		c.dec = nil
	}
	wipeBytes(c.aad[:])
	c.aadLen = 0
	c.direction = DirectionUnset
	// Wiped buffers may have GC copies; collecting now raises the bar for
	// recovering key material from freed memory.
	runtime.GC()
	return nil
}

// active selects the engine for the current direction. The decrypt engine
// is the fallback when no direction is set, matching the contract's
// pass-through behavior.
func (c *CipherContext) active() *engine {
	if c.direction == DirectionEncrypt {
		return c.enc
	}
	return c.dec
}

func (c *CipherContext) closed() bool {
	return c.enc == nil || c.dec == nil
}
