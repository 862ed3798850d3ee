package rtpgcm

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

// patternBytes returns n deterministic bytes for test payloads.
func patternBytes(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)*7 + seed
	}
	return b
}

// sealPacket drives one encrypt packet through the contract and returns
// ciphertext and tag.
func sealPacket(t *testing.T, c *CipherContext, iv []byte, aad [][]byte, plaintext []byte) ([]byte, []byte) {
	t.Helper()
	if err := c.SetIV(iv, DirectionEncrypt); err != nil {
		t.Fatalf("SetIV() error = %v", err)
	}
	for _, frag := range aad {
		if err := c.SetAAD(frag); err != nil {
			t.Fatalf("SetAAD() error = %v", err)
		}
	}
	buf := append([]byte(nil), plaintext...)
	n, err := c.Encrypt(buf)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	if n != len(plaintext) {
		t.Fatalf("Encrypt() length = %d, want %d", n, len(plaintext))
	}
	tag := make([]byte, c.TagLen())
	if _, err := c.GetTag(tag); err != nil {
		t.Fatalf("GetTag() error = %v", err)
	}
	return buf[:n], tag
}

// openPacket drives one decrypt packet through the contract.
func openPacket(c *CipherContext, iv []byte, aad [][]byte, input []byte) ([]byte, error) {
	if err := c.SetIV(iv, DirectionDecrypt); err != nil {
		return nil, err
	}
	for _, frag := range aad {
		if err := c.SetAAD(frag); err != nil {
			return nil, err
		}
	}
	buf := append([]byte(nil), input...)
	n, err := c.Decrypt(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		keyLen  int
		tagLen  int
		wantErr bool
	}{
		{"AES-128 full tag", KeyLen128, TagSize, false},
		{"AES-128 short tag", KeyLen128, TagSizeShort, false},
		{"AES-256 full tag", KeyLen256, TagSize, false},
		{"AES-256 short tag", KeyLen256, TagSizeShort, false},
		{"Bare AES-128 key without salt", 16, TagSize, true},
		{"Bare AES-256 key without salt", 32, TagSize, true},
		{"Zero key length", 0, TagSize, true},
		{"Overlong key", 64, TagSize, true},
		{"12-byte tag", KeyLen128, 12, true},
		{"Zero tag length", KeyLen128, 0, true},
		{"Oversized tag", KeyLen256, 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.keyLen, tt.tagLen)
			if tt.wantErr {
				if !errors.Is(err, ErrBadParameter) {
					t.Errorf("New() error = %v, want ErrBadParameter", err)
				}
				if c != nil {
					t.Error("New() returned a context on invalid parameters")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if c.TagLen() != tt.tagLen {
				t.Errorf("TagLen() = %d, want %d", c.TagLen(), tt.tagLen)
			}
			if got := c.Descriptor().KeyLen; got != tt.keyLen {
				t.Errorf("Descriptor().KeyLen = %d, want %d", got, tt.keyLen)
			}
		})
	}
}

func TestKnownAnswer(t *testing.T) {
	for _, d := range Descriptors() {
		for _, tc := range d.TestCases {
			t.Run(fmt.Sprintf("%s tag%d", d.Name, tc.TagLen), func(t *testing.T) {
				c, err := New(len(tc.Key), tc.TagLen)
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				defer c.Close()
				if err := c.Init(tc.Key); err != nil {
					t.Fatalf("Init() error = %v", err)
				}

				// AAD deliberately split in two, the way RTP header and
				// extension arrive.
				half := len(tc.AAD) / 2
				ct, tag := sealPacket(t, c, tc.IV, [][]byte{tc.AAD[:half], tc.AAD[half:]}, tc.Plaintext)
				got := append(ct, tag...)
				if !bytes.Equal(got, tc.CiphertextWithTag) {
					t.Errorf("encrypt mismatch\n got %x\nwant %x", got, tc.CiphertextWithTag)
				}

				pt, err := openPacket(c, tc.IV, [][]byte{tc.AAD}, tc.CiphertextWithTag)
				if err != nil {
					t.Fatalf("decrypt error = %v", err)
				}
				if !bytes.Equal(pt, tc.Plaintext) {
					t.Errorf("decrypt mismatch\n got %x\nwant %x", pt, tc.Plaintext)
				}
			})
		}
	}
}

func TestRoundTrip(t *testing.T) {
	keys := map[int][]byte{
		KeyLen128: patternBytes(KeyLen128, 1),
		KeyLen256: patternBytes(KeyLen256, 2),
	}
	iv := patternBytes(NonceSize, 3)
	aad := patternBytes(20, 4)

	for keyLen, key := range keys {
		for _, tagLen := range []int{TagSizeShort, TagSize} {
			for _, ptLen := range []int{0, 1, 15, 16, 17, 60, 1000} {
				name := fmt.Sprintf("key%d tag%d pt%d", keyLen, tagLen, ptLen)
				t.Run(name, func(t *testing.T) {
					c, err := New(keyLen, tagLen)
					if err != nil {
						t.Fatalf("New() error = %v", err)
					}
					defer c.Close()
					if err := c.Init(key); err != nil {
						t.Fatalf("Init() error = %v", err)
					}

					plaintext := patternBytes(ptLen, 5)
					ct, tag := sealPacket(t, c, iv, [][]byte{aad}, plaintext)

					pt, err := openPacket(c, iv, [][]byte{aad}, append(ct, tag...))
					if err != nil {
						t.Fatalf("decrypt error = %v", err)
					}
					if !bytes.Equal(pt, plaintext) {
						t.Errorf("round trip mismatch\n got %x\nwant %x", pt, plaintext)
					}
				})
			}
		}
	}
}

func TestAADFragmentation(t *testing.T) {
	key := patternBytes(KeyLen128, 9)
	iv := patternBytes(NonceSize, 10)
	aad := patternBytes(32, 11)
	plaintext := patternBytes(48, 12)

	c, err := New(KeyLen128, TagSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()
	if err := c.Init(key); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	single, singleTag := sealPacket(t, c, iv, [][]byte{aad}, plaintext)
	split, splitTag := sealPacket(t, c, iv, [][]byte{aad[:7], aad[7:]}, plaintext)

	if !bytes.Equal(single, split) || !bytes.Equal(singleTag, splitTag) {
		t.Error("fragmented AAD produced a different result than one-shot AAD")
	}
}

func TestTagTruncation(t *testing.T) {
	key := patternBytes(KeyLen256, 20)
	iv := patternBytes(NonceSize, 21)
	aad := patternBytes(12, 22)
	plaintext := patternBytes(100, 23)

	tags := make(map[int][]byte)
	cts := make(map[int][]byte)
	for _, tagLen := range []int{TagSizeShort, TagSize} {
		c, err := New(KeyLen256, tagLen)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := c.Init(key); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		cts[tagLen], tags[tagLen] = sealPacket(t, c, iv, [][]byte{aad}, plaintext)
		c.Close()
	}

	if !bytes.Equal(cts[TagSizeShort], cts[TagSize]) {
		t.Error("ciphertext differs between tag lengths")
	}
	if !bytes.Equal(tags[TagSizeShort], tags[TagSize][:TagSizeShort]) {
		t.Errorf("short tag %x is not a prefix of full tag %x", tags[TagSizeShort], tags[TagSize])
	}
}

func TestTamperDetection(t *testing.T) {
	key := patternBytes(KeyLen128, 30)
	iv := patternBytes(NonceSize, 31)
	aad := patternBytes(20, 32)
	plaintext := patternBytes(60, 33)

	for _, tagLen := range []int{TagSizeShort, TagSize} {
		c, err := New(KeyLen128, tagLen)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer c.Close()
		if err := c.Init(key); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		ct, tag := sealPacket(t, c, iv, [][]byte{aad}, plaintext)
		packet := append(append([]byte(nil), ct...), tag...)

		t.Run(fmt.Sprintf("tag%d", tagLen), func(t *testing.T) {
			// Baseline: the untampered packet verifies.
			if _, err := openPacket(c, iv, [][]byte{aad}, packet); err != nil {
				t.Fatalf("untampered decrypt error = %v", err)
			}

			for _, flip := range []struct {
				name string
				pos  int
			}{
				{"first ciphertext byte", 0},
				{"last ciphertext byte", len(ct) - 1},
				{"first tag byte", len(ct)},
				{"last tag byte", len(packet) - 1},
			} {
				t.Run(flip.name, func(t *testing.T) {
					tampered := append([]byte(nil), packet...)
					tampered[flip.pos] ^= 0x01
					if _, err := openPacket(c, iv, [][]byte{aad}, tampered); !errors.Is(err, ErrAuthFailure) {
						t.Errorf("decrypt error = %v, want ErrAuthFailure", err)
					}
				})
			}

			t.Run("tampered AAD", func(t *testing.T) {
				badAAD := append([]byte(nil), aad...)
				badAAD[3] ^= 0x80
				if _, err := openPacket(c, iv, [][]byte{badAAD}, packet); !errors.Is(err, ErrAuthFailure) {
					t.Errorf("decrypt error = %v, want ErrAuthFailure", err)
				}
			})
		})
	}
}

// The contract lets either concrete direction drive either transform; the
// engines are keyed identically, so sealing through the decrypt engine
// must produce the same bytes as the encrypt engine.
func TestDirectionPassThrough(t *testing.T) {
	key := patternBytes(KeyLen128, 40)
	iv := patternBytes(NonceSize, 41)
	plaintext := patternBytes(32, 42)

	c, err := New(KeyLen128, TagSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()
	if err := c.Init(key); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	viaEncrypt, tagEncrypt := sealPacket(t, c, iv, nil, plaintext)

	if err := c.SetIV(iv, DirectionDecrypt); err != nil {
		t.Fatalf("SetIV() error = %v", err)
	}
	buf := append([]byte(nil), plaintext...)
	if _, err := c.Encrypt(buf); err != nil {
		t.Fatalf("Encrypt() via decrypt engine error = %v", err)
	}
	tag := make([]byte, TagSize)
	if _, err := c.GetTag(tag); err != nil {
		t.Fatalf("GetTag() via decrypt engine error = %v", err)
	}

	if !bytes.Equal(buf, viaEncrypt) || !bytes.Equal(tag, tagEncrypt) {
		t.Error("decrypt engine pass-through produced different bytes")
	}
}

// SetIV drops AAD buffered by an aborted packet so it cannot leak into the
// next one.
func TestSetIVClearsStaleAAD(t *testing.T) {
	key := patternBytes(KeyLen128, 50)
	iv := patternBytes(NonceSize, 51)
	plaintext := patternBytes(24, 52)

	c, err := New(KeyLen128, TagSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()
	if err := c.Init(key); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	clean, cleanTag := sealPacket(t, c, iv, nil, plaintext)

	// Abort a packet after buffering AAD, then start over.
	if err := c.SetIV(iv, DirectionEncrypt); err != nil {
		t.Fatalf("SetIV() error = %v", err)
	}
	if err := c.SetAAD(patternBytes(16, 53)); err != nil {
		t.Fatalf("SetAAD() error = %v", err)
	}
	restarted, restartedTag := sealPacket(t, c, iv, nil, plaintext)

	if !bytes.Equal(clean, restarted) || !bytes.Equal(cleanTag, restartedTag) {
		t.Error("stale AAD leaked into the packet after SetIV")
	}
}

func TestOperationOrdering(t *testing.T) {
	key := patternBytes(KeyLen128, 60)
	iv := patternBytes(NonceSize, 61)

	newKeyed := func(t *testing.T) *CipherContext {
		t.Helper()
		c, err := New(KeyLen128, TagSize)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		t.Cleanup(func() { c.Close() })
		if err := c.Init(key); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		return c
	}

	t.Run("encrypt before SetIV", func(t *testing.T) {
		c := newKeyed(t)
		if _, err := c.Encrypt(make([]byte, 16)); !errors.Is(err, ErrBadParameter) {
			t.Errorf("Encrypt() error = %v, want ErrBadParameter", err)
		}
	})

	t.Run("second encrypt without SetIV", func(t *testing.T) {
		c := newKeyed(t)
		sealPacket(t, c, iv, nil, patternBytes(16, 62))
		if _, err := c.Encrypt(make([]byte, 16)); !errors.Is(err, ErrAlgorithmFailure) {
			t.Errorf("Encrypt() error = %v, want ErrAlgorithmFailure", err)
		}
	})

	t.Run("SetIV before Init", func(t *testing.T) {
		c, err := New(KeyLen128, TagSize)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer c.Close()
		if err := c.SetIV(iv, DirectionEncrypt); !errors.Is(err, ErrAlgorithmFailure) {
			t.Errorf("SetIV() error = %v, want ErrAlgorithmFailure", err)
		}
	})

	t.Run("GetTag before encrypt", func(t *testing.T) {
		c := newKeyed(t)
		if err := c.SetIV(iv, DirectionEncrypt); err != nil {
			t.Fatalf("SetIV() error = %v", err)
		}
		if _, err := c.GetTag(make([]byte, TagSize)); !errors.Is(err, ErrCipherFailure) {
			t.Errorf("GetTag() error = %v, want ErrCipherFailure", err)
		}
	})

	t.Run("GetTag short buffer", func(t *testing.T) {
		c := newKeyed(t)
		sealPacket(t, c, iv, nil, patternBytes(16, 63))
		if _, err := c.GetTag(make([]byte, TagSize-1)); !errors.Is(err, ErrBadParameter) {
			t.Errorf("GetTag() error = %v, want ErrBadParameter", err)
		}
	})

	t.Run("decrypt input shorter than tag", func(t *testing.T) {
		c := newKeyed(t)
		if err := c.SetIV(iv, DirectionDecrypt); err != nil {
			t.Fatalf("SetIV() error = %v", err)
		}
		if _, err := c.Decrypt(make([]byte, TagSize-1)); !errors.Is(err, ErrBadParameter) {
			t.Errorf("Decrypt() error = %v, want ErrBadParameter", err)
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		c := newKeyed(t)
		if err := c.SetIV(iv, DirectionUnset); !errors.Is(err, ErrBadParameter) {
			t.Errorf("SetIV() error = %v, want ErrBadParameter", err)
		}
		if err := c.SetIV(iv, Direction(9)); !errors.Is(err, ErrBadParameter) {
			t.Errorf("SetIV() error = %v, want ErrBadParameter", err)
		}
	})

	t.Run("invalid IV length", func(t *testing.T) {
		c := newKeyed(t)
		if err := c.SetIV(make([]byte, NonceSize-1), DirectionEncrypt); !errors.Is(err, ErrBadParameter) {
			t.Errorf("SetIV() error = %v, want ErrBadParameter", err)
		}
	})

	t.Run("Init wrong blob length", func(t *testing.T) {
		c, err := New(KeyLen128, TagSize)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer c.Close()
		if err := c.Init(make([]byte, KeySize128)); !errors.Is(err, ErrInitFailure) {
			t.Errorf("Init() error = %v, want ErrInitFailure", err)
		}
	})

	t.Run("AAD overflow", func(t *testing.T) {
		c := newKeyed(t)
		if err := c.SetIV(iv, DirectionEncrypt); err != nil {
			t.Fatalf("SetIV() error = %v", err)
		}
		if err := c.SetAAD(make([]byte, aadCapacity)); err != nil {
			t.Fatalf("SetAAD() at capacity error = %v", err)
		}
		if err := c.SetAAD([]byte{0x01}); !errors.Is(err, ErrBadParameter) {
			t.Errorf("SetAAD() past capacity error = %v, want ErrBadParameter", err)
		}
	})
}

func TestClose(t *testing.T) {
	key := patternBytes(KeyLen128, 70)

	c, err := New(KeyLen128, TagSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Init(key); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	var nilCtx *CipherContext
	if err := nilCtx.Close(); err != nil {
		t.Errorf("nil Close() error = %v, want nil", err)
	}

	if err := c.Init(key); !errors.Is(err, ErrInitFailure) {
		t.Errorf("Init() after Close error = %v, want ErrInitFailure", err)
	}
	if err := c.SetIV(patternBytes(NonceSize, 71), DirectionEncrypt); !errors.Is(err, ErrAlgorithmFailure) {
		t.Errorf("SetIV() after Close error = %v, want ErrAlgorithmFailure", err)
	}
	if _, err := c.Encrypt(make([]byte, 8)); !errors.Is(err, ErrBadParameter) {
		t.Errorf("Encrypt() after Close error = %v, want ErrBadParameter", err)
	}
}

func TestErrorCode(t *testing.T) {
	err := ErrAuthFailure.WithDetails("tag mismatch on packet 7")
	if !errors.Is(err, ErrAuthFailure) {
		t.Error("detailed error no longer matches its kind")
	}
	if errors.Is(err, ErrCipherFailure) {
		t.Error("auth failure must stay distinct from cipher failure")
	}
	if got := ErrorCode(err); got != "PS-CIPH-4010" {
		t.Errorf("ErrorCode() = %q, want PS-CIPH-4010", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Errorf("ErrorCode(plain) = %q, want empty", got)
	}
}
