package rtpgcm

// Sizes shared by both cipher variants.
const (
	// NonceSize is the GCM nonce length in bytes. Always 12.
	NonceSize = 12

	// SaltSize is the length of the session salt carried at the tail of
	// the key-plus-salt blob. The salt feeds the enclosing transport's IV
	// construction; the transform itself never reads it.
	SaltSize = 12

	// TagSize is the full GCM authentication tag length in bytes.
	TagSize = 16

	// TagSizeShort is the truncated tag length in bytes. Only TagSize and
	// TagSizeShort are accepted at allocation time.
	TagSizeShort = 8

	// KeySize128 and KeySize256 are the AES key lengths in bytes.
	KeySize128 = 16
	KeySize256 = 32

	// KeyLen128 and KeyLen256 are the accepted key-plus-salt blob lengths.
	KeyLen128 = KeySize128 + SaltSize
	KeyLen256 = KeySize256 + SaltSize

	// aadCapacity bounds the total AAD accumulated for one packet.
	aadCapacity = 1024
)

// Direction selects which sub-engine a packet drives.
type Direction int

const (
	// DirectionUnset is the direction of a context before SetIV.
	DirectionUnset Direction = iota

	// DirectionEncrypt selects the encrypt sub-engine.
	DirectionEncrypt

	// DirectionDecrypt selects the decrypt sub-engine.
	DirectionDecrypt
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionEncrypt:
		return "encrypt"
	case DirectionDecrypt:
		return "decrypt"
	case DirectionUnset:
		return "unset"
	default:
		return "invalid"
	}
}

// PacketCipher is the per-packet cipher contract consumed by the transport
// layer. Calls are ordered: Init once after allocation, then per packet
// SetIV, zero or more SetAAD, one Encrypt or Decrypt, and for encryption
// GetTag. Close runs once at teardown and wipes key-derived state.
type PacketCipher interface {
	// Init binds the key-plus-salt blob to both sub-engines.
	Init(key []byte) error

	// SetIV programs the 12-byte nonce and selects the packet direction.
	SetIV(iv []byte, dir Direction) error

	// SetAAD appends a fragment of additional authenticated data for the
	// current packet.
	SetAAD(aad []byte) error

	// Encrypt transforms buf in place and returns the output length.
	// The authentication tag is not appended; fetch it with GetTag.
	Encrypt(buf []byte) (int, error)

	// Decrypt splits buf into ciphertext and trailing tag, transforms the
	// ciphertext in place, verifies the tag, and returns the plaintext
	// length.
	Decrypt(buf []byte) (int, error)

	// GetTag writes the (possibly truncated) tag of the just-completed
	// encrypt into buf and returns the tag length.
	GetTag(buf []byte) (int, error)

	// Close wipes key-derived state and releases the context.
	Close() error
}

var _ PacketCipher = (*CipherContext)(nil)
