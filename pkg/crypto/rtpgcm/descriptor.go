package rtpgcm

// AlgorithmID identifies a cipher variant on the wire and in descriptors.
type AlgorithmID uint16

const (
	// AlgorithmAES128GCM identifies the AES-128-GCM variant.
	AlgorithmAES128GCM AlgorithmID = 6

	// AlgorithmAES256GCM identifies the AES-256-GCM variant.
	AlgorithmAES256GCM AlgorithmID = 7
)

// String returns the variant name.
func (a AlgorithmID) String() string {
	switch a {
	case AlgorithmAES128GCM:
		return "AES-128-GCM"
	case AlgorithmAES256GCM:
		return "AES-256-GCM"
	default:
		return "unknown"
	}
}

// TestCase is one known-answer vector: feeding Key, IV, AAD, and Plaintext
// through the contract must produce exactly CiphertextWithTag (ciphertext
// followed by the TagLen-byte tag).
type TestCase struct {
	Key               []byte // key-plus-salt blob, KeyLen128 or KeyLen256 bytes
	IV                []byte // 12-byte nonce
	AAD               []byte
	Plaintext         []byte
	CiphertextWithTag []byte
	TagLen            int
}

// Descriptor is the static, immutable description of one cipher variant:
// its name, algorithm identifier, accepted key-plus-salt length, and the
// known-answer vectors an external self-test harness replays through the
// public contract.
type Descriptor struct {
	Name      string
	Algorithm AlgorithmID
	KeyLen    int
	TestCases []TestCase
}

// AES128GCM describes the AES-128-GCM variant.
var AES128GCM = &Descriptor{
	Name:      "AES-128 GCM",
	Algorithm: AlgorithmAES128GCM,
	KeyLen:    KeyLen128,
	TestCases: aes128GCMTestCases,
}

// AES256GCM describes the AES-256-GCM variant.
var AES256GCM = &Descriptor{
	Name:      "AES-256 GCM",
	Algorithm: AlgorithmAES256GCM,
	KeyLen:    KeyLen256,
	TestCases: aes256GCMTestCases,
}

// Descriptors returns all cipher variant descriptors.
func Descriptors() []*Descriptor {
	return []*Descriptor{AES128GCM, AES256GCM}
}

// DescriptorFor returns the descriptor for the given algorithm, or nil.
func DescriptorFor(algorithm AlgorithmID) *Descriptor {
	for _, d := range Descriptors() {
		if d.Algorithm == algorithm {
			return d
		}
	}
	return nil
}
