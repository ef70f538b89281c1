package dupfind

import (
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// Algorithm names a content digest.
type Algorithm string

const (
	// Blake3 is the 256-bit BLAKE3 digest.
	Blake3 Algorithm = "blake3"
	// Blake2b is the 256-bit BLAKE2b digest.
	Blake2b Algorithm = "blake2b"
	// SHA256 is the SHA-256 digest.
	SHA256 Algorithm = "sha256"
	// SHA512 is the SHA-512 digest.
	SHA512 Algorithm = "sha512"
	// Murmur3 is the 128-bit non-cryptographic MurmurHash3 checksum.
	Murmur3 Algorithm = "murmur3"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = Blake3

// Algorithms lists the supported algorithms in display order.
//
//nolint:gochecknoglobals // Lookup table
var Algorithms = []Algorithm{Blake3, Blake2b, SHA256, SHA512, Murmur3}

// ParseAlgorithm returns the algorithm for a case-insensitive name.
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, err := alg.New(); err != nil {
		return "", err
	}

	return alg, nil
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// New returns a fresh hasher. The empty algorithm selects DefaultAlgorithm.
func (a Algorithm) New() (hash.Hash, error) {
	switch a {
	case Blake3, "":
		return blake3.New(32, nil), nil
	case Blake2b:
		return blake2b.New256(nil)
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	case Murmur3:
		return murmur3.New128(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	h, err := a.New()
	if err != nil {
		return 0
	}

	return h.Size()
}

// bufferSize is the read buffer used when hashing a file.
const bufferSize = 128 * 1024

// hashFile computes the digest of the file at path.
// It fails if the number of bytes read differs from the size seen during the walk.
func hashFile(path string, size uint64, alg Algorithm, buf []byte) (Digest, error) {
	hasher, err := alg.New()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %q: %w", path, err)
	}
	defer file.Close()

	// LimitReader hides (*os.File).WriteTo so buf is used, and stops reading
	// one byte past the expected size.
	n, err := io.CopyBuffer(hasher, io.LimitReader(file, int64(size)+1), buf) //nolint:gosec // Sizes originate from int64 file info
	if err != nil {
		return nil, fmt.Errorf("hashing file %q: %w", path, err)
	}

	if uint64(n) != size { //nolint:gosec // n is never negative
		return nil, fmt.Errorf("hashing file %q: %w: read %d bytes, expected %d", path, ErrSizeChanged, n, size)
	}

	return hasher.Sum(nil), nil
}
