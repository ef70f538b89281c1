package dupfind

import (
	"bytes"
	"encoding/hex"
)

// HashState tracks whether a Key carries a content digest.
type HashState uint8

const (
	// HashPending means no digest has been computed yet.
	HashPending HashState = iota
	// HashComputed means Hash holds the content digest.
	HashComputed
	// HashExcluded means the file could not be hashed and left its bucket.
	HashExcluded
)

// String returns the name of the state.
func (s HashState) String() string {
	switch s {
	case HashPending:
		return "pending"
	case HashComputed:
		return "computed"
	case HashExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Digest is a fixed-size content hash produced by an Algorithm.
type Digest []byte

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d)
}

// Key is the fingerprint of a candidate file: its size, and once computed, its digest.
type Key struct {
	// Size is the file length in bytes.
	Size uint64
	// Hash is the content digest, valid only when State is HashComputed.
	Hash Digest
	// State reports whether Hash has been computed.
	State HashState
}

// NewKey returns a size-only key.
func NewKey(size uint64) Key {
	return Key{Size: size, State: HashPending}
}

// WithHash returns a copy of k carrying the computed digest.
func (k Key) WithHash(d Digest) Key {
	return Key{Size: k.Size, Hash: d, State: HashComputed}
}

// Excluded returns a copy of k marked as not hashable.
func (k Key) Excluded() Key {
	return Key{Size: k.Size, State: HashExcluded}
}

// Equal reports whether k and o may describe the same content.
// Sizes must match, and when both keys carry a digest, the digests must match too.
func (k Key) Equal(o Key) bool {
	if k.Size != o.Size {
		return false
	}

	if k.State == HashComputed && o.State == HashComputed {
		return bytes.Equal(k.Hash, o.Hash)
	}

	return true
}

// Confirms reports whether k and o are confirmed duplicates: both hashed, same size, same digest.
func (k Key) Confirms(o Key) bool {
	return k.State == HashComputed && o.State == HashComputed && k.Equal(o)
}

// FileRecord is a single file that passed the walk filters.
type FileRecord struct {
	// Key is the size and (later) digest of the file.
	Key Key
	// Path is the file path, absolute or as walked from the root.
	Path string
}
