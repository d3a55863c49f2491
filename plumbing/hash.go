package plumbing

import (
	"bytes"
	"encoding/hex"
	"sort"

	"github.com/niks/git/plumbing/hash"
)

// Hash is the identifier of an object in the content-addressed store: a
// fixed width digest. Hashes order lexicographically by byte comparison.
type Hash [hash.Size]byte

// ZeroHash is a Hash with value zero.
var ZeroHash Hash

// NewHash returns a new Hash from a hexadecimal hash representation.
// Invalid input results into the zero hash.
func NewHash(s string) Hash {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ZeroHash
	}

	var h Hash
	copy(h[:], b)

	return h
}

// IsZero returns true if the hash is zero.
func (h Hash) IsZero() bool {
	var empty Hash
	return h == empty
}

// Compare compares the hash with a slice of bytes.
func (h Hash) Compare(b []byte) int {
	return bytes.Compare(h[:], b)
}

// String returns the hexadecimal representation of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashesSort sorts a slice of Hashes in increasing order.
func HashesSort(a []Hash) {
	sort.Sort(HashSlice(a))
}

// HashSlice attaches the methods of sort.Interface to []Hash, sorting in
// increasing order.
type HashSlice []Hash

func (p HashSlice) Len() int           { return len(p) }
func (p HashSlice) Less(i, j int) bool { return bytes.Compare(p[i][:], p[j][:]) < 0 }
func (p HashSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// IsHash returns true if the given string is a valid hash.
func IsHash(s string) bool {
	if len(s) != hash.HexSize {
		return false
	}

	_, err := hex.DecodeString(s)
	return err == nil
}
