package plumbing

import (
	"crypto"
	"strconv"

	"github.com/niks/git/plumbing/hash"
)

// Hasher computes the identifier of an object from its type, size and
// content, using the store's canonical "<type> <size>\0" prefix.
type Hasher struct {
	hash.Hash
}

// NewHasher returns a Hasher primed with the header for the given object
// type and size. The content should be written afterwards.
func NewHasher(t ObjectType, size int64) Hasher {
	h := Hasher{hash.New(crypto.SHA1)}
	h.Write(t.Bytes())
	h.Write([]byte(" "))
	h.Write([]byte(strconv.FormatInt(size, 10)))
	h.Write([]byte{0})
	return h
}

// Sum returns the identifier computed so far.
func (h Hasher) Sum() (hash Hash) {
	copy(hash[:], h.Hash.Sum(nil))
	return
}

// ComputeHash computes the identifier for a given ObjectType and content.
func ComputeHash(t ObjectType, content []byte) Hash {
	h := NewHasher(t, int64(len(content)))
	h.Write(content)
	return h.Sum()
}
