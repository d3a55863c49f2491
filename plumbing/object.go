// Package plumbing implements the core interfaces and structs used by the
// object store.
package plumbing

import (
	"io"
)

// EncodedObject is any object of the content-addressed store in its raw,
// serialized form: a type, a size and the undecoded content bytes.
type EncodedObject interface {
	Hash() Hash
	Type() ObjectType
	SetType(ObjectType)
	Size() int64
	SetSize(int64)
	Reader() (io.ReadCloser, error)
	Writer() (io.WriteCloser, error)
}

// ObjectType is the type tag carried by every stored object. The integer
// values 1 to 7 are the ones the pack encoding uses on disk; AnyObject
// matches any of them on lookups.
type ObjectType int8

const (
	InvalidObject ObjectType = 0
	CommitObject  ObjectType = 1
	TreeObject    ObjectType = 2
	BlobObject    ObjectType = 3
	TagObject     ObjectType = 4
	// 5 is reserved in the pack encoding.
	OFSDeltaObject ObjectType = 6
	REFDeltaObject ObjectType = 7

	// AnyObject matches every valid object type.
	AnyObject ObjectType = -127
)

func (t ObjectType) String() string {
	switch t {
	case CommitObject:
		return "commit"
	case TreeObject:
		return "tree"
	case BlobObject:
		return "blob"
	case TagObject:
		return "tag"
	case OFSDeltaObject:
		return "ofs-delta"
	case REFDeltaObject:
		return "ref-delta"
	case AnyObject:
		return "any"
	default:
		return "unknown"
	}
}

// Bytes returns the serialized form of the type, as used in the object
// header that identifier hashing covers.
func (t ObjectType) Bytes() []byte {
	return []byte(t.String())
}

// Valid returns true if t is one of the types the store can hold.
func (t ObjectType) Valid() bool {
	return t >= CommitObject && t <= REFDeltaObject
}

// IsDelta returns true when t encodes an object as a delta against
// another one rather than as full content.
func (t ObjectType) IsDelta() bool {
	return t == REFDeltaObject || t == OFSDeltaObject
}

// ParseObjectType parses the serialized form of an object type. It returns
// ErrInvalidType when the input names no known type.
func ParseObjectType(value string) (typ ObjectType, err error) {
	switch value {
	case "commit":
		typ = CommitObject
	case "tree":
		typ = TreeObject
	case "blob":
		typ = BlobObject
	case "tag":
		typ = TagObject
	case "ofs-delta":
		typ = OFSDeltaObject
	case "ref-delta":
		typ = REFDeltaObject
	default:
		err = ErrInvalidType
	}
	return
}
