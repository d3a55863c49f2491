// Package storer defines the interfaces to store objects, references, etc.
package storer

import (
	"errors"
	"io"

	"github.com/niks/git/plumbing"
)

// ErrStop is used to stop a ForEach function in an Iter.
var ErrStop = errors.New("stop iter")

// EncodedObjectStorer is a generic storer for encoded objects.
type EncodedObjectStorer interface {
	// EncodedObject gets an object by hash with the given ObjectType.
	// Implementors should return (nil, plumbing.ErrObjectNotFound) if an
	// object doesn't exist with both the given hash and object type. Valid
	// ObjectType values are CommitObject, BlobObject, TagObject, TreeObject
	// and AnyObject.
	EncodedObject(plumbing.ObjectType, plumbing.Hash) (plumbing.EncodedObject, error)
	// IterEncodedObjects returns a custom EncodedObjectIter over all the
	// objects in the storage with the given type.
	IterEncodedObjects(plumbing.ObjectType) (EncodedObjectIter, error)
}

// PackedObjectStorer exposes the objects reachable through packfiles.
type PackedObjectStorer interface {
	// ApproximateObjectCount returns a cheap estimate of the total number of
	// objects held in packfiles. It is a sizing hint, not a promise.
	ApproximateObjectCount() int
	// IterPackedObjects returns an iterator over every object in every
	// packfile, regardless of type. The order is unspecified and the same
	// object may surface more than once when it lives in several packs.
	IterPackedObjects() (EncodedObjectIter, error)
}

// EncodedObjectIter is a generic closable interface for iterating over
// encoded objects.
type EncodedObjectIter interface {
	Next() (plumbing.EncodedObject, error)
	ForEach(func(plumbing.EncodedObject) error) error
	Close()
}

// EncodedObjectSliceIter implements EncodedObjectIter. It iterates over a
// series of objects stored in a slice.
type EncodedObjectSliceIter struct {
	series []plumbing.EncodedObject
}

// NewEncodedObjectSliceIter returns an EncodedObjectSliceIter for the given
// slice of objects.
func NewEncodedObjectSliceIter(series []plumbing.EncodedObject) *EncodedObjectSliceIter {
	return &EncodedObjectSliceIter{
		series: series,
	}
}

// Next returns the next object from the iterator. If the iterator has reached
// the end it will return io.EOF as an error.
func (it *EncodedObjectSliceIter) Next() (plumbing.EncodedObject, error) {
	if len(it.series) == 0 {
		return nil, io.EOF
	}

	obj := it.series[0]
	it.series = it.series[1:]

	return obj, nil
}

// ForEach call the cb function for each object contained on this iter until
// an error happens or the end of the iter is reached. If ErrStop is sent
// the iteration is stopped but no error is returned.
func (it *EncodedObjectSliceIter) ForEach(cb func(plumbing.EncodedObject) error) error {
	return ForEachIterator(it, cb)
}

// Close releases any resources used by the iterator.
func (it *EncodedObjectSliceIter) Close() {
	it.series = nil
}

type bareIterator interface {
	Next() (plumbing.EncodedObject, error)
	Close()
}

// ForEachIterator is a helper function to build iterators without need to
// rewrite the same ForEach function each time.
func ForEachIterator(iter bareIterator, cb func(plumbing.EncodedObject) error) error {
	defer iter.Close()
	for {
		obj, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}

			return err
		}

		if err := cb(obj); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}
	}
}
