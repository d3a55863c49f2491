// Package memory is a storage backend based on memory.
package memory

import (
	"fmt"

	"github.com/niks/git/plumbing"
	"github.com/niks/git/plumbing/storer"
)

// ErrUnsupportedObjectType is returned when an unsupported object type is
// stored.
var ErrUnsupportedObjectType = fmt.Errorf("unsupported object type")

// Storage is an object storage that keeps every object on memory, being
// ephemeral. The use of this storage should be done in controlled
// environments, since the representation in memory of some stores can fill
// the machine memory. On the other hand this storage has the best
// performance.
type Storage struct {
	ObjectStorage
}

// NewStorage returns a new in memory Storage.
func NewStorage() *Storage {
	return &Storage{
		ObjectStorage: ObjectStorage{
			Objects: make(map[plumbing.Hash]plumbing.EncodedObject),
			Commits: make(map[plumbing.Hash]plumbing.EncodedObject),
			Trees:   make(map[plumbing.Hash]plumbing.EncodedObject),
			Blobs:   make(map[plumbing.Hash]plumbing.EncodedObject),
			Tags:    make(map[plumbing.Hash]plumbing.EncodedObject),
		},
	}
}

// ObjectStorage keeps every object on maps keyed by hash, one per type plus
// a global one. Every object held here counts as packed for the purposes of
// the storer.PackedObjectStorer contract.
type ObjectStorage struct {
	Objects map[plumbing.Hash]plumbing.EncodedObject
	Commits map[plumbing.Hash]plumbing.EncodedObject
	Trees   map[plumbing.Hash]plumbing.EncodedObject
	Blobs   map[plumbing.Hash]plumbing.EncodedObject
	Tags    map[plumbing.Hash]plumbing.EncodedObject
}

// NewEncodedObject returns a new empty plumbing.MemoryObject.
func (o *ObjectStorage) NewEncodedObject() plumbing.EncodedObject {
	return &plumbing.MemoryObject{}
}

// SetEncodedObject stores an object and indexes it by type.
func (o *ObjectStorage) SetEncodedObject(obj plumbing.EncodedObject) (plumbing.Hash, error) {
	h := obj.Hash()
	o.Objects[h] = obj

	switch obj.Type() {
	case plumbing.CommitObject:
		o.Commits[h] = o.Objects[h]
	case plumbing.TreeObject:
		o.Trees[h] = o.Objects[h]
	case plumbing.BlobObject:
		o.Blobs[h] = o.Objects[h]
	case plumbing.TagObject:
		o.Tags[h] = o.Objects[h]
	default:
		return h, ErrUnsupportedObjectType
	}

	return h, nil
}

// HasEncodedObject returns nil if the object exists.
func (o *ObjectStorage) HasEncodedObject(h plumbing.Hash) (err error) {
	if _, ok := o.Objects[h]; !ok {
		return plumbing.ErrObjectNotFound
	}

	return nil
}

// EncodedObject returns the object with the given hash, restricted to the
// given type unless it is plumbing.AnyObject.
func (o *ObjectStorage) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	obj, ok := o.Objects[h]
	if !ok || (plumbing.AnyObject != t && obj.Type() != t) {
		return nil, plumbing.ErrObjectNotFound
	}

	return obj, nil
}

// IterEncodedObjects returns an iterator over all the objects of the given
// type.
func (o *ObjectStorage) IterEncodedObjects(t plumbing.ObjectType) (storer.EncodedObjectIter, error) {
	var series []plumbing.EncodedObject
	switch t {
	case plumbing.AnyObject:
		series = flattenObjectMap(o.Objects)
	case plumbing.CommitObject:
		series = flattenObjectMap(o.Commits)
	case plumbing.TreeObject:
		series = flattenObjectMap(o.Trees)
	case plumbing.BlobObject:
		series = flattenObjectMap(o.Blobs)
	case plumbing.TagObject:
		series = flattenObjectMap(o.Tags)
	}

	return storer.NewEncodedObjectSliceIter(series), nil
}

// ApproximateObjectCount returns the exact number of stored objects; memory
// needs no estimation.
func (o *ObjectStorage) ApproximateObjectCount() int {
	return len(o.Objects)
}

// IterPackedObjects returns an iterator over every stored object regardless
// of type. The whole object set of a memory storage counts as packed.
func (o *ObjectStorage) IterPackedObjects() (storer.EncodedObjectIter, error) {
	return o.IterEncodedObjects(plumbing.AnyObject)
}

func flattenObjectMap(m map[plumbing.Hash]plumbing.EncodedObject) []plumbing.EncodedObject {
	objects := make([]plumbing.EncodedObject, 0, len(m))
	for _, obj := range m {
		objects = append(objects, obj)
	}
	return objects
}
