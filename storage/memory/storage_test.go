package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niks/git/plumbing"
)

func storeObject(t *testing.T, s *Storage, typ plumbing.ObjectType, content []byte) plumbing.Hash {
	t.Helper()

	obj := s.NewEncodedObject()
	obj.SetType(typ)
	obj.SetSize(int64(len(content)))

	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	h, err := s.SetEncodedObject(obj)
	require.NoError(t, err)
	return h
}

func TestSetAndGetEncodedObject(t *testing.T) {
	s := NewStorage()
	h := storeObject(t, s, plumbing.CommitObject, []byte("tree f000000000000000000000000000000000000001\n"))

	obj, err := s.EncodedObject(plumbing.CommitObject, h)
	require.NoError(t, err)
	assert.Equal(t, plumbing.CommitObject, obj.Type())
	assert.Equal(t, h, obj.Hash())

	obj, err = s.EncodedObject(plumbing.AnyObject, h)
	require.NoError(t, err)
	assert.Equal(t, h, obj.Hash())
}

func TestGetEncodedObjectTypeMismatch(t *testing.T) {
	s := NewStorage()
	h := storeObject(t, s, plumbing.BlobObject, []byte("content\n"))

	_, err := s.EncodedObject(plumbing.CommitObject, h)
	assert.ErrorIs(t, err, plumbing.ErrObjectNotFound)
}

func TestGetEncodedObjectNotFound(t *testing.T) {
	s := NewStorage()

	_, err := s.EncodedObject(plumbing.AnyObject, plumbing.NewHash("0000000000000000000000000000000000000001"))
	assert.ErrorIs(t, err, plumbing.ErrObjectNotFound)
}

func TestIterEncodedObjects(t *testing.T) {
	s := NewStorage()
	commit := storeObject(t, s, plumbing.CommitObject, []byte("tree f000000000000000000000000000000000000001\n"))
	blob := storeObject(t, s, plumbing.BlobObject, []byte("content\n"))

	iter, err := s.IterEncodedObjects(plumbing.CommitObject)
	require.NoError(t, err)

	var hashes []plumbing.Hash
	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		hashes = append(hashes, obj.Hash())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{commit}, hashes)

	iter, err = s.IterEncodedObjects(plumbing.AnyObject)
	require.NoError(t, err)

	seen := map[plumbing.Hash]bool{}
	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		seen[obj.Hash()] = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, seen[commit])
	assert.True(t, seen[blob])
}

func TestPackedObjectStorer(t *testing.T) {
	s := NewStorage()
	assert.Equal(t, 0, s.ApproximateObjectCount())

	storeObject(t, s, plumbing.CommitObject, []byte("tree f000000000000000000000000000000000000001\n"))
	storeObject(t, s, plumbing.BlobObject, []byte("content\n"))
	assert.Equal(t, 2, s.ApproximateObjectCount())

	iter, err := s.IterPackedObjects()
	require.NoError(t, err)

	count := 0
	err = iter.ForEach(func(plumbing.EncodedObject) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
