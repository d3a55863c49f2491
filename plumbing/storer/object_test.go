package storer

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niks/git/plumbing"
)

func newObject(content string) plumbing.EncodedObject {
	o := &plumbing.MemoryObject{}
	o.SetType(plumbing.CommitObject)
	o.Write([]byte(content))
	return o
}

func TestEncodedObjectSliceIterNext(t *testing.T) {
	a := newObject("a")
	b := newObject("b")

	iter := NewEncodedObjectSliceIter([]plumbing.EncodedObject{a, b})

	obj, err := iter.Next()
	require.NoError(t, err)
	assert.Equal(t, a, obj)

	obj, err = iter.Next()
	require.NoError(t, err)
	assert.Equal(t, b, obj)

	_, err = iter.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEncodedObjectSliceIterForEach(t *testing.T) {
	series := []plumbing.EncodedObject{newObject("a"), newObject("b"), newObject("c")}
	iter := NewEncodedObjectSliceIter(series)

	count := 0
	err := iter.ForEach(func(plumbing.EncodedObject) error {
		count++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestEncodedObjectSliceIterForEachStop(t *testing.T) {
	series := []plumbing.EncodedObject{newObject("a"), newObject("b"), newObject("c")}
	iter := NewEncodedObjectSliceIter(series)

	count := 0
	err := iter.ForEach(func(plumbing.EncodedObject) error {
		count++
		return ErrStop
	})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
