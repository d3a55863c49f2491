package plumbing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectTypeString(t *testing.T) {
	assert.Equal(t, "commit", CommitObject.String())
	assert.Equal(t, "tree", TreeObject.String())
	assert.Equal(t, "blob", BlobObject.String())
	assert.Equal(t, "tag", TagObject.String())
	assert.Equal(t, "ofs-delta", OFSDeltaObject.String())
	assert.Equal(t, "ref-delta", REFDeltaObject.String())
	assert.Equal(t, "any", AnyObject.String())
	assert.Equal(t, "unknown", InvalidObject.String())
}

func TestParseObjectType(t *testing.T) {
	for s, expected := range map[string]ObjectType{
		"commit":    CommitObject,
		"tree":      TreeObject,
		"blob":      BlobObject,
		"tag":       TagObject,
		"ofs-delta": OFSDeltaObject,
		"ref-delta": REFDeltaObject,
	} {
		typ, err := ParseObjectType(s)
		assert.NoError(t, err)
		assert.Equal(t, expected, typ)
	}

	_, err := ParseObjectType("invalid")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestObjectTypeValid(t *testing.T) {
	assert.True(t, CommitObject.Valid())
	assert.True(t, REFDeltaObject.Valid())
	assert.False(t, InvalidObject.Valid())
	assert.False(t, AnyObject.Valid())
}

func TestMemoryObject(t *testing.T) {
	o := &MemoryObject{}
	o.SetType(BlobObject)
	o.SetSize(14)

	w, err := o.Writer()
	assert.NoError(t, err)
	_, err = w.Write([]byte("Hello, World!\n"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	assert.Equal(t, "8ab686eafeb1f44702738c8b0f24f2567c36da6d", o.Hash().String())
	assert.Equal(t, int64(14), o.Size())
}
