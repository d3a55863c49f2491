package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niks/git/plumbing"
)

func commitObject(t *testing.T, content string) plumbing.EncodedObject {
	t.Helper()

	o := &plumbing.MemoryObject{}
	o.SetType(plumbing.CommitObject)

	w, err := o.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	o.SetSize(int64(len(content)))

	return o
}

func TestCommitDecode(t *testing.T) {
	o := commitObject(t, ""+
		"tree f000000000000000000000000000000000000001\n"+
		"parent f000000000000000000000000000000000000002\n"+
		"parent f000000000000000000000000000000000000003\n"+
		"author John Doe <john@example.com> 1257894000 +0100\n"+
		"committer Jane Doe <jane@example.com> 1257894060 -0230\n"+
		"\n"+
		"Merge branch 'side'\n")

	c, err := DecodeCommit(o)
	require.NoError(t, err)

	assert.Equal(t, plumbing.NewHash("f000000000000000000000000000000000000001"), c.TreeHash)
	require.Equal(t, 2, c.NumParents())
	assert.Equal(t, plumbing.NewHash("f000000000000000000000000000000000000002"), c.ParentHashes[0])
	assert.Equal(t, plumbing.NewHash("f000000000000000000000000000000000000003"), c.ParentHashes[1])

	assert.Equal(t, "John Doe", c.Author.Name)
	assert.Equal(t, "john@example.com", c.Author.Email)
	assert.Equal(t, int64(1257894000), c.Author.When.Unix())

	assert.Equal(t, "Jane Doe", c.Committer.Name)
	assert.Equal(t, int64(1257894060), c.Committer.When.Unix())

	assert.Equal(t, "Merge branch 'side'\n", c.Message)
}

func TestCommitDecodeRoot(t *testing.T) {
	o := commitObject(t, ""+
		"tree f000000000000000000000000000000000000001\n"+
		"author John Doe <john@example.com> 1257894000 +0000\n"+
		"committer John Doe <john@example.com> 1257894000 +0000\n"+
		"\n"+
		"Initial commit\n")

	c, err := DecodeCommit(o)
	require.NoError(t, err)

	assert.Equal(t, 0, c.NumParents())
	assert.Empty(t, c.ParentHashes)
}

func TestCommitDecodeWrongType(t *testing.T) {
	o := &plumbing.MemoryObject{}
	o.SetType(plumbing.BlobObject)

	_, err := DecodeCommit(o)
	assert.ErrorIs(t, err, ErrUnsupportedObject)
}

func TestSignatureDecode(t *testing.T) {
	cases := map[string]Signature{
		"John Doe <john@example.com> 1257894000 +0100": {
			Name:  "John Doe",
			Email: "john@example.com",
			When:  time.Unix(1257894000, 0),
		},
		"<john@example.com> 1257894000 +0100": {
			Name:  "",
			Email: "john@example.com",
			When:  time.Unix(1257894000, 0),
		},
		"John Doe <john@example.com>": {
			Name:  "John Doe",
			Email: "john@example.com",
		},
	}

	for raw, expected := range cases {
		var s Signature
		s.Decode([]byte(raw))

		assert.Equal(t, expected.Name, s.Name, raw)
		assert.Equal(t, expected.Email, s.Email, raw)
		assert.Equal(t, expected.When.Unix(), s.When.Unix(), raw)
	}
}

func TestSignatureDecodeTimeZone(t *testing.T) {
	var s Signature
	s.Decode([]byte("John Doe <john@example.com> 1257894000 -0230"))

	_, offset := s.When.Zone()
	assert.Equal(t, -(2*60*60 + 30*60), offset)
	assert.Equal(t, int64(1257894000), s.When.Unix())
}
