package object

import (
	"bytes"
	"fmt"
	"io"

	"github.com/niks/git/plumbing"
	"github.com/niks/git/plumbing/storer"
	"github.com/niks/git/utils/ioutil"
	"github.com/niks/git/utils/sync"
)

const (
	headerTree      = "tree"
	headerParent    = "parent"
	headerAuthor    = "author"
	headerCommitter = "committer"
)

// Commit points to a single tree, marking it as what the project looked like
// at a certain point in time. It contains meta-information about that point
// in time, such as a timestamp, the author of the changes since the last
// commit, a pointer to the previous commit(s), etc.
type Commit struct {
	// Hash of the commit object.
	Hash plumbing.Hash
	// Author is the original author of the commit.
	Author Signature
	// Committer is the one performing the commit, might be different from
	// Author.
	Committer Signature
	// Message is the commit message, contains arbitrary text.
	Message string
	// TreeHash is the hash of the root tree of the commit.
	TreeHash plumbing.Hash
	// ParentHashes are the hashes of the parent commits of the commit.
	ParentHashes []plumbing.Hash
}

// GetCommit gets a commit from an object storer and decodes it. Two calls
// with the same hash return equivalent commits.
func GetCommit(s storer.EncodedObjectStorer, h plumbing.Hash) (*Commit, error) {
	o, err := s.EncodedObject(plumbing.CommitObject, h)
	if err != nil {
		return nil, err
	}

	return DecodeCommit(o)
}

// DecodeCommit decodes an encoded object into a *Commit.
func DecodeCommit(o plumbing.EncodedObject) (*Commit, error) {
	c := &Commit{}
	if err := c.Decode(o); err != nil {
		return nil, err
	}

	return c, nil
}

// NumParents returns the number of parents in a commit.
func (c *Commit) NumParents() int {
	return len(c.ParentHashes)
}

// Decode transforms a plumbing.EncodedObject into a Commit struct.
func (c *Commit) Decode(o plumbing.EncodedObject) (err error) {
	if o.Type() != plumbing.CommitObject {
		return ErrUnsupportedObject
	}

	c.Hash = o.Hash()

	reader, err := o.Reader()
	if err != nil {
		return err
	}
	defer ioutil.CheckClose(reader, &err)

	r := sync.GetBufioReader(reader)
	defer sync.PutBufioReader(r)

	message := false
	msgbuf := sync.GetBytesBuffer()
	defer sync.PutBytesBuffer(msgbuf)

	for {
		line, err := r.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return err
		}

		if !message {
			line = bytes.TrimRight(line, "\n")
			split := bytes.SplitN(line, []byte{' '}, 2)

			var data []byte
			if len(split) == 2 {
				data = split[1]
			}

			switch string(split[0]) {
			case headerTree:
				c.TreeHash = plumbing.NewHash(string(data))
			case headerParent:
				c.ParentHashes = append(c.ParentHashes, plumbing.NewHash(string(data)))
			case headerAuthor:
				c.Author.Decode(data)
			case headerCommitter:
				c.Committer.Decode(data)
			case "":
				message = true
			}
		} else {
			msgbuf.Write(line)
		}

		if err == io.EOF {
			c.Message = msgbuf.String()
			return nil
		}
	}
}

func (c *Commit) String() string {
	return fmt.Sprintf(
		"%s %s\nAuthor: %s\nDate:   %s\n\n%s\n",
		plumbing.CommitObject, c.Hash, c.Author.String(),
		c.Author.When.Format("Mon Jan 02 15:04:05 2006 -0700"), c.Message,
	)
}
