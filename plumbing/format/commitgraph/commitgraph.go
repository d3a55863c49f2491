// Package commitgraph implements the encoding of the commit graph file, a
// chunked binary format that stores, for every commit reachable from the
// packfiles of an object store, its root tree, its parents resolved to
// table indices and its commit time. The file accelerates ancestry queries
// by removing the need to inflate and parse individual commit objects.
package commitgraph

import (
	"time"

	"github.com/niks/git/plumbing"
)

// CommitData is a reduced representation of a commit as it is stored in the
// commit graph file.
type CommitData struct {
	// TreeHash is the hash of the root tree of the commit.
	TreeHash plumbing.Hash
	// ParentIndexes are the indexes of the parent commits of the commit.
	// Parents not present in the table are represented as -1.
	ParentIndexes []int
	// ParentHashes are the hashes of the parent commits of the commit.
	ParentHashes []plumbing.Hash
	// When is the timestamp of the commit.
	When time.Time
}

// Index represents a commit graph in a form that allows indexed access to
// its nodes using the commit object hash.
type Index interface {
	// GetIndexByHash gets the index in the commit graph from commit hash,
	// if available.
	GetIndexByHash(h plumbing.Hash) (int, error)
	// GetCommitDataByIndex gets the commit data by its position in the
	// graph, if available.
	GetCommitDataByIndex(i int) (*CommitData, error)
	// Hashes returns all the hashes that are available in the index.
	Hashes() []plumbing.Hash
}
