// Package commitgraph writes the commit graph of an object store. It walks
// the packed objects, builds the sorted table of distinct commits and
// publishes the encoded graph file under the store's info directory with a
// name derived from the file's own content hash.
package commitgraph

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/niks/git/plumbing"
	commitgraph "github.com/niks/git/plumbing/format/commitgraph"
	"github.com/niks/git/plumbing/object"
	"github.com/niks/git/plumbing/storer"
)

const (
	infoPath       = "info"
	tmpGraphPrefix = "tmp_graph_"

	// minOidsCapacity is the floor for the collector preallocation; below
	// it the estimation heuristic is not worth trusting.
	minOidsCapacity = 1024
)

// ObjectStore is the boundary the writer reads through: enumeration of the
// packed objects plus lookup of individual commits.
type ObjectStore interface {
	storer.EncodedObjectStorer
	storer.PackedObjectStorer
}

// WriteCommitGraph writes the commit graph file covering every commit
// stored in the packfiles of store, and publishes it atomically as
// <objDir>/info/graph-<hash>.graph on fs. It returns the base name of the
// published file.
//
// A parent hash that does not resolve to a commit in the store is encoded
// as missing and does not fail the write; every other failure aborts it and
// no file is published. A failed rename leaves the temporary file behind
// for the caller to inspect or remove.
func WriteCommitGraph(fs billy.Filesystem, objDir string, store ObjectStore) (string, error) {
	oids, err := collectCommitHashes(store)
	if err != nil {
		return "", err
	}

	table, err := buildCommitTable(store, oids)
	if err != nil {
		return "", err
	}

	return publish(fs, objDir, table)
}

// collectCommitHashes walks every packed object and retains the hashes of
// those holding commits. The result may contain duplicates when an object
// lives in more than one pack. Capacity is preallocated for roughly 15% of
// the packed objects; growth beyond that is amortized doubling.
func collectCommitHashes(store ObjectStore) ([]plumbing.Hash, error) {
	capacity := store.ApproximateObjectCount() * 15 / 100
	if capacity < minOidsCapacity {
		capacity = minOidsCapacity
	}

	oids := make([]plumbing.Hash, 0, capacity)

	iter, err := store.IterPackedObjects()
	if err != nil {
		return nil, err
	}

	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		if obj.Type() == plumbing.CommitObject {
			oids = append(oids, obj.Hash())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return oids, nil
}

// buildCommitTable sorts and de-duplicates the collected hashes and
// resolves each distinct one to a parsed commit, in ascending hash order.
func buildCommitTable(store ObjectStore, oids []plumbing.Hash) (*commitTable, error) {
	plumbing.HashesSort(oids)

	countDistinct := 0
	for i := range oids {
		if i == 0 || oids[i] != oids[i-1] {
			countDistinct++
		}
	}

	table := &commitTable{
		commits:  make([]*object.Commit, 0, countDistinct),
		indexMap: make(map[plumbing.Hash]int, countDistinct),
	}

	for i, oid := range oids {
		if i > 0 && oid == oids[i-1] {
			continue
		}

		commit, err := object.GetCommit(store, oid)
		if err != nil {
			return nil, err
		}

		table.indexMap[oid] = len(table.commits)
		table.commits = append(table.commits, commit)
	}

	return table, nil
}

// publish encodes the table into a temporary file under <objDir>/info and
// renames it into its content-addressed final name.
func publish(fs billy.Filesystem, objDir string, idx commitgraph.Index) (string, error) {
	infoDir := fs.Join(objDir, infoPath)
	if err := fs.MkdirAll(infoDir, 0o777); err != nil {
		return "", fmt.Errorf("cannot mkdir %s: %w", infoDir, err)
	}

	tmp, err := fs.TempFile(infoDir, tmpGraphPrefix)
	if err != nil {
		return "", fmt.Errorf("unable to create temporary file in %s: %w", infoDir, err)
	}

	encoder := commitgraph.NewEncoder(tmp)
	if err := encoder.Encode(idx); err != nil {
		tmp.Close()
		return "", err
	}

	syncFile(tmp)

	if err := tmp.Close(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("graph-%s.graph", encoder.Checksum())
	graphFile := fs.Join(infoDir, name)
	if err := fs.Rename(tmp.Name(), graphFile); err != nil {
		return "", fmt.Errorf("failed to rename %s to %s: %w", tmp.Name(), graphFile, err)
	}
	fixPermissions(fs, graphFile)

	return name, nil
}

// syncFile flushes the file to stable storage on backends that expose a way
// to do so.
func syncFile(f billy.File) {
	if s, ok := f.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

// fixPermissions marks the published graph read-only on backends that
// support changing file modes.
func fixPermissions(fs billy.Filesystem, path string) {
	type chmodFS interface {
		Chmod(name string, mode os.FileMode) error
	}
	if c, ok := fs.(chmodFS); ok {
		_ = c.Chmod(path, 0o444)
	}
}

// commitTable is the sorted sequence of distinct commits to be written. It
// implements commitgraph.Index over the parsed commits so the encoder can
// stream straight from it.
type commitTable struct {
	commits  []*object.Commit
	indexMap map[plumbing.Hash]int
}

// GetIndexByHash gets the index in the table from a commit hash, if
// available.
func (t *commitTable) GetIndexByHash(h plumbing.Hash) (int, error) {
	if i, ok := t.indexMap[h]; ok {
		return i, nil
	}

	return 0, plumbing.ErrObjectNotFound
}

// GetCommitDataByIndex gets the commit data by its position in the table.
func (t *commitTable) GetCommitDataByIndex(i int) (*commitgraph.CommitData, error) {
	if i >= len(t.commits) {
		return nil, plumbing.ErrObjectNotFound
	}

	c := t.commits[i]
	parentIndexes := make([]int, len(c.ParentHashes))
	for j, parentHash := range c.ParentHashes {
		if k, ok := t.indexMap[parentHash]; ok {
			parentIndexes[j] = k
		} else {
			parentIndexes[j] = -1
		}
	}

	return &commitgraph.CommitData{
		TreeHash:      c.TreeHash,
		ParentIndexes: parentIndexes,
		ParentHashes:  c.ParentHashes,
		When:          c.Committer.When,
	}, nil
}

// Hashes returns all the hashes in the table, in table order.
func (t *commitTable) Hashes() []plumbing.Hash {
	hashes := make([]plumbing.Hash, len(t.commits))
	for i, c := range t.commits {
		hashes[i] = c.Hash
	}
	return hashes
}
