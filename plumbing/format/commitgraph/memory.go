package commitgraph

import (
	"github.com/niks/git/plumbing"
)

// MemoryIndex provides an in-memory commit graph representation that can be
// populated in any order and encoded afterwards.
type MemoryIndex struct {
	commitData []*CommitData
	indexMap   map[plumbing.Hash]int
}

// NewMemoryIndex creates an in-memory commit graph representation.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		indexMap: make(map[plumbing.Hash]int),
	}
}

// GetIndexByHash gets the index in the commit graph from commit hash, if
// available.
func (mi *MemoryIndex) GetIndexByHash(h plumbing.Hash) (int, error) {
	i, ok := mi.indexMap[h]
	if ok {
		return i, nil
	}

	return 0, plumbing.ErrObjectNotFound
}

// GetCommitDataByIndex gets the commit data by its position in the graph,
// if available.
func (mi *MemoryIndex) GetCommitDataByIndex(i int) (*CommitData, error) {
	if i >= len(mi.commitData) {
		return nil, plumbing.ErrObjectNotFound
	}

	commitData := mi.commitData[i]

	// Map parent hashes to parent indexes
	if commitData.ParentIndexes == nil {
		parentIndexes := make([]int, len(commitData.ParentHashes))
		for i, parentHash := range commitData.ParentHashes {
			var err error
			if parentIndexes[i], err = mi.GetIndexByHash(parentHash); err != nil {
				// Parents outside the table are tolerated; the encoder
				// writes them as missing.
				parentIndexes[i] = -1
			}
		}
		commitData.ParentIndexes = parentIndexes
	}

	return commitData, nil
}

// Hashes returns all the hashes that are available in the index.
func (mi *MemoryIndex) Hashes() []plumbing.Hash {
	hashes := make([]plumbing.Hash, 0, len(mi.indexMap))
	for k := range mi.indexMap {
		hashes = append(hashes, k)
	}
	return hashes
}

// Add adds a new node to the memory index. The parent indexes are
// calculated lazily in GetCommitDataByIndex, which allows adding nodes out
// of order as long as all parents are eventually resolved.
func (mi *MemoryIndex) Add(hash plumbing.Hash, data *CommitData) {
	data.ParentIndexes = nil
	mi.indexMap[hash] = len(mi.commitData)
	mi.commitData = append(mi.commitData, data)
}
