package commitgraph

import (
	"crypto"
	"errors"
	"io"

	"github.com/niks/git/plumbing"
	"github.com/niks/git/plumbing/hash"
	"github.com/niks/git/utils/binary"
)

// ErrTooManyCommits is returned by Encode when the index holds more commits
// than the parent slot encoding can address without colliding with its
// sentinel values.
var ErrTooManyCommits = errors.New("too many commits for the commit graph format")

// Encoder writes commit graph files to an output stream.
type Encoder struct {
	io.Writer
	hash     hash.Hash
	checksum plumbing.Hash
}

// NewEncoder returns a new stream encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	h := hash.New(crypto.SHA1)
	mw := io.MultiWriter(w, h)
	return &Encoder{Writer: mw, hash: h}
}

// Encode writes an index into the commit graph file format: header, chunk
// lookup table, the chunks in declared order and the trailing content hash.
// The OIDF, OIDL and CDAT chunks are always present; EDGE is added only
// when some commit has more than two parents.
func (e *Encoder) Encode(idx Index) error {
	// Get all the hashes in the input index
	hashes := idx.Hashes()
	if len(hashes) > maxCommits {
		return ErrTooManyCommits
	}

	// Sort the input and prepare helper structures we'll need for encoding
	hashToIndex, fanout, extraEdgesCount := e.prepare(idx, hashes)

	chunkSignatures := [][]byte{oidFanoutSignature, oidLookupSignature, commitDataSignature}
	chunkSizes := []uint64{
		szUint32 * lenFanout,
		uint64(len(hashes)) * hash.Size,
		uint64(len(hashes)) * (hash.Size + szCommitData),
	}
	if extraEdgesCount > 0 {
		chunkSignatures = append(chunkSignatures, extraEdgeListSignature)
		chunkSizes = append(chunkSizes, uint64(extraEdgesCount)*szUint32)
	}

	if err := e.encodeFileHeader(len(chunkSignatures)); err != nil {
		return err
	}
	if err := e.encodeChunkHeaders(chunkSignatures, chunkSizes); err != nil {
		return err
	}
	if err := e.encodeFanout(fanout); err != nil {
		return err
	}
	if err := e.encodeOidLookup(hashes); err != nil {
		return err
	}

	extraEdges, err := e.encodeCommitData(hashes, hashToIndex, idx)
	if err != nil {
		return err
	}
	if err = e.encodeExtraEdges(extraEdges); err != nil {
		return err
	}

	return e.encodeChecksum()
}

// Checksum returns the content hash over everything before the trailer. It
// is only meaningful after a successful Encode; the published file is named
// after it.
func (e *Encoder) Checksum() plumbing.Hash {
	return e.checksum
}

func (e *Encoder) prepare(idx Index, hashes []plumbing.Hash) (hashToIndex map[plumbing.Hash]uint32, fanout []uint32, extraEdgesCount uint32) {
	// Sort the hashes and build our index
	plumbing.HashesSort(hashes)
	hashToIndex = make(map[plumbing.Hash]uint32, len(hashes))
	fanout = make([]uint32, lenFanout)
	for i, h := range hashes {
		hashToIndex[h] = uint32(i)
		fanout[h[0]]++
	}

	// Convert the fanout to cumulative values
	for i := 1; i <= 0xff; i++ {
		fanout[i] += fanout[i-1]
	}

	// Find out if we will need the extra edge table
	for i := 0; i < len(hashes); i++ {
		v, _ := idx.GetCommitDataByIndex(i)
		if len(v.ParentHashes) > 2 {
			extraEdgesCount += uint32(len(v.ParentHashes) - 1)
		}
	}

	return
}

func (e *Encoder) encodeFileHeader(chunkCount int) (err error) {
	if _, err = e.Write(commitFileSignature); err == nil {
		_, err = e.Write([]byte{1, 1, byte(chunkCount), 0})
	}
	return
}

func (e *Encoder) encodeChunkHeaders(chunkSignatures [][]byte, chunkSizes []uint64) (err error) {
	// 8 bytes of file header, 12 bytes for each chunk header and 12 bytes
	// for the terminator
	offset := uint64(szSignature + szHeader + (len(chunkSignatures)+1)*szChunkHeader)
	for i, signature := range chunkSignatures {
		if _, err = e.Write(signature); err == nil {
			err = binary.WriteUint64(e, offset)
		}
		if err != nil {
			return err
		}
		offset += chunkSizes[i]
	}
	if _, err = e.Write(lastSignature); err == nil {
		err = binary.WriteUint64(e, offset)
	}
	return err
}

func (e *Encoder) encodeFanout(fanout []uint32) (err error) {
	for i := 0; i <= 0xff; i++ {
		if err = binary.WriteUint32(e, fanout[i]); err != nil {
			return
		}
	}
	return
}

func (e *Encoder) encodeOidLookup(hashes []plumbing.Hash) (err error) {
	for _, h := range hashes {
		if _, err = e.Write(h[:]); err != nil {
			return err
		}
	}
	return
}

func (e *Encoder) encodeCommitData(hashes []plumbing.Hash, hashToIndex map[plumbing.Hash]uint32, idx Index) (extraEdges []uint32, err error) {
	for _, h := range hashes {
		origIndex, _ := idx.GetIndexByHash(h)
		commitData, _ := idx.GetCommitDataByIndex(origIndex)
		if _, err = e.Write(commitData.TreeHash[:]); err != nil {
			return
		}

		var parent1, parent2 uint32
		switch len(commitData.ParentHashes) {
		case 0:
			parent1 = parentNone
			parent2 = parentNone
		case 1:
			parent1 = parentSlot(hashToIndex, commitData.ParentHashes[0])
			parent2 = parentNone
		case 2:
			parent1 = parentSlot(hashToIndex, commitData.ParentHashes[0])
			parent2 = parentSlot(hashToIndex, commitData.ParentHashes[1])
		default:
			// The second slot redirects into the extra edge list; the
			// offset recorded is the one before this commit's entries are
			// appended. Parents 1..k-1 go there, the last one flagged as
			// terminator.
			parent1 = parentSlot(hashToIndex, commitData.ParentHashes[0])
			parent2 = uint32(len(extraEdges)) | parentOctopusUsed
			for _, parentHash := range commitData.ParentHashes[1:] {
				extraEdges = append(extraEdges, parentSlot(hashToIndex, parentHash))
			}
			extraEdges[len(extraEdges)-1] |= parentLast
		}

		if err = binary.WriteUint32(e, parent1); err == nil {
			err = binary.WriteUint32(e, parent2)
		}
		if err != nil {
			return
		}

		if err = binary.WriteUint64(e, uint64(commitData.When.Unix())&dateMask); err != nil {
			return
		}
	}

	return
}

func (e *Encoder) encodeExtraEdges(extraEdges []uint32) (err error) {
	for _, parent := range extraEdges {
		if err = binary.WriteUint32(e, parent); err != nil {
			return
		}
	}
	return
}

func (e *Encoder) encodeChecksum() error {
	copy(e.checksum[:], e.hash.Sum(nil)[:hash.Size])
	_, err := e.Write(e.checksum[:])
	return err
}

// parentSlot resolves a parent hash to its table index, or to the missing
// sentinel when the hash is not in the table. Missing parents are the only
// soft failure of the format; encoding continues.
func parentSlot(hashToIndex map[plumbing.Hash]uint32, h plumbing.Hash) uint32 {
	i, ok := hashToIndex[h]
	if !ok {
		return parentMissing
	}
	return i
}
