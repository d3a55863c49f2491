package commitgraph

// Sizes of the fixed regions of the file. The chunk lookup table is
// variable: num_chunks + 1 entries of 12 bytes each, the last one being a
// zero-id terminator whose offset marks the end of the chunks.
const (
	szSignature   = 4
	szHeader      = 4
	szChunkHeader = 12

	lenFanout = 256
	szUint32  = 4

	// szCommitData is the width of a commit record in the CDAT chunk
	// besides the root tree hash: two parent slots and the packed date.
	szCommitData = 16
)

var (
	commitFileSignature    = []byte{'C', 'G', 'P', 'H'}
	oidFanoutSignature     = []byte{'O', 'I', 'D', 'F'}
	oidLookupSignature     = []byte{'O', 'I', 'D', 'L'}
	commitDataSignature    = []byte{'C', 'D', 'A', 'T'}
	extraEdgeListSignature = []byte{'E', 'D', 'G', 'E'}
	lastSignature          = []byte{0, 0, 0, 0}
)

// Parent slot encoding. Both sentinels keep the high bit clear, so neither
// can be mistaken for an overflow redirect.
const (
	// parentNone marks an absent parent slot.
	parentNone = uint32(0x70000000)
	// parentMissing marks a parent whose hash is not present in the table.
	parentMissing = uint32(0x7fffffff)
	// parentOctopusUsed redirects the second parent slot into the EDGE
	// chunk; the low bits carry the offset of the commit's first entry
	// there.
	parentOctopusUsed = uint32(0x80000000)
	// parentOctopusMask extracts the index or offset from a slot value.
	parentOctopusMask = uint32(0x7fffffff)
	// parentLast terminates a commit's run in the EDGE chunk.
	parentLast = uint32(0x80000000)

	// maxCommits is the largest table the parent slot encoding can address
	// before valid indices collide with parentNone.
	maxCommits = 0x6fffffff
)

// dateMask keeps the low 34 bits of a commit timestamp. Timestamps above
// the ceiling silently wrap.
const dateMask = uint64(1)<<34 - 1
