package hash

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Fixed, independent seeds, one per inner table. Changing either changes the addressing of
// every key, so they are constants rather than configuration.
const (
	tableOneSeed uint32 = 0x9747b28c
	tableTwoSeed uint32 = 0x1b873593
)

// MurmurHashAlgorithm - The internally used hash algorithm is implemented by hashing the
// 8 byte little endian representation of the key with murmur3, under one fixed seed per
// inner table. The two seeds give the two independent hash functions the cuckoo scheme
// relies on.
type MurmurHashAlgorithm struct {
	seed1 uint32
	seed2 uint32
}

// NewMurmurHashAlgorithm - Returns a pointer to a new MurmurHashAlgorithm instance
func NewMurmurHashAlgorithm() *MurmurHashAlgorithm {
	return &MurmurHashAlgorithm{seed1: tableOneSeed, seed2: tableTwoSeed}
}

// HashFunc1 - Given key it generates a hash value used for addressing in the first inner table
func (M *MurmurHashAlgorithm) HashFunc1(key int64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(key))
	return murmur3.Sum64WithSeed(b[:], M.seed1)
}

// HashFunc2 - Given key it generates a hash value used for addressing in the second inner table
func (M *MurmurHashAlgorithm) HashFunc2(key int64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(key))
	return murmur3.Sum64WithSeed(b[:], M.seed2)
}
