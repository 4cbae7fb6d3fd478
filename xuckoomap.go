package xuckoomap

import (
	"fmt"

	"github.com/samuel-x/xuckoomap/interfaces"
	"github.com/samuel-x/xuckoomap/internal/hash"
	"github.com/samuel-x/xuckoomap/internal/model"
	"github.com/samuel-x/xuckoomap/internal/table"
)

// DefaultMaxTableSize - The highest slot array length either inner table may grow to,
// unless overridden in the call to New
const DefaultMaxTableSize int64 = 1 << 20

// XuckooHashMap - The main implementation struct.
//
// It stores a set of unique int64 keys in two extendible inner tables, each bound to its
// own hash function. An insert may displace keys between the two tables cuckoo style, and
// when a displacement chain fails to terminate the affected table grows locally by
// splitting one bucket.
//
// A XuckooHashMap is not safe for concurrent use; a caller wanting thread safety has to
// wrap it externally, e.g. with one coarse lock per hash map.
type XuckooHashMap struct {
	table1 *table.Table
	table2 *table.Table
	nKeys  int64
	splits int64
	probes int64
	bumps  int64
}

// HashMapStat - Statistics on the overall usage and distribution over the two inner tables
//   - NKeys is the total number of keys stored across both tables
//   - NBuckets is the total number of distinct buckets across both tables
//   - Splits is the number of bucket splits performed so far
//   - Probes is the number of bucket probes taken by insert and lookup operations
//   - Bumps is the number of keys displaced during insert operations
//   - Table1 and Table2 describe each inner table on its own
type HashMapStat struct {
	NKeys    int64
	NBuckets int64
	Splits   int64
	Probes   int64
	Bumps    int64
	Table1   TableStat
	Table2   TableStat
}

// TableStat - Statistics for a single inner table
//   - Size is the slot array length, always 2 to the power of Depth
//   - Depth is the global depth, i.e. the number of hash bits used for addressing
//   - NKeys is the number of keys stored in the table
type TableStat struct {
	Size  int64
	Depth int64
	NKeys int64
}

// New - Returns a new XuckooHashMap with both inner tables initialized to a single empty
// bucket at depth 0 (zero).
//   - maxTableSize is the highest slot array length either inner table may grow to, it must be a power of two, or 0 (zero) to use DefaultMaxTableSize
//   - hashAlgorithm is an optional entry to provide a custom hash algorithm following the hashfunc.HashAlgorithm interface, nil selects the internal murmur3 based algorithm
//
// It returns:
//   - hashMap is a pointer to a XuckooHashMap struct
//   - err is a normal Go error which should be nil if everything went ok
func New(maxTableSize int64, hashAlgorithm hashfunc.HashAlgorithm) (hashMap *XuckooHashMap, err error) {
	if maxTableSize == 0 {
		maxTableSize = DefaultMaxTableSize
	}
	if maxTableSize < 1 || maxTableSize&(maxTableSize-1) != 0 {
		err = fmt.Errorf("maxTableSize must be a power of two, got %d", maxTableSize)
		return
	}

	if hashAlgorithm == nil {
		hashAlgorithm = hash.NewMurmurHashAlgorithm()
	}

	hashMap = &XuckooHashMap{
		table1: table.NewTable(table.Conf{HashFunc: hashAlgorithm.HashFunc1, MaxSize: maxTableSize}),
		table2: table.NewTable(table.Conf{HashFunc: hashAlgorithm.HashFunc2, MaxSize: maxTableSize}),
	}
	return
}

// Close - Releases every distinct bucket in both inner tables exactly once, together with
// all slot storage. The hash map must not be used after a call to Close.
func (X *XuckooHashMap) Close() {
	X.close(nil)
}

// close - Inner teardown with an optional release hook that is called once per distinct bucket
func (X *XuckooHashMap) close(onRelease func(bucket model.Bucket)) {
	X.table1.Release(onRelease)
	X.table2.Release(onRelease)
	X.nKeys = 0
}
