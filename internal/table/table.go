package table

import (
	"github.com/samuel-x/xuckoomap/crt"
	"github.com/samuel-x/xuckoomap/internal/model"
)

// Conf - Is a struct to be passed in the call to NewTable and contains configuration for
// one inner table
//   - HashFunc is the hash function bound to the table, its value is masked down to the current global depth when computing slot addresses
//   - MaxSize is the highest slot array length the table is allowed to grow to, it must be a power of two
type Conf struct {
	HashFunc func(key int64) uint64
	MaxSize  int64
}

// Table - An extendible hash table holding at most one key per bucket.
//
// Buckets live in an arena and the slot array holds arena indices rather than pointers.
// Multiple slots may reference the same bucket: a bucket with local depth d in a table of
// global depth D is referenced by exactly 2^(D-d) slots, namely every address whose low d
// bits equal the bucket id's low d bits. Keeping buckets in an arena means every distinct
// bucket is released exactly once when the arena is torn down, no matter how many slots
// alias it.
type Table struct {
	hashFunc func(key int64) uint64
	maxSize  int64
	slots    []int64        // slot address -> arena index
	buckets  []model.Bucket // arena, one entry per distinct bucket in creation order
	size     int64          // len(slots), always 2^depth
	depth    int64          // global depth, number of hash bits used for addressing
	nKeys    int64
}

// NewTable - Returns a new inner table with a single empty bucket at depth 0 (zero)
func NewTable(conf Conf) *Table {
	return &Table{
		hashFunc: conf.HashFunc,
		maxSize:  conf.MaxSize,
		slots:    make([]int64, 1),
		buckets:  []model.Bucket{{ID: 0, Depth: 0}},
		size:     1,
		depth:    0,
	}
}

// AddressOf - Returns the slot address for key by masking the table hash function value
// down to the current global depth
func (T *Table) AddressOf(key int64) int64 {
	return int64(T.hashFunc(key) & uint64(T.size-1))
}

// Probe - Returns the key held by the bucket referenced by the slot at address, together
// with whether the bucket holds one at all
func (T *Table) Probe(address int64) (key int64, full bool) {
	b := T.buckets[T.slots[address]]
	return b.Key, b.Full
}

// Place - Stores key in the empty bucket referenced by the slot at address, marks it
// occupied and increments the key count
func (T *Table) Place(address int64, key int64) {
	b := &T.buckets[T.slots[address]]
	b.Key = key
	b.Full = true
	T.nKeys++
}

// Swap - Stores key in the occupied bucket referenced by the slot at address and returns
// the key that was evicted. The bucket stays occupied and the key count is unchanged.
func (T *Table) Swap(address int64, key int64) (evicted int64) {
	b := &T.buckets[T.slots[address]]
	evicted = b.Key
	b.Key = key
	return
}

// SplitBucket - Splits the bucket referenced by the slot at address into two buckets each
// served by one more hash bit, redirecting half of the old bucket's aliasing slots to the
// new bucket. The single key the old bucket held is evicted and reinserted under the new
// addressing; it lands in the old bucket or the new one depending on the newly significant
// bit, and that target is guaranteed empty since the address range was just subdivided.
//
// It returns an error of type crt.TableFull if the split required the table to grow past
// its maximum size.
func (T *Table) SplitBucket(address int64) (err error) {
	if T.buckets[T.slots[address]].Depth == T.depth {
		// the bucket is down to its last referencing slot, more addresses are needed first
		err = T.grow()
		if err != nil {
			return
		}
	}

	bi := T.slots[address]
	depth := T.buckets[bi].Depth
	firstAddress := T.buckets[bi].ID
	T.buckets[bi].Depth = depth + 1

	// the new bucket's first address is a 1 bit on top of the old first address
	newID := firstAddress | 1<<depth
	ni := int64(len(T.buckets))
	T.buckets = append(T.buckets, model.Bucket{ID: newID, Depth: depth + 1})

	// redirect every address whose low depth+1 bits equal the new bucket id, enumerated by
	// fixing those bits as suffix and iterating all higher-order bit prefixes
	suffix := newID & (1<<(depth+1) - 1)
	maxPrefix := int64(1) << (T.depth - (depth + 1))
	for prefix := int64(0); prefix < maxPrefix; prefix++ {
		T.slots[prefix<<(depth+1)|suffix] = ni
	}

	if T.buckets[bi].Full {
		key := T.buckets[bi].Key
		T.buckets[bi].Full = false
		ri := T.slots[T.AddressOf(key)]
		T.buckets[ri].Key = key
		T.buckets[ri].Full = true
	}

	return
}

// grow - Doubles the slot array and increments the global depth. The upper half of the new
// slot array references the same buckets as the lower half, which preserves the aliasing
// rule for every existing bucket.
// It returns an error of type crt.TableFull if the doubled size exceeds the maximum size.
func (T *Table) grow() (err error) {
	newSize := T.size * 2
	if newSize > T.maxSize {
		err = crt.TableFull{}
		return
	}

	slots := make([]int64, newSize)
	copy(slots, T.slots)
	copy(slots[T.size:], T.slots)

	T.slots = slots
	T.size = newSize
	T.depth++
	return
}

// Release - Calls onRelease once for every distinct bucket in the table, in creation order,
// and then drops the arena and the slot array. A nil onRelease just drops the storage.
// The table must not be used after a call to Release.
func (T *Table) Release(onRelease func(bucket model.Bucket)) {
	if onRelease != nil {
		for _, b := range T.buckets {
			onRelease(b)
		}
	}
	T.buckets = nil
	T.slots = nil
	T.size = 0
	T.depth = 0
	T.nKeys = 0
}

// Size - Returns the current slot array length, always 2 to the power of the global depth
func (T *Table) Size() int64 {
	return T.size
}

// Depth - Returns the current global depth
func (T *Table) Depth() int64 {
	return T.depth
}

// NKeys - Returns the number of keys currently stored in the table
func (T *Table) NKeys() int64 {
	return T.nKeys
}

// NBuckets - Returns the number of distinct buckets in the table
func (T *Table) NBuckets() int64 {
	return int64(len(T.buckets))
}

// BucketAt - Returns a copy of the bucket referenced by the slot at address
func (T *Table) BucketAt(address int64) model.Bucket {
	return T.buckets[T.slots[address]]
}
