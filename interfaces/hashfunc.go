package hashfunc

// HashAlgorithm - Interface that permits an implementation using the XuckooHashMap to supply
// custom hash functions suited for its particular distribution of keys.
//
// Both functions must be deterministic, i.e. the same key gives the same hash value across
// calls. They must also be sufficiently independent of each other that most keys don't end
// up at the same address in both inner tables simultaneously. That independence is what
// makes cuckoo displacement converge instead of oscillating between the two tables.
type HashAlgorithm interface {
	// HashFunc1 - Given key it generates a hash value used for addressing in the first inner table.
	// The table masks the value down to its current global depth, so the full width of the
	// value only comes into play as the table grows.
	HashFunc1(key int64) uint64

	// HashFunc2 - Given key it generates a hash value used for addressing in the second inner table.
	HashFunc2(key int64) uint64
}
