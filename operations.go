package xuckoomap

import (
	"github.com/samuel-x/xuckoomap/internal/table"
)

// shortCycleBound - Number of displacement steps after which arriving back at the original
// key and address is treated as a cycle rather than normal alternation between the tables.
// The value is a heuristic; it has to be high enough that a key bouncing once through both
// tables is not mistaken for a cycle.
const shortCycleBound = 3

// Lookup - Reports whether key is stored in the hash map.
// Exactly two bucket probes, one per inner table; all collision resolution already
// happened at insertion time, so there is no chain to walk.
//   - key is the key to search for
func (X *XuckooHashMap) Lookup(key int64) (found bool) {
	X.probes += 2

	if k, full := X.table1.Probe(X.table1.AddressOf(key)); full && k == key {
		found = true
		return
	}
	if k, full := X.table2.Probe(X.table2.AddressOf(key)); full && k == key {
		found = true
		return
	}

	return
}

// displacement - One entry of the displacement chain journal, remembering which table a
// swap placed a key in so the chain can be unwound if the insert has to be rejected
type displacement struct {
	table  int
	placed int64
}

// Insert - Stores key in the hash map if it is not already present.
//
// The insert starts in whichever inner table holds fewer keys (ties go to the first) and
// displaces resident keys between the two tables until one lands in an empty bucket. A
// displacement chain that returns to its starting condition, or outlives the combined
// size of both tables, will not terminate on its own; the bucket at the point of the
// cycle is split and the insertion restarts from scratch for the key the chain left
// without a home. Every split doubles the addressing available to one bucket, so the
// restart works against a strictly larger table and the loop terminates.
//
// A rejected insert unwinds the displacement chain before returning, leaving the stored
// key set exactly as it was: the rejected key is absent and every previously stored key
// stays retrievable. Table growth performed along the way is kept, it only changes
// addressing, never the key set.
//   - key is the key to store
//
// It returns:
//   - isNew is true if the key was inserted and false if it was already present or the insert was rejected, in either case the key set is unchanged
//   - err is of type crt.TableFull if resolving the insert required an inner table to grow past its maximum size
func (X *XuckooHashMap) Insert(key int64) (isNew bool, err error) {
	if X.Lookup(key) {
		return
	}

	tables := [2]*table.Table{X.table1, X.table2}

	// pending is the key currently without a home; it starts out as the inserted key and is
	// replaced by the displaced key whenever a cycle forces a split and a restart
	pending := key

	// journal of every swap taken since the insert began, across restarts
	var chain []displacement

	for {
		current := 0
		if X.table1.NKeys() > X.table2.NKeys() {
			current = 1
		}

		origKey := pending
		origAddress := tables[current].AddressOf(origKey)

		currentKey := origKey
		restarted := false
		for step := int64(1); !restarted; step++ {
			t := tables[current]
			address := t.AddressOf(currentKey)

			if (address == origAddress && currentKey == origKey && step > shortCycleBound) ||
				step > X.table1.Size()+X.table2.Size() {
				if err = t.SplitBucket(address); err != nil {
					X.unwind(tables, chain, currentKey)
					return
				}
				X.splits++

				// the split may have changed addressing for the whole table, so resuming the
				// chain is not sound; restart the insertion for the homeless key
				pending = currentKey
				restarted = true
				continue
			}

			X.probes++
			if _, full := t.Probe(address); full {
				placed := currentKey
				currentKey = t.Swap(address, currentKey)
				chain = append(chain, displacement{table: current, placed: placed})
				X.bumps++
				current = 1 - current
			} else {
				t.Place(address, currentKey)
				X.nKeys++
				isNew = true
				return
			}
		}
	}
}

// unwind - Rolls the displacement chain back in reverse order after a failed split, so a
// rejected insert leaves the stored key set exactly as it was. Each undo locates the key a
// swap placed, at its current address (splits performed along the way keep stored keys
// addressable), and swaps the key it evicted back in. The last undo hands back the
// original key, which is simply dropped.
func (X *XuckooHashMap) unwind(tables [2]*table.Table, chain []displacement, homeless int64) {
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		t := tables[d.table]
		homeless = t.Swap(t.AddressOf(d.placed), homeless)
	}
}

// Stat - Returns statistics on the overall usage and distribution over the two inner
// tables. The struct holds counters only; wall clock measurement of insert and lookup
// activity is deliberately left to the caller.
func (X *XuckooHashMap) Stat() (hashMapStat HashMapStat) {
	hashMapStat = HashMapStat{
		NKeys:    X.nKeys,
		NBuckets: X.table1.NBuckets() + X.table2.NBuckets(),
		Splits:   X.splits,
		Probes:   X.probes,
		Bumps:    X.bumps,
		Table1:   TableStat{Size: X.table1.Size(), Depth: X.table1.Depth(), NKeys: X.table1.NKeys()},
		Table2:   TableStat{Size: X.table2.Size(), Depth: X.table2.Depth(), NKeys: X.table2.NKeys()},
	}
	return
}
