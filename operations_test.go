package xuckoomap

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samuel-x/xuckoomap/crt"
)

func TestXuckooHashMap_Lookup(t *testing.T) {
	t.Run("finds an inserted key and misses an absent one", func(t *testing.T) {
		// Prepare
		m, err := New(0, nil)
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		// Execute
		isNew, err := m.Insert(5)

		// Check
		assert.NoError(t, err, "inserts key")
		assert.True(t, isNew, "key 5 is new")
		assert.True(t, m.Lookup(5), "key 5 found")
		assert.False(t, m.Lookup(6), "key 6 not found")
	})
}

func TestXuckooHashMap_Insert(t *testing.T) {
	t.Run("inserting an existing key is a no-op", func(t *testing.T) {
		// Prepare
		m, err := New(0, nil)
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		isNew, err := m.Insert(5)
		assert.NoError(t, err, "first insert succeeds")
		assert.True(t, isNew, "first insert is new")

		// Execute
		isNew, err = m.Insert(5)

		// Check
		assert.NoError(t, err, "second insert succeeds")
		assert.False(t, isNew, "second insert reports existing key")
		assert.Equal(t, int64(1), m.Stat().NKeys, "key counted once")
	})

	t.Run("splits a bucket when displacement cycles", func(t *testing.T) {
		// Prepare
		// With identity hashing every key maps to address 0 in both depth 0 tables, so the
		// third key has nowhere to go until a split makes a second address available.
		m, err := New(16, &identityAlgorithm{})
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		// Execute
		for key := int64(0); key < 3; key++ {
			isNew, err := m.Insert(key)
			assert.NoError(t, err, "insert resolves via displacement and split")
			assert.True(t, isNew, "key is new")
		}

		// Check
		st := m.Stat()
		assert.Equal(t, int64(1), st.Splits, "exactly one split resolved the cycle")
		assert.Equal(t, int64(1), st.Table1.Depth, "affected table reached depth 1")
		assert.Equal(t, int64(2), st.Table1.Size, "affected table doubled to size 2")
		assert.Equal(t, int64(3), st.NKeys, "all keys counted")
		assert.Equal(t, st.Table1.NKeys+st.Table2.NKeys, st.NKeys, "key counts agree")
		assert.Equal(t, int64(2)+st.Splits, st.NBuckets, "each split created one bucket")

		for key := int64(0); key < 3; key++ {
			assert.True(t, m.Lookup(key), "key retrievable after split")
		}
	})

	t.Run("terminates with TableFull under a degenerate hash", func(t *testing.T) {
		// Prepare
		// A constant hash leaves one addressable bucket per table regardless of growth, so
		// a third key keeps forcing splits until the maximum size is hit.
		m, err := New(64, &constantAlgorithm{})
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		isNew, err := m.Insert(1)
		assert.NoError(t, err, "first key fits")
		assert.True(t, isNew, "first key is new")
		isNew, err = m.Insert(2)
		assert.NoError(t, err, "second key fits")
		assert.True(t, isNew, "second key is new")

		// Execute
		isNew, err = m.Insert(3)

		// Check
		assert.Error(t, err, "third key cannot be resolved")
		assert.True(t, errors.Is(err, crt.TableFull{}), "error is of type TableFull")
		assert.False(t, isNew, "failed insert reports no new key")

		st := m.Stat()
		assert.Greater(t, st.Splits, int64(0), "splits were attempted before giving up")
		assert.LessOrEqual(t, st.Table1.Size, int64(64), "table 1 never exceeded the maximum size")
		assert.LessOrEqual(t, st.Table2.Size, int64(64), "table 2 never exceeded the maximum size")
		assert.Equal(t, int64(1)<<st.Table1.Depth, st.Table1.Size, "table 1 size is 2^depth")
		assert.Equal(t, int64(1)<<st.Table2.Depth, st.Table2.Size, "table 2 size is 2^depth")

		assert.True(t, m.Lookup(1), "previously stored key 1 survived the rejected insert")
		assert.True(t, m.Lookup(2), "previously stored key 2 survived the rejected insert")
		assert.False(t, m.Lookup(3), "rejected key is not stored")
		assert.Equal(t, int64(2), st.NKeys, "key count unchanged by the rejected insert")
	})

	t.Run("leaves the key set unchanged when an insert is rejected", func(t *testing.T) {
		// Prepare
		// With a maximum size of 1 neither table can ever grow, so the first displacement
		// cycle already fails its split; the chain taken up to that point must be rolled
		// back rather than left half-applied.
		m, err := New(1, &constantAlgorithm{})
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		isNew, err := m.Insert(1)
		assert.NoError(t, err, "first key fits")
		assert.True(t, isNew, "first key is new")
		isNew, err = m.Insert(2)
		assert.NoError(t, err, "second key fits")
		assert.True(t, isNew, "second key is new")

		// Execute
		isNew, err = m.Insert(3)

		// Check
		assert.True(t, errors.Is(err, crt.TableFull{}), "error is of type TableFull")
		assert.False(t, isNew, "rejected insert reports no new key")

		assert.True(t, m.Lookup(1), "previously stored key 1 still retrievable")
		assert.True(t, m.Lookup(2), "previously stored key 2 still retrievable")
		assert.False(t, m.Lookup(3), "rejected key is not stored")

		st := m.Stat()
		assert.Equal(t, int64(2), st.NKeys, "key count unchanged by the rejected insert")
		assert.Equal(t, st.Table1.NKeys+st.Table2.NKeys, st.NKeys, "key counts agree across tables")
		assert.Equal(t, int64(0), st.Splits, "no split completed")
		assert.Equal(t, int64(2), st.NBuckets, "a failed split creates no bucket")
	})

	t.Run("round trips a large random key set", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(123))
		inserted := make(map[int64]bool)

		m, err := New(0, nil)
		assert.NoError(t, err, "creates hash map")
		defer m.Close()

		// Execute
		for i := 0; i < 2000; i++ {
			key := rnd.Int63()
			isNew, err := m.Insert(key)
			assert.NoError(t, err, "insert succeeds")
			assert.Equal(t, !inserted[key], isNew, "isNew agrees with prior presence")
			inserted[key] = true
		}

		// Check
		st := m.Stat()
		assert.Equal(t, int64(len(inserted)), st.NKeys, "every distinct key counted once")
		assert.Equal(t, st.Table1.NKeys+st.Table2.NKeys, st.NKeys, "key counts agree across tables")
		assert.Equal(t, int64(2)+st.Splits, st.NBuckets, "bucket count grows one per split")
		assert.Equal(t, int64(1)<<st.Table1.Depth, st.Table1.Size, "table 1 size is 2^depth")
		assert.Equal(t, int64(1)<<st.Table2.Depth, st.Table2.Size, "table 2 size is 2^depth")

		for key := range inserted {
			assert.True(t, m.Lookup(key), "inserted key retrievable")
		}

		misses := 0
		for i := 0; i < 100; i++ {
			key := rnd.Int63()
			if !inserted[key] && !m.Lookup(key) {
				misses++
			}
		}
		assert.Equal(t, 100, misses, "keys never inserted are not found")
	})
}
