// This program provides a small driver for the xuckoo hash map. It fills a map with a
// series of random keys, verifies every key can be looked up again, and prints human
// readable statistics. Wall clock time is measured out here, around the calls; the hash
// map itself only keeps counters.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"leb.io/hrff"

	"github.com/samuel-x/xuckoomap"
)

var nkeys = flag.Int("n", 100000, "number of keys to insert")
var seed = flag.Int64("seed", 42, "seed for the key series")
var maxSize = flag.Int64("max", 0, "maximum inner table size, 0 for the default")
var dump = flag.Bool("d", false, "dump table contents when done")

func main() {
	flag.Parse()

	m, err := xuckoomap.New(*maxSize, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	rnd := rand.New(rand.NewSource(*seed))
	keys := make([]int64, *nkeys)
	for i := range keys {
		keys[i] = rnd.Int63()
	}

	start := time.Now()
	for _, key := range keys {
		if _, err := m.Insert(key); err != nil {
			log.Fatalf("insert %d: %v", key, err)
		}
	}
	elapsed := time.Since(start)

	for _, key := range keys {
		if !m.Lookup(key) {
			log.Fatalf("lookup %d: not found after insert", key)
		}
	}

	st := m.Stat()
	rate := hrff.Float64{V: float64(len(keys)) * (float64(time.Second) / float64(elapsed)), U: "inserts/sec"}
	fmt.Printf("keys=%h, buckets=%d, splits=%d, bumps=%d, probes=%d\n",
		hrff.Int64{V: st.NKeys, U: "keys"}, st.NBuckets, st.Splits, st.Bumps, st.Probes)
	fmt.Printf("table 1: size=%d, depth=%d, keys=%d\n", st.Table1.Size, st.Table1.Depth, st.Table1.NKeys)
	fmt.Printf("table 2: size=%d, depth=%d, keys=%d\n", st.Table2.Size, st.Table2.Depth, st.Table2.NKeys)
	fmt.Printf("insert time: %v, %h\n", elapsed, rate)

	if *dump {
		m.Dump(os.Stdout)
	}
}
