package xuckoomap

import (
	"fmt"
	"io"

	"github.com/samuel-x/xuckoomap/internal/table"
)

// Dump - Writes a human readable view of both inner tables to w, one line per slot with
// the slot address, the id of the bucket the slot references and, on the first slot that
// references a bucket, the bucket contents.
// The output is read only observability over the data model and carries no correctness
// guarantees of its own.
//   - w is the writer to dump to
func (X *XuckooHashMap) Dump(w io.Writer) {
	fmt.Fprintf(w, "--- table ---\n")

	tables := [2]*table.Table{X.table1, X.table2}
	for i, t := range tables {
		fmt.Fprintf(w, "table %d\n", i+1)
		fmt.Fprintf(w, "  table:               buckets:\n")
		fmt.Fprintf(w, "  address | bucketid   bucketid [key]\n")

		for a := int64(0); a < t.Size(); a++ {
			b := t.BucketAt(a)
			fmt.Fprintf(w, "%9d | %-9d ", a, b.ID)

			if b.ID == a {
				if b.Full {
					fmt.Fprintf(w, "%9d [%d]", b.ID, b.Key)
				} else {
					fmt.Fprintf(w, "%9d [ ]", b.ID)
				}
			}

			fmt.Fprintf(w, "\n")
		}
	}

	fmt.Fprintf(w, "--- end table ---\n")
}
