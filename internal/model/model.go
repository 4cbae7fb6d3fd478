package model

// Bucket - Represents one bucket holding at most one key
//   - ID is the first (smallest) slot address that referenced the bucket, fixed at creation
//   - Depth is the bucket local depth, i.e. the number of low-order hash bits that currently distinguish it from sibling buckets
//   - Full reports whether the bucket currently holds a key
//   - Key is the stored key, valid only when Full is true
type Bucket struct {
	ID    int64
	Depth int64
	Full  bool
	Key   int64
}
