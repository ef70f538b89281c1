package dupfind

import (
	"cmp"
	"slices"
)

// Bucket is a set of file records sharing one size.
type Bucket struct {
	// Size is the shared file size in bytes.
	Size uint64
	// Records are the files of this size, ordered by path.
	Records []FileRecord
}

// GroupBySize partitions records by size and drops every bucket with a single member,
// since a file with a unique size cannot have a duplicate.
// Buckets are returned in descending size order.
func GroupBySize(records []FileRecord) []Bucket {
	bySize := make(map[uint64][]FileRecord)
	for _, record := range records {
		bySize[record.Key.Size] = append(bySize[record.Key.Size], record)
	}

	buckets := make([]Bucket, 0, len(bySize))

	for size, members := range bySize {
		if len(members) < 2 {
			continue
		}

		// Walk order is nondeterministic; fix the discovery order within the bucket.
		slices.SortFunc(members, func(a, b FileRecord) int {
			return cmp.Compare(a.Path, b.Path)
		})

		buckets = append(buckets, Bucket{Size: size, Records: members})
	}

	slices.SortFunc(buckets, func(a, b Bucket) int {
		return cmp.Compare(b.Size, a.Size)
	})

	return buckets
}

// candidates returns the number of records across all buckets.
func candidates(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += len(b.Records)
	}

	return n
}
