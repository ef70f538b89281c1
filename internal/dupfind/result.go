package dupfind

import (
	"cmp"
	"slices"
	"time"
)

// Summary holds aggregate totals for a duplicate search.
type Summary struct {
	// Algorithm is the digest used to confirm duplicates.
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	// Files is the number of files that passed the walk filters.
	Files int64 `json:"files" yaml:"files"`
	// Candidates is the number of files sharing their size with another file.
	Candidates int64 `json:"candidates" yaml:"candidates"`
	// Hashed is the number of files whose digest was computed.
	Hashed int64 `json:"hashed" yaml:"hashed"`
	// Groups is the number of duplicate groups.
	Groups int `json:"groups" yaml:"groups"`
	// Duplicates is the number of files across all duplicate groups.
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	// TotalBytes is the cumulative size of all files in duplicate groups.
	TotalBytes uint64 `json:"total_bytes" yaml:"total_bytes"`
	// ReclaimableBytes is the space held by every copy beyond the first in each group.
	ReclaimableBytes uint64 `json:"reclaimable_bytes" yaml:"reclaimable_bytes"`
	// Skipped is the number of entries that could not be read.
	Skipped int64 `json:"skipped" yaml:"skipped"`
	// Elapsed is the total time taken for the search.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Result is the outcome of a duplicate search.
type Result struct {
	// Groups are the confirmed duplicate groups in presentation order.
	Groups []Group `json:"groups" yaml:"groups"`
	// Summary holds the search totals.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Assemble orders groups for presentation: by file size, or by member count when
// sortByCount is set, largest first. Ties keep a deterministic order based on the first member path.
// The size key is the per-file Group.Size, not Size times the member count.
func Assemble(groups []Group, sortByCount bool) []Group {
	sorted := slices.Clone(groups)

	slices.SortFunc(sorted, func(a, b Group) int {
		return cmp.Compare(firstMember(a), firstMember(b))
	})

	slices.SortStableFunc(sorted, func(a, b Group) int {
		if sortByCount {
			return cmp.Compare(len(b.Members), len(a.Members))
		}

		return cmp.Compare(b.Size, a.Size)
	})

	return sorted
}

func firstMember(g Group) string {
	if len(g.Members) == 0 {
		return ""
	}

	return g.Members[0]
}

// summarize fills the group totals of s.
func (s *Summary) summarize(groups []Group) {
	s.Groups = len(groups)

	for _, g := range groups {
		n := uint64(len(g.Members))

		s.Duplicates += len(g.Members)
		s.TotalBytes += g.Size * n
		s.ReclaimableBytes += g.Size * (n - 1)
	}
}
