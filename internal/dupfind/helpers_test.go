package dupfind

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// relPaths returns the sorted paths of records relative to root, slash-separated.
func relPaths(t *testing.T, root string, records []FileRecord) []string {
	t.Helper()

	paths := make([]string, 0, len(records))

	for _, r := range records {
		rel, err := filepath.Rel(root, r.Path)
		require.NoError(t, err)

		paths = append(paths, filepath.ToSlash(rel))
	}

	slices.Sort(paths)

	return paths
}

// groupSets returns each group's members relative to root, sorted, for order-independent comparison.
func groupSets(t *testing.T, root string, groups []Group) [][]string {
	t.Helper()

	sets := make([][]string, 0, len(groups))

	for _, g := range groups {
		members := make([]string, 0, len(g.Members))

		for _, m := range g.Members {
			rel, err := filepath.Rel(root, m)
			require.NoError(t, err)

			members = append(members, filepath.ToSlash(rel))
		}

		slices.Sort(members)
		sets = append(sets, members)
	}

	slices.SortFunc(sets, func(a, b []string) int {
		return slices.Compare(a, b)
	})

	return sets
}

func uintPtr(v uint) *uint {
	return &v
}

// testOptions returns default options rooted at root.
func testOptions(root string) Options {
	opt := DefaultOptions()
	opt.Path = root
	opt.Workers = 4

	return opt
}

// scenarioTree is a small tree with one duplicate pair.
//
//nolint:gochecknoglobals // Test fixture
var scenarioTree = map[string]string{
	"a.txt": "abcd",
	"b.txt": "abcd",
	"c.txt": "abce",
	"d.txt": "abcde",
}
