package dupfind

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"time"
)

var (
	// ErrDepthRange is returned when the minimum depth exceeds the maximum depth.
	ErrDepthRange = errors.New("min depth is greater than max depth")
	// ErrSizeRange is returned when the minimum size exceeds the maximum size.
	ErrSizeRange = errors.New("min size is greater than max size")
	// ErrNotDirectory is returned when the root path is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrUnknownAlgorithm is returned for an unsupported hash algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	// ErrSizeChanged is reported for a file modified between the walk and hashing.
	ErrSizeChanged = errors.New("file size changed")
)

// MaxSize is the default upper size bound, which leaves sizes effectively unbounded.
const MaxSize uint64 = math.MaxUint64

// Options configures a duplicate search.
type Options struct {
	// Path is the directory to search.
	Path string
	// MinDepth is the minimum depth of reported files (nil = unbounded). The root is depth 0.
	MinDepth *uint
	// MaxDepth is the maximum depth of reported files (nil = unbounded).
	MaxDepth *uint
	// MinSize is the minimum file size in bytes.
	MinSize uint64
	// MaxSize is the maximum file size in bytes.
	MaxSize uint64
	// OmitHidden skips files and directories whose name starts with a dot.
	OmitHidden bool
	// Algorithm selects the content digest.
	Algorithm Algorithm
	// SortByCount sorts groups by member count instead of file size.
	SortByCount bool
	// FullPath reports absolute paths instead of paths relative to the walk root.
	FullPath bool
	// Workers is the size of the walk and hash pools (0 = GOMAXPROCS).
	Workers int
	// Verbose enables debug output on stderr.
	Verbose bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// DefaultOptions returns options that search the current directory with no filters.
func DefaultOptions() Options {
	return Options{
		Path:      ".",
		MaxSize:   MaxSize,
		Algorithm: DefaultAlgorithm,
	}
}

// workers returns the effective pool size.
func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// Validate checks the option ranges, the algorithm and the root path.
// It performs no traversal.
func (o Options) Validate() error {
	if o.MinDepth != nil && o.MaxDepth != nil && *o.MinDepth > *o.MaxDepth {
		return fmt.Errorf("%w: %d > %d", ErrDepthRange, *o.MinDepth, *o.MaxDepth)
	}

	if o.MinSize > o.MaxSize {
		return fmt.Errorf("%w: %d > %d", ErrSizeRange, o.MinSize, o.MaxSize)
	}

	if _, err := o.Algorithm.New(); err != nil {
		return err
	}

	if o.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", o.Workers)
	}

	info, err := os.Stat(o.Path)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", o.Path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path %q: %w", o.Path, ErrNotDirectory)
	}

	dir, err := os.Open(o.Path)
	if err != nil {
		return fmt.Errorf("reading path %q: %w", o.Path, err)
	}

	return dir.Close()
}
