package dupfind

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"
)

// calculateDepth returns the depth of a path relative to the root.
// The root is depth 0 and its direct children are depth 1.
func calculateDepth(path, root string) int {
	relPath, err := filepath.Rel(root, path)
	if err != nil || relPath == "." {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// isHidden reports whether a file name carries the hidden-file marker.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// depthFilter holds the optional depth bounds.
type depthFilter struct {
	min, max *uint
}

// contains reports whether a file at depth lies within the bounds.
func (f depthFilter) contains(depth int) bool {
	if depth < 0 {
		return false
	}

	d := uint(depth)

	if f.min != nil && d < *f.min {
		return false
	}

	if f.max != nil && d > *f.max {
		return false
	}

	return true
}

// descend reports whether files below a directory at depth can still be in range.
func (f depthFilter) descend(depth int) bool {
	return f.max == nil || uint(depth) < *f.max //nolint:gosec // depth is never negative here
}

// Walk returns a record for every regular file under opt.Path that passes the
// depth, hidden and size filters. Unreadable entries are skipped.
//
// opt is validated first. Callers should start from DefaultOptions: a zero
// MaxSize is a real bound and keeps only empty files.
func Walk(ctx context.Context, opt Options) ([]FileRecord, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}

	c := newCollector()

	if err := walk(ctx, opt, c, logger{enabled: opt.Verbose}); err != nil {
		return nil, err
	}

	return c.finalize(), nil
}

// entryInfo returns the file info of a directory entry.
type entryInfo func(fs.DirEntry) (fs.FileInfo, error)

// walk traverses opt.Path in parallel and publishes surviving files to c.
func walk(ctx context.Context, opt Options, c *collector, log logger) error {
	return walkEntries(ctx, opt, c, log, fs.DirEntry.Info)
}

// walkEntries reads directories on fastwalk's workers and hands each candidate
// file to a bounded pool that stats and size-filters it, so one slow entry
// never holds up its siblings.
//
//nolint:varnamelen // d is standard for DirEntry
func walkEntries(ctx context.Context, opt Options, c *collector, log logger, info entryInfo) error {
	root := filepath.Clean(opt.Path)

	if opt.FullPath {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving absolute path: %w", err)
		}

		root = absRoot
	}

	depths := depthFilter{min: opt.MinDepth, max: opt.MaxDepth}

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: opt.workers(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.workers())

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if isExhausted(err) {
				return fmt.Errorf("walking %q: %w", path, err)
			}

			log.printf("[debug]: error accessing path %s: %v\n", path, err)
			c.addError()

			return nil // Silently skip errors
		}

		if err := gctx.Err(); err != nil {
			return err
		}

		depth := calculateDepth(path, root)
		if depth == 0 {
			return nil
		}

		if opt.OmitHidden && isHidden(d.Name()) {
			if d.IsDir() {
				log.printf("[debug]: skipping hidden directory: %s\n", path)

				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			if !depths.descend(depth) {
				log.printf("[debug]: skipping directory (beyond depth %d): %s\n", *depths.max, path)

				return filepath.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() || !depths.contains(depth) {
			return nil
		}

		g.Go(func() error {
			fi, err := info(d)
			if err != nil {
				if isExhausted(err) {
					return fmt.Errorf("reading file info %q: %w", path, err)
				}

				log.printf("[debug]: error reading file info %s: %v\n", path, err)
				c.addError()

				return nil
			}

			// The entry may have been replaced since the directory was read.
			if !fi.Mode().IsRegular() {
				return nil
			}

			size := uint64(fi.Size()) //nolint:gosec // Regular file sizes are never negative
			if size < opt.MinSize || size > opt.MaxSize {
				return nil
			}

			c.add(FileRecord{Key: NewKey(size), Path: filepath.Clean(path)})

			return nil
		})

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return walkErr
}
