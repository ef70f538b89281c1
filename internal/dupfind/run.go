package dupfind

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Stage names a pipeline stage in progress reports.
type Stage string

const (
	// StageScan is the directory walk.
	StageScan Stage = "scanning"
	// StageHash is the hash confirmation of size candidates.
	StageHash Stage = "hashing"
)

// Progress is a snapshot passed to progress hooks.
type Progress struct {
	// Stage is the running stage.
	Stage Stage
	// Files is the number of files processed so far in the stage.
	Files int64
	// Total is the number of files the stage will process (0 when unknown).
	Total int64
	// Bytes is the cumulative size of the processed files.
	Bytes int64
}

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output to stderr if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// startProgressReporter invokes hook(snapshot()) on each tick until the returned
// stop func is called. stop waits for an in-flight hook call to return.
func startProgressReporter(snapshot func() Progress, hook func(Progress), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(snapshot())
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once

	return func() {
		once.Do(func() { close(quit) })
		<-done
	}
}

// Run performs a duplicate search and returns the ordered duplicate groups.
//
// It validates opt, walks the tree at opt.Path keeping files that pass the depth,
// hidden and size filters, drops files with a unique size, hashes the rest with
// opt.Algorithm and reports every (size, digest) pair shared by two or more files.
//
// Entries that cannot be read are skipped and counted in Summary.Skipped.
// Configuration and resource exhaustion errors abort the search.
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(Progress)) (*Result, error) {
	log := logger{enabled: opt.Verbose}

	if opt.Path == "" {
		opt.Path = "."
	}

	if opt.Algorithm == "" {
		opt.Algorithm = DefaultAlgorithm
	}

	if err := opt.Validate(); err != nil {
		return nil, err
	}

	log.printf("[debug]: path: %s\n", opt.Path)
	log.printf("[debug]: algorithm: %s, workers: %d\n", opt.Algorithm, opt.workers())

	start := time.Now()

	// Scan
	walked := newCollector()

	stopScan := startProgressReporter(func() Progress {
		return Progress{Stage: StageScan, Files: walked.files.Load(), Bytes: walked.bytes.Load()}
	}, progressHook, opt.ProgressInterval)

	err := walk(ctx, opt, walked, log)

	stopScan()

	if err != nil {
		return nil, err
	}

	records := walked.finalize()
	log.printf("[debug]: %d files passed the filters\n", len(records))

	// Group by size
	buckets := GroupBySize(records)
	total := candidates(buckets)
	log.printf("[debug]: %d size groups, %d candidate files\n", len(buckets), total)

	// Confirm by hash
	hasher := newConfirmer(opt.Algorithm, opt.workers(), log)

	stopHash := startProgressReporter(func() Progress {
		return Progress{
			Stage: StageHash,
			Files: hasher.hashed.Load() + hasher.skipped.Load(),
			Total: int64(total),
			Bytes: hasher.bytes.Load(),
		}
	}, progressHook, opt.ProgressInterval)

	groups, err := hasher.run(ctx, buckets)

	stopHash()

	if err != nil {
		return nil, err
	}

	result := &Result{
		Groups: Assemble(groups, opt.SortByCount),
		Summary: Summary{
			Algorithm:  opt.Algorithm,
			Files:      int64(len(records)),
			Candidates: int64(total),
			Hashed:     hasher.hashed.Load(),
			Skipped:    walked.skipped.Load() + hasher.skipped.Load(),
		},
	}

	result.Summary.summarize(result.Groups)
	result.Summary.Elapsed = time.Since(start)

	log.printf("[debug]: %d duplicate groups found in %v\n", result.Summary.Groups, result.Summary.Elapsed)

	return result, nil
}
