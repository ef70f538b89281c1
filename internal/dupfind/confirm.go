package dupfind

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Group is a confirmed set of files with identical size and content digest.
type Group struct {
	// Size is the size in bytes of each member.
	Size uint64 `json:"size" yaml:"size"`
	// Hash is the hex-encoded content digest shared by all members.
	Hash string `json:"hash" yaml:"hash"`
	// Members are the paths of the identical files.
	Members []string `json:"members" yaml:"members"`
}

// partition re-groups one size bucket by digest as hashes complete.
// Its mutex is the only lock shared between hash workers of the same bucket.
type partition struct {
	mu       sync.Mutex
	bucket   Bucket
	byDigest map[string][]int
}

func newPartition(b Bucket) *partition {
	return &partition{
		bucket:   b,
		byDigest: make(map[string][]int),
	}
}

// add attaches the digest to record i and files it under that digest.
func (p *partition) add(i int, d Digest) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bucket.Records[i].Key = p.bucket.Records[i].Key.WithHash(d)
	p.byDigest[string(d)] = append(p.byDigest[string(d)], i)
}

// exclude marks record i as unreadable.
func (p *partition) exclude(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bucket.Records[i].Key = p.bucket.Records[i].Key.Excluded()
}

// groups returns every digest shared by two or more records.
// Groups and their members follow the bucket's record order.
func (p *partition) groups() []Group {
	p.mu.Lock()
	defer p.mu.Unlock()

	var groups []Group

	emitted := make(map[string]bool, len(p.byDigest))

	for _, record := range p.bucket.Records {
		if record.Key.State != HashComputed {
			continue
		}

		digest := string(record.Key.Hash)
		if emitted[digest] {
			continue
		}

		emitted[digest] = true

		indices := p.byDigest[digest]
		if len(indices) < 2 {
			continue
		}

		slices.Sort(indices)

		members := make([]string, len(indices))
		for j, idx := range indices {
			members[j] = p.bucket.Records[idx].Path
		}

		groups = append(groups, Group{
			Size:    p.bucket.Size,
			Hash:    record.Key.Hash.String(),
			Members: members,
		})
	}

	return groups
}

// confirmer hashes bucket members on a bounded worker pool.
type confirmer struct {
	algorithm Algorithm
	workers   int
	log       logger

	hashed  atomic.Int64
	bytes   atomic.Int64
	skipped atomic.Int64

	buffers sync.Pool

	// hashFile computes one digest; replaced in tests.
	hashFile func(path string, size uint64, alg Algorithm, buf []byte) (Digest, error)
}

func newConfirmer(alg Algorithm, workers int, log logger) *confirmer {
	if alg == "" {
		alg = DefaultAlgorithm
	}

	if workers <= 0 {
		workers = 1
	}

	return &confirmer{
		algorithm: alg,
		workers:   workers,
		log:       log,
		hashFile:  hashFile,
		buffers: sync.Pool{
			New: func() any {
				buf := make([]byte, bufferSize)

				return &buf
			},
		},
	}
}

// Confirm hashes every member of every bucket and returns the (size, digest)
// groups with two or more members. Files that cannot be read are dropped.
func Confirm(ctx context.Context, buckets []Bucket, alg Algorithm, workers int) ([]Group, error) {
	return newConfirmer(alg, workers, logger{}).run(ctx, buckets)
}

func (c *confirmer) run(ctx context.Context, buckets []Bucket) ([]Group, error) {
	if _, err := c.algorithm.New(); err != nil {
		return nil, err
	}

	partitions := make([]*partition, len(buckets))
	for i, b := range buckets {
		partitions[i] = newPartition(b)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, p := range partitions {
		for i := range p.bucket.Records {
			path := p.bucket.Records[i].Path
			size := p.bucket.Size

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				return c.hash(p, i, path, size)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []Group
	for _, p := range partitions {
		groups = append(groups, p.groups()...)
	}

	return groups, nil
}

// hash computes the digest of one record and files it in its partition.
func (c *confirmer) hash(p *partition, i int, path string, size uint64) error {
	buf := c.buffers.Get().(*[]byte) //nolint:forcetypeassert // Pool only holds *[]byte
	defer c.buffers.Put(buf)

	digest, err := c.hashFile(path, size, c.algorithm, *buf)
	if err != nil {
		if isExhausted(err) {
			return fmt.Errorf("hash stage: %w", err)
		}

		c.log.printf("[debug]: skipping unreadable file %s: %v\n", path, err)
		c.skipped.Add(1)
		p.exclude(i)

		return nil
	}

	c.hashed.Add(1)
	c.bytes.Add(int64(size)) //nolint:gosec // Sizes originate from int64 file info
	p.add(i, digest)

	return nil
}
