package dupfind

import (
	"sync"
	"sync/atomic"
)

// collector gathers file records from concurrent fastwalk callbacks using a mutex.
// Records are appended whole and never modified after publication.
type collector struct {
	mu      sync.Mutex // Protect concurrent appends
	records []FileRecord

	files   atomic.Int64
	bytes   atomic.Int64
	skipped atomic.Int64
}

// newCollector creates an empty collector.
func newCollector() *collector {
	return &collector{
		records: make([]FileRecord, 0, 1024),
	}
}

// addError counts an entry that could not be read.
func (c *collector) addError() {
	c.skipped.Add(1)
}

// add publishes a record. It is safe to call from multiple goroutines.
func (c *collector) add(record FileRecord) {
	c.mu.Lock()
	c.records = append(c.records, record)
	c.mu.Unlock()

	c.files.Add(1)
	c.bytes.Add(int64(record.Key.Size)) //nolint:gosec // Sizes originate from int64 file info
}

// finalize hands over the collected records.
func (c *collector) finalize() []FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.records
	c.records = nil

	return records
}
