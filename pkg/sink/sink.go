// Package sink publishes comparison records to flat key/value stores.
package sink

import (
	"context"
	"strings"
	"sync"

	"github.com/agentstation/partsync/pkg/records"
)

// Sink accepts flat records grouped in collections (one per library).
type Sink interface {
	Write(ctx context.Context, collection string, rec *records.Record) error
	Close() error
}

// Key joins key parts with ":".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// MemorySink keeps records in memory. It is used for dry runs and tests.
type MemorySink struct {
	mu          sync.RWMutex
	collections map[string][]*records.Record
	closed      bool
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{collections: make(map[string][]*records.Record)}
}

// Write stores rec, replacing an earlier record with the same name.
func (m *MemorySink) Write(ctx context.Context, collection string, rec *records.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.collections[collection]
	for i, r := range recs {
		if r.Name() == rec.Name() {
			recs[i] = rec
			return nil
		}
	}
	m.collections[collection] = append(recs, rec)
	return nil
}

// Records returns the records of a collection in write order.
func (m *MemorySink) Records(collection string) []*records.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*records.Record, len(m.collections[collection]))
	copy(out, m.collections[collection])
	return out
}

// Closed reports whether Close was called.
func (m *MemorySink) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Close marks the sink closed.
func (m *MemorySink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
