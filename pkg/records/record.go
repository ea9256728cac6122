// Package records projects library components and CSV rows into flat
// comparison records keyed by canonical field names.
package records

import (
	"github.com/agentstation/partsync/pkg/constants"
)

// Record is an ordered mapping of canonical key to value. Order matters
// for export only.
type Record struct {
	keys   []string
	values map[string]string
}

// New creates an empty record.
func New() *Record {
	return &Record{values: make(map[string]string)}
}

// FromPairs builds a record from alternating key, value arguments.
func FromPairs(kv ...string) *Record {
	r := New()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Name returns the record identifier.
func (r *Record) Name() string {
	return r.values[constants.KeyName]
}

// Get returns the value for key and whether the key is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value for key, or "".
func (r *Record) Value(key string) string {
	return r.values[key]
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Set stores value under key, appending key if it is new.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return len(r.keys)
}

// Map returns a copy of the values.
func (r *Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Header returns the union of keys across recs in first-appearance order.
func Header(recs []*Record) []string {
	seen := make(map[string]bool)
	var header []string
	for _, r := range recs {
		for _, k := range r.keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}
	return header
}

// Rows lays recs out under header. Missing keys become "".
func Rows(recs []*Record, header []string) [][]string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		row := make([]string, len(header))
		for j, k := range header {
			row[j] = r.values[k]
		}
		rows[i] = row
	}
	return rows
}

// Index returns a name to position map.
func Index(recs []*Record) map[string]int {
	idx := make(map[string]int, len(recs))
	for i, r := range recs {
		idx[r.Name()] = i
	}
	return idx
}
