package fields

// LookupTable maps canonical keys to the first display label seen for them.
// It only grows. The zero value is not usable; call NewLookupTable.
type LookupTable struct {
	labels map[string]string
	order  []string
}

// NewLookupTable creates an empty table.
func NewLookupTable() *LookupTable {
	return &LookupTable{labels: make(map[string]string)}
}

// Record stores label for key unless a label is already known or label is
// empty once unquoted. It reports whether the table changed.
func (t *LookupTable) Record(key, label string) bool {
	label = Unquote(label)
	if key == "" || label == "" {
		return false
	}
	if _, ok := t.labels[key]; ok {
		return false
	}
	t.labels[key] = label
	t.order = append(t.order, key)
	return true
}

// Label returns the recorded label for key, or a synthesized one.
func (t *LookupTable) Label(key string) string {
	if label, ok := t.labels[key]; ok {
		return label
	}
	return Restore(key)
}

// Has reports whether key has a recorded label.
func (t *LookupTable) Has(key string) bool {
	_, ok := t.labels[key]
	return ok
}

// Len returns the number of recorded keys.
func (t *LookupTable) Len() int {
	return len(t.labels)
}

// Keys returns recorded keys in the order they were first seen.
func (t *LookupTable) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
