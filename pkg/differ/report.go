// Package differ compares library-side and CSV-side records and reports
// the components and fields that must change for the library to match
// the CSV.
package differ

import (
	"fmt"
	"io"
	"strings"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a field or component was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a field was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a field or component was removed.
	ChangeTypeRemove ChangeType = "remove"
	// ChangeTypeReplace indicates a component was renamed in place.
	ChangeTypeReplace ChangeType = "replace"
)

// FieldChange is one entry of a change bucket. Value is the new value for
// updates and additions and the library's old value for deletions.
type FieldChange struct {
	Field    string `json:"field" yaml:"field"`
	Value    string `json:"value" yaml:"value"`
	OldValue string `json:"old_value,omitempty" yaml:"old_value,omitempty"`
}

// ChangeSet holds the field changes of one component.
type ChangeSet struct {
	Name        string        `json:"name" yaml:"name"`
	FieldUpdate []FieldChange `json:"field_update,omitempty" yaml:"field_update,omitempty"`
	FieldDelete []FieldChange `json:"field_delete,omitempty" yaml:"field_delete,omitempty"`
	FieldAdd    []FieldChange `json:"field_add,omitempty" yaml:"field_add,omitempty"`
}

// IsEmpty returns true if no bucket holds an entry.
func (c *ChangeSet) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the number of field changes.
func (c *ChangeSet) Len() int {
	return len(c.FieldUpdate) + len(c.FieldDelete) + len(c.FieldAdd)
}

// Updated returns the new value of an updated field.
func (c *ChangeSet) Updated(field string) (string, bool) {
	return find(c.FieldUpdate, field)
}

// Deleted returns the old value of a deleted field.
func (c *ChangeSet) Deleted(field string) (string, bool) {
	return find(c.FieldDelete, field)
}

// Added returns the value of an added field.
func (c *ChangeSet) Added(field string) (string, bool) {
	return find(c.FieldAdd, field)
}

func find(bucket []FieldChange, field string) (string, bool) {
	for _, fc := range bucket {
		if fc.Field == field {
			return fc.Value, true
		}
	}
	return "", false
}

// Replace pairs a CSV-only name with the library-only name it renames.
type Replace struct {
	New string `json:"new" yaml:"new"`
	Old string `json:"old" yaml:"old"`
}

// Report is the result of one comparison. Every list is ordered: updates
// and additions follow CSV order, deletions follow library order.
type Report struct {
	Updates []*ChangeSet `json:"part_update,omitempty" yaml:"part_update,omitempty"`
	Add     []string     `json:"part_add,omitempty" yaml:"part_add,omitempty"`
	Delete  []string     `json:"part_delete,omitempty" yaml:"part_delete,omitempty"`
	Replace []Replace    `json:"part_replace,omitempty" yaml:"part_replace,omitempty"`
}

// Summary provides summary statistics for a report.
type Summary struct {
	ComponentsAdded    int `json:"components_added" yaml:"components_added"`
	ComponentsRemoved  int `json:"components_removed" yaml:"components_removed"`
	ComponentsReplaced int `json:"components_replaced" yaml:"components_replaced"`
	ComponentsUpdated  int `json:"components_updated" yaml:"components_updated"`
	FieldsUpdated      int `json:"fields_updated" yaml:"fields_updated"`
	FieldsDeleted      int `json:"fields_deleted" yaml:"fields_deleted"`
	FieldsAdded        int `json:"fields_added" yaml:"fields_added"`
	TotalChanges       int `json:"total_changes" yaml:"total_changes"`
}

// IsEmpty returns true if the report calls for no action.
func (r *Report) IsEmpty() bool {
	return r == nil || r.Len() == 0
}

// Len returns the number of component-level entries.
func (r *Report) Len() int {
	return len(r.Updates) + len(r.Add) + len(r.Delete) + len(r.Replace)
}

// Update returns the change set for name, or nil.
func (r *Report) Update(name string) *ChangeSet {
	for _, cs := range r.Updates {
		if cs.Name == name {
			return cs
		}
	}
	return nil
}

// Names returns every component name the report touches, in report order.
func (r *Report) Names() []string {
	var names []string
	for _, rp := range r.Replace {
		names = append(names, rp.New)
	}
	names = append(names, r.Delete...)
	names = append(names, r.Add...)
	for _, cs := range r.Updates {
		names = append(names, cs.Name)
	}
	return names
}

// Summary computes summary statistics.
func (r *Report) Summary() Summary {
	s := Summary{
		ComponentsAdded:    len(r.Add),
		ComponentsRemoved:  len(r.Delete),
		ComponentsReplaced: len(r.Replace),
		ComponentsUpdated:  len(r.Updates),
	}
	for _, cs := range r.Updates {
		s.FieldsUpdated += len(cs.FieldUpdate)
		s.FieldsDeleted += len(cs.FieldDelete)
		s.FieldsAdded += len(cs.FieldAdd)
	}
	s.TotalChanges = s.ComponentsAdded + s.ComponentsRemoved + s.ComponentsReplaced +
		s.FieldsUpdated + s.FieldsDeleted + s.FieldsAdded
	return s
}

// String returns a human-readable summary of the report.
func (r *Report) String() string {
	if r.IsEmpty() {
		return "No differences found"
	}
	s := r.Summary()

	var parts []string
	if s.ComponentsReplaced > 0 {
		parts = append(parts, fmt.Sprintf("%d replaced", s.ComponentsReplaced))
	}
	if s.ComponentsRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", s.ComponentsRemoved))
	}
	if s.ComponentsAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d added", s.ComponentsAdded))
	}
	if s.ComponentsUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", s.ComponentsUpdated))
	}
	return fmt.Sprintf("Components: %s (Total: %d changes)", strings.Join(parts, ", "), s.TotalChanges)
}

// Print writes a detailed, human-readable view of the report to w.
func (r *Report) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, r.String())
	if r.IsEmpty() {
		return
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(r.Replace) > 0 {
		_, _ = fmt.Fprintf(w, "\n🔁 Replaced Components (%d):\n", len(r.Replace))
		for _, rp := range r.Replace {
			_, _ = fmt.Fprintf(w, "  • %s → %s\n", rp.Old, rp.New)
		}
	}

	if len(r.Delete) > 0 {
		_, _ = fmt.Fprintf(w, "\n⚠️  Removed Components (%d):\n", len(r.Delete))
		for _, name := range r.Delete {
			_, _ = fmt.Fprintf(w, "  • %s\n", name)
		}
	}

	if len(r.Add) > 0 {
		_, _ = fmt.Fprintf(w, "\n➕ Added Components (%d):\n", len(r.Add))
		for _, name := range r.Add {
			_, _ = fmt.Fprintf(w, "  • %s\n", name)
		}
	}

	if len(r.Updates) > 0 {
		_, _ = fmt.Fprintf(w, "\n🔄 Updated Components (%d):\n", len(r.Updates))
		for _, cs := range r.Updates {
			_, _ = fmt.Fprintf(w, "  • %s:\n", cs.Name)
			for _, fc := range cs.FieldUpdate {
				_, _ = fmt.Fprintf(w, "    - %s: %s → %s\n", fc.Field, fc.OldValue, fc.Value)
			}
			for _, fc := range cs.FieldDelete {
				_, _ = fmt.Fprintf(w, "    - %s: %s → (removed)\n", fc.Field, fc.Value)
			}
			for _, fc := range cs.FieldAdd {
				_, _ = fmt.Fprintf(w, "    + %s: %s\n", fc.Field, fc.Value)
			}
		}
	}
}

// Changes flattens the report into one row per change, for tabular output.
func (r *Report) Changes() []Change {
	var out []Change
	for _, rp := range r.Replace {
		out = append(out, Change{Component: rp.New, Type: ChangeTypeReplace, OldValue: rp.Old, NewValue: rp.New})
	}
	for _, name := range r.Delete {
		out = append(out, Change{Component: name, Type: ChangeTypeRemove})
	}
	for _, name := range r.Add {
		out = append(out, Change{Component: name, Type: ChangeTypeAdd})
	}
	for _, cs := range r.Updates {
		for _, fc := range cs.FieldUpdate {
			out = append(out, Change{Component: cs.Name, Field: fc.Field, Type: ChangeTypeUpdate, OldValue: fc.OldValue, NewValue: fc.Value})
		}
		for _, fc := range cs.FieldDelete {
			out = append(out, Change{Component: cs.Name, Field: fc.Field, Type: ChangeTypeRemove, OldValue: fc.Value})
		}
		for _, fc := range cs.FieldAdd {
			out = append(out, Change{Component: cs.Name, Field: fc.Field, Type: ChangeTypeAdd, NewValue: fc.Value})
		}
	}
	return out
}

// Change is a single flattened report entry.
type Change struct {
	Component string     `json:"component" yaml:"component"`
	Field     string     `json:"field,omitempty" yaml:"field,omitempty"`
	Type      ChangeType `json:"type" yaml:"type"`
	OldValue  string     `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue  string     `json:"new_value,omitempty" yaml:"new_value,omitempty"`
}
