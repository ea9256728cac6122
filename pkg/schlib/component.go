package schlib

import (
	"slices"
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
)

// Definition is the DEF line of a component.
type Definition struct {
	Name      string   // as written, including a leading "~" when present
	Reference string   // designator prefix, e.g. "R"
	Options   []string // remaining DEF tokens, kept verbatim
}

// Hidden reports whether the definition name carries the "~" prefix.
func (d Definition) Hidden() bool {
	return strings.HasPrefix(d.Name, "~")
}

// Field is one F line. Index 0 holds the reference designator in Reference;
// every other index holds its text in Value.
type Field struct {
	Label       string
	Value       string
	Reference   string
	PosX        int
	PosY        int
	TextSize    int
	Orientation string
	Visible     bool
	HJustify    string
	VJustify    string
}

// Clone returns a copy of the field.
func (f *Field) Clone() *Field {
	c := *f
	return &c
}

// Component is one DEF...ENDDEF block together with its documentation.
type Component struct {
	Name          string
	Comments      []string
	Definition    Definition
	Fields        []*Field
	Body          []string
	Documentation *Documentation
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	out := &Component{
		Name:     c.Name,
		Comments: slices.Clone(c.Comments),
		Definition: Definition{
			Name:      c.Definition.Name,
			Reference: c.Definition.Reference,
			Options:   slices.Clone(c.Definition.Options),
		},
		Fields: make([]*Field, len(c.Fields)),
		Body:   slices.Clone(c.Body),
	}
	for i, f := range c.Fields {
		out.Fields[i] = f.Clone()
	}
	if c.Documentation != nil {
		out.Documentation = c.Documentation.Clone()
	}
	return out
}

// Rename changes the component identifier, the DEF name (keeping a "~"
// prefix) and the name comment when the standard comment block is present.
func (c *Component) Rename(name string) {
	c.Name = name
	if c.Definition.Hidden() {
		c.Definition.Name = "~" + name
	} else {
		c.Definition.Name = name
	}
	if len(c.Comments) == constants.ComponentCommentLines {
		c.Comments[1] = "# " + name
	}
}

// Field returns the field at index, or nil.
func (c *Component) Field(index int) *Field {
	if index < 0 || index >= len(c.Fields) {
		return nil
	}
	return c.Fields[index]
}

// RemoveField deletes the field at index.
func (c *Component) RemoveField(index int) {
	if index < 0 || index >= len(c.Fields) {
		return
	}
	c.Fields = slices.Delete(c.Fields, index, index+1)
}

// Doc returns a documentation entry and whether it exists.
func (c *Component) Doc(key DocKey) (string, bool) {
	return c.Documentation.Get(key)
}

// SetDoc sets a documentation entry, creating the block if needed.
func (c *Component) SetDoc(key DocKey, value string) {
	if c.Documentation == nil {
		c.Documentation = NewDocumentation()
	}
	c.Documentation.Set(key, value)
}

// DocKey names one documentation entry.
type DocKey string

// Documentation entries in the order they are written.
const (
	Description DocKey = "description"
	Keywords    DocKey = "keywords"
	Datasheet   DocKey = "datasheet"
)

// DocKeys lists every documentation entry in write order.
var DocKeys = []DocKey{Description, Keywords, Datasheet}

var docTags = map[DocKey]string{
	Description: "D",
	Keywords:    "K",
	Datasheet:   "F",
}

// Documentation is a $CMP block. Each entry may be absent.
type Documentation struct {
	entries map[DocKey]string
	extra   []string
}

// NewDocumentation creates an empty block.
func NewDocumentation() *Documentation {
	return &Documentation{entries: make(map[DocKey]string)}
}

// Get returns the entry and whether it exists. Safe on a nil receiver.
func (d *Documentation) Get(key DocKey) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.entries[key]
	return v, ok
}

// Set stores an entry.
func (d *Documentation) Set(key DocKey, value string) {
	d.entries[key] = value
}

// Empty reports whether the block holds no non-empty entry.
func (d *Documentation) Empty() bool {
	if d == nil {
		return true
	}
	for _, v := range d.entries {
		if v != "" {
			return false
		}
	}
	return len(d.extra) == 0
}

// Clone returns a deep copy.
func (d *Documentation) Clone() *Documentation {
	out := NewDocumentation()
	for k, v := range d.entries {
		out.entries[k] = v
	}
	out.extra = slices.Clone(d.extra)
	return out
}
