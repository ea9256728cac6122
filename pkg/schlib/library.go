// Package schlib reads and writes KiCad legacy symbol libraries (.lib) and
// their documentation files (.dcm).
//
// Only the parts needed for reconciliation are modelled: component names,
// the DEF line, fields and documentation. Everything else inside a DEF
// block is carried through verbatim.
package schlib

import (
	"slices"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
)

// Library is an ordered collection of components.
type Library struct {
	path       string
	header     []string
	trailer    []string
	components []*Component
	orphans    []docEntry
	hasDocs    bool
}

type docEntry struct {
	name string
	doc  *Documentation
}

// New returns an empty library bound to path.
func New(path string) *Library {
	return &Library{
		path:   path,
		header: []string{constants.LibraryHeader, constants.LibraryEncoding},
	}
}

// Path returns the .lib path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Len returns the number of components.
func (l *Library) Len() int {
	return len(l.components)
}

// Components returns the components in file order.
func (l *Library) Components() []*Component {
	return slices.Clone(l.components)
}

// Names returns component names in file order.
func (l *Library) Names() []string {
	names := make([]string, len(l.components))
	for i, c := range l.components {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of name, or -1.
func (l *Library) Index(name string) int {
	return slices.IndexFunc(l.components, func(c *Component) bool {
		return c.Name == name
	})
}

// Get returns the component called name.
func (l *Library) Get(name string) (*Component, error) {
	i := l.Index(name)
	if i < 0 {
		return nil, errors.NewLookupError("component", name)
	}
	return l.components[i], nil
}

// Add appends a component. Names must be unique.
func (l *Library) Add(c *Component) error {
	if l.Index(c.Name) >= 0 {
		return errors.NewValidationError("name", c.Name, "component already exists")
	}
	l.components = append(l.components, c)
	return nil
}

// InsertAfter places c immediately after the component called name.
func (l *Library) InsertAfter(name string, c *Component) error {
	i := l.Index(name)
	if i < 0 {
		return errors.NewLookupError("component", name)
	}
	if l.Index(c.Name) >= 0 {
		return errors.NewValidationError("name", c.Name, "component already exists")
	}
	l.components = slices.Insert(l.components, i+1, c)
	return nil
}

// Remove deletes the component called name.
func (l *Library) Remove(name string) error {
	i := l.Index(name)
	if i < 0 {
		return errors.NewLookupError("component", name)
	}
	l.components = slices.Delete(l.components, i, i+1)
	return nil
}
