package records

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/schlib"
	"github.com/agentstation/partsync/pkg/tabular"
)

// DocKey returns the record key of a documentation entry.
func DocKey(k schlib.DocKey) string {
	return string(k) + constants.DocSuffix
}

// Projector turns components and CSV rows into records, recording every
// label it sees in its lookup table.
type Projector struct {
	lookup *fields.LookupTable
	logger *zerolog.Logger
}

// Option configures a Projector.
type Option func(*Projector)

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Projector) {
		p.logger = logger
	}
}

// NewProjector creates a projector. A nil lookup table gets a fresh one.
func NewProjector(lookup *fields.LookupTable, opts ...Option) *Projector {
	if lookup == nil {
		lookup = fields.NewLookupTable()
	}
	p := &Projector{lookup: lookup, logger: logging.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup returns the projector's lookup table.
func (p *Projector) Lookup() *fields.LookupTable {
	return p.lookup
}

// FieldKeys returns, per field index, the record key the projection assigns
// to that field. Skipped fields get "". Keys are derived from the live
// labels every call.
func FieldKeys(c *schlib.Component) []string {
	keys, _ := assignKeys(c)
	return keys
}

// assignKeys computes field keys and the set of keys already used by the
// name and documentation entries.
func assignKeys(c *schlib.Component) ([]string, map[string]bool) {
	taken := map[string]bool{constants.KeyName: true}
	for _, k := range schlib.DocKeys {
		taken[DocKey(k)] = true
	}
	has := func(k string) bool { return taken[k] }

	keys := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		var key string
		switch i {
		case constants.ReferenceIndex:
			key = constants.KeyReference
		case constants.ValueIndex:
			key = constants.KeyValue
		case constants.FootprintIndex:
			key = constants.KeyFootprint
		default:
			key = fields.Canonicalize(f.Label)
			if key == "" {
				if f.Value != "" {
					continue
				}
				key = fields.NextPlaceholder(has)
			}
		}
		key = fields.Disambiguate(key, has)
		taken[key] = true
		keys[i] = key
	}
	return keys, taken
}

// Library projects one component.
func (p *Projector) Library(c *schlib.Component) (*Record, error) {
	if c.Name == "" {
		return nil, errors.NewMissingNameError("library", -1)
	}

	r := New()
	r.Set(constants.KeyName, c.Name)
	for _, k := range schlib.DocKeys {
		v, _ := c.Doc(k)
		r.Set(DocKey(k), v)
	}

	keys, _ := assignKeys(c)
	for i, f := range c.Fields {
		key := keys[i]
		if key == "" {
			p.logger.Debug().
				Str("component", c.Name).
				Int("index", i).
				Msg("Skipping unlabelled field with a value")
			continue
		}
		switch i {
		case constants.ReferenceIndex:
			r.Set(key, f.Reference)
		case constants.ValueIndex, constants.FootprintIndex:
			r.Set(key, f.Value)
		default:
			r.Set(key, f.Value)
			p.lookup.Record(key, f.Label)
		}
	}
	return r, nil
}

// LibraryRecords projects every component of lib, skipping unnamed ones.
func (p *Projector) LibraryRecords(lib *schlib.Library) []*Record {
	comps := lib.Components()
	out := make([]*Record, 0, len(comps))
	for i, c := range comps {
		r, err := p.Library(c)
		if err != nil {
			p.logSkip(err, "library", i)
			continue
		}
		out = append(out, r)
	}
	return out
}

// CSV projects one row under header.
func (p *Projector) CSV(header, row []string) (*Record, error) {
	keys := p.headerKeys(header)
	r := New()
	for i, key := range keys {
		if key == "" {
			continue
		}
		cell := ""
		if i < len(row) {
			cell = tabular.Unprotect(row[i])
		}
		r.Set(key, cell)
	}
	if r.Name() == "" {
		return nil, errors.NewMissingNameError("csv", -1)
	}
	return r, nil
}

// CSVRecords projects every row of t, skipping unnamed ones.
func (p *Projector) CSVRecords(t *tabular.Table) []*Record {
	out := make([]*Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		r, err := p.CSV(t.Header, row)
		if err != nil {
			p.logSkip(err, "csv", i)
			continue
		}
		out = append(out, r)
	}
	return out
}

func (p *Projector) headerKeys(header []string) []string {
	taken := make(map[string]bool, len(header))
	keys := make([]string, len(header))
	for i, cell := range header {
		key := fields.Canonicalize(cell)
		if key == "" {
			continue
		}
		key = fields.Disambiguate(key, func(k string) bool { return taken[k] })
		taken[key] = true
		keys[i] = key
		p.lookup.Record(key, cell)
	}
	return keys
}

func (p *Projector) logSkip(err error, source string, index int) {
	var mn *errors.MissingNameError
	if errors.As(err, &mn) {
		mn.Source, mn.Index = source, index
	}
	p.logger.Warn().Err(err).Str("source", source).Int("index", index).Msg("Skipping record")
}

// WithGlobalField sets label to value on every record where it is missing
// or empty, and records label in lookup.
func WithGlobalField(recs []*Record, lookup *fields.LookupTable, label, value string) {
	key := fields.Canonicalize(label)
	if key == "" {
		return
	}
	if lookup != nil {
		lookup.Record(key, label)
	}
	for _, r := range recs {
		if r.Value(key) == "" {
			r.Set(key, value)
		}
	}
}
