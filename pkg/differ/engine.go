package differ

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/fields"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/records"
)

// Engine compares library records against CSV records. The CSV is the
// source of truth: when both sides hold different non-empty values the CSV
// value wins and no conflict is reported.
type Engine struct {
	add    bool
	delete bool
	logger *zerolog.Logger
}

// New creates an Engine with additions and deletions enabled.
func New(opts ...Option) *Engine {
	e := &Engine{add: true, delete: true, logger: logging.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// candidate is a component present on one side only.
type candidate struct {
	name  string
	index int
}

// Compare computes the report that turns library into csv.
func (e *Engine) Compare(library, csv []*records.Record) *Report {
	report := &Report{}
	libIndex := records.Index(library)
	consumed := make(map[int]bool, len(library))

	var adds []candidate
	for i, c := range csv {
		j, ok := libIndex[c.Name()]
		if !ok {
			adds = append(adds, candidate{name: c.Name(), index: i})
			continue
		}
		consumed[j] = true
		if cs := e.diff(library[j], c); !cs.IsEmpty() {
			report.Updates = append(report.Updates, cs)
		}
	}

	var deletes []candidate
	for j, l := range library {
		if !consumed[j] {
			deletes = append(deletes, candidate{name: l.Name(), index: j})
		}
	}

	if e.add && e.delete {
		adds, deletes, report.Replace = pairReplacements(adds, deletes)
	}
	for _, rp := range report.Replace {
		e.logger.Debug().Str("component", rp.Old).Str("new_name", rp.New).Msg("Detected replacement")
	}

	for _, a := range adds {
		if !e.add {
			e.logger.Info().Str("component", a.name).Msg("Addition disabled, skipping")
			continue
		}
		report.Add = append(report.Add, a.name)
	}
	for _, d := range deletes {
		if !e.delete {
			e.logger.Info().Str("component", d.name).Msg("Deletion disabled, skipping")
			continue
		}
		report.Delete = append(report.Delete, d.name)
	}

	e.logger.Debug().
		Int("library", len(library)).
		Int("csv", len(csv)).
		Int("changes", report.Summary().TotalChanges).
		Msg("Compared records")
	return report
}

// pairReplacements moves add/delete candidates sharing a positional index
// into replace pairs.
func pairReplacements(adds, deletes []candidate) ([]candidate, []candidate, []Replace) {
	if len(adds) == 0 || len(deletes) == 0 {
		return adds, deletes, nil
	}
	byIndex := make(map[int]string, len(deletes))
	for _, d := range deletes {
		byIndex[d.index] = d.name
	}

	var (
		replaces []Replace
		paired   = make(map[string]bool)
		keptAdds []candidate
	)
	for _, a := range adds {
		old, ok := byIndex[a.index]
		if !ok {
			keptAdds = append(keptAdds, a)
			continue
		}
		replaces = append(replaces, Replace{New: a.name, Old: old})
		paired[old] = true
	}

	var keptDeletes []candidate
	for _, d := range deletes {
		if !paired[d.name] {
			keptDeletes = append(keptDeletes, d)
		}
	}
	return keptAdds, keptDeletes, replaces
}

// diffable reports whether key takes part in field diffing.
func diffable(key string) bool {
	return key != constants.KeyName && !fields.IsPlaceholder(key)
}

func (e *Engine) diff(lib, csv *records.Record) *ChangeSet {
	cs := &ChangeSet{Name: csv.Name()}

	for _, key := range lib.Keys() {
		if !diffable(key) {
			continue
		}
		old := lib.Value(key)
		if old == "" {
			continue
		}
		val, _ := csv.Get(key)
		switch {
		case val == "":
			cs.FieldDelete = append(cs.FieldDelete, FieldChange{Field: key, Value: old})
		case val != old:
			cs.FieldUpdate = append(cs.FieldUpdate, FieldChange{Field: key, Value: val, OldValue: old})
		}
	}

	for _, key := range csv.Keys() {
		if !diffable(key) || lib.Has(key) {
			continue
		}
		if val := csv.Value(key); val != "" {
			cs.FieldAdd = append(cs.FieldAdd, FieldChange{Field: key, Value: val})
		}
	}

	if !cs.IsEmpty() {
		e.logger.Debug().
			Str("component", cs.Name).
			Int("update", len(cs.FieldUpdate)).
			Int("delete", len(cs.FieldDelete)).
			Int("add", len(cs.FieldAdd)).
			Msg("Field differences")
	}
	return cs
}
