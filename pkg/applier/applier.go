// Package applier writes a reconciliation report back into a library.
//
// Stages run in a fixed order: replace, delete, add, update. Every
// structural stage that changed the library is followed by a save, a
// reload through the Store and a fresh comparison, so later stages never
// act on stale positions.
package applier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/differ"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/schlib"
)

// Stage names.
const (
	StageReplace = "replace"
	StageDelete  = "delete"
	StageAdd     = "add"
	StageUpdate  = "update"
)

// Store loads and persists the library being reconciled.
type Store interface {
	Load() (*schlib.Library, error)
	Save(lib *schlib.Library) error
}

// EventHandler is notified of component-level changes.
type EventHandler interface {
	ComponentAdded(name string)
	ComponentRemoved(name string)
	ComponentRenamed(oldName, newName string)
	ComponentUpdated(name string, changes int)
}

type nopEvents struct{}

func (nopEvents) ComponentAdded(string)           {}
func (nopEvents) ComponentRemoved(string)         {}
func (nopEvents) ComponentRenamed(string, string) {}
func (nopEvents) ComponentUpdated(string, int)    {}

// StageResult describes one stage of a run.
type StageResult struct {
	Name      string `json:"name" yaml:"name"`
	Attempted int    `json:"attempted" yaml:"attempted"`
	Applied   int    `json:"applied" yaml:"applied"`
	Skipped   bool   `json:"skipped" yaml:"skipped"`
}

// Result describes a run.
type Result struct {
	Applied   int            `json:"applied" yaml:"applied"`
	Saves     int            `json:"saves" yaml:"saves"`
	Stages    []StageResult  `json:"stages" yaml:"stages"`
	Persisted bool           `json:"persisted" yaml:"persisted"`
	Errors    []error        `json:"-" yaml:"-"`
	Report    *differ.Report `json:"-" yaml:"-"`
}

// Applier applies reports against one set of CSV records.
type Applier struct {
	projector *records.Projector
	engine    *differ.Engine
	csv       []*records.Record
	byName    map[string]*records.Record

	template *schlib.Component
	logger   *zerolog.Logger
	events   EventHandler
	add      bool
	delete   bool
	save     bool
}

// New creates an Applier. projector and engine are reused for every
// refresh, so the projector's lookup table keeps growing across stages.
func New(projector *records.Projector, engine *differ.Engine, csv []*records.Record, opts ...Option) *Applier {
	a := &Applier{
		projector: projector,
		engine:    engine,
		csv:       csv,
		byName:    make(map[string]*records.Record, len(csv)),
		logger:    logging.Default(),
		events:    nopEvents{},
		add:       true,
		delete:    true,
		save:      true,
	}
	for _, r := range csv {
		a.byName[r.Name()] = r
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh re-projects lib and compares it against the CSV records.
func (a *Applier) Refresh(lib *schlib.Library) *differ.Report {
	return a.engine.Compare(a.projector.LibraryRecords(lib), a.csv)
}

type stageFunc func(ctx context.Context, lib *schlib.Library, report *differ.Report, st *StageResult, res *Result)

// Apply runs every stage of report against the library held by store.
// A nil report is computed from the loaded library. Per-item failures are
// collected in Result.Errors; only load, save and cancellation errors are
// returned. Log lines carry the fields of the applier's logger plus the
// stage and component they concern.
func (a *Applier) Apply(ctx context.Context, store Store, report *differ.Report) (*Result, error) {
	ctx = logging.WithLogger(ctx, a.logger)
	log := logging.Ctx(ctx)

	lib, err := store.Load()
	if err != nil {
		return nil, err
	}
	if report == nil {
		report = a.Refresh(lib)
	}

	res := &Result{}
	if report.IsEmpty() {
		log.Info().Msg("No differences found")
		res.Report = report
		return res, nil
	}

	structural := []struct {
		name    string
		enabled bool
		run     stageFunc
	}{
		{StageReplace, a.add && a.delete, a.replace},
		{StageDelete, a.delete, a.remove},
		{StageAdd, a.add, a.insert},
	}

	for _, s := range structural {
		if err := ctx.Err(); err != nil {
			return res, errors.WrapResource(s.name, "library", lib.Path(), errors.ErrCanceled)
		}
		sctx := logging.WithStage(ctx, s.name)
		st := StageResult{Name: s.name, Skipped: !s.enabled}
		if s.enabled {
			s.run(sctx, lib, report, &st, res)
		}
		res.Stages = append(res.Stages, st)
		res.Applied += st.Applied
		logging.Ctx(sctx).Debug().Int("attempted", st.Attempted).Int("applied", st.Applied).Bool("skipped", st.Skipped).Msg("Stage complete")

		if st.Applied == 0 {
			continue
		}
		if lib, err = a.persist(sctx, store, lib, res); err != nil {
			return res, err
		}
		report = a.Refresh(lib)
	}

	if err := ctx.Err(); err != nil {
		return res, errors.WrapResource(StageUpdate, "library", lib.Path(), errors.ErrCanceled)
	}
	sctx := logging.WithStage(ctx, StageUpdate)
	st := StageResult{Name: StageUpdate}
	a.update(sctx, lib, report, &st, res)
	res.Stages = append(res.Stages, st)
	res.Applied += st.Applied
	logging.Ctx(sctx).Debug().Int("attempted", st.Attempted).Int("applied", st.Applied).Msg("Stage complete")

	if st.Applied > 0 {
		if lib, err = a.persist(sctx, store, lib, res); err != nil {
			return res, err
		}
		report = a.Refresh(lib)
	}

	res.Persisted = res.Saves > 0
	res.Report = report
	log.Info().
		Int("applied", res.Applied).
		Int("saves", res.Saves).
		Int("errors", len(res.Errors)).
		Bool("persisted", res.Persisted).
		Msg("Library update complete")
	return res, nil
}

// persist saves lib and reloads it. With saving disabled the in-memory
// library is kept.
func (a *Applier) persist(ctx context.Context, store Store, lib *schlib.Library, res *Result) (*schlib.Library, error) {
	if !a.save {
		logging.Ctx(ctx).Warn().Str("library", lib.Path()).Msg("Saving disabled, changes kept in memory only")
		return lib, nil
	}
	if err := store.Save(lib); err != nil {
		return lib, err
	}
	res.Saves++
	return store.Load()
}

// fail logs and collects a per-item error.
func (a *Applier) fail(ctx context.Context, res *Result, err error, component, field string) {
	ev := logging.Ctx(ctx).Warn().Err(err)
	if component != "" {
		ev = ev.Str("component", component)
	}
	if field != "" {
		ev = ev.Str("field", field)
	}
	ev.Msg("Change not applied")
	res.Errors = append(res.Errors, err)
}
