// Package partsync reconciles a KiCad symbol library with a CSV export of
// the same components.
//
// A Session binds one library/CSV pair. Diff compares them, Update writes
// CSV edits back into the library, Export regenerates the CSV from the
// library and Publish copies library records into a Sink.
package partsync

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/partsync/pkg/applier"
	"github.com/agentstation/partsync/pkg/differ"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/schlib"
	"github.com/agentstation/partsync/pkg/tabular"
)

// Session reconciles one library/CSV pair. It owns the field lookup table
// for its lifetime and is not safe for concurrent use.
type Session struct {
	hooks     *hooks
	pair      Pair
	config    *config
	logger    *zerolog.Logger
	store     *FileStore
	projector *records.Projector
	library   *schlib.Library
}

// Open loads the library of pair and prepares a session.
func Open(pair Pair, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.Default()
	}
	l := logger.With().Str("library", pair.Name).Logger()

	s := &Session{
		hooks:  newHooks(),
		pair:   pair,
		config: cfg,
		logger: &l,
		store:  NewFileStore(pair.Library),
	}
	s.projector = records.NewProjector(fields.NewLookupTable(), records.WithLogger(s.logger))

	lib, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.library = lib
	return s, nil
}

// Pair returns the files this session reconciles.
func (s *Session) Pair() Pair {
	return s.pair
}

// Library returns the library as last loaded.
func (s *Session) Library() *schlib.Library {
	return s.library
}

// Lookup returns the session's field label table.
func (s *Session) Lookup() *fields.LookupTable {
	return s.projector.Lookup()
}

// LibraryRecords projects the current library.
func (s *Session) LibraryRecords() []*records.Record {
	return s.projector.LibraryRecords(s.library)
}

// CSVRecords reads and projects the CSV file, applying the configured
// global field. The library is projected first so its labels win in the
// lookup table.
func (s *Session) CSVRecords() ([]*records.Record, error) {
	s.projector.LibraryRecords(s.library)

	t, err := tabular.Read(s.pair.CSV)
	if err != nil {
		return nil, err
	}
	recs := s.projector.CSVRecords(t)
	if s.config.globalField != "" {
		records.WithGlobalField(recs, s.projector.Lookup(), s.config.globalField, s.config.globalValue)
	}
	return recs, nil
}

func (s *Session) engine() *differ.Engine {
	return differ.New(
		differ.WithAdd(s.config.addEnabled),
		differ.WithDelete(s.config.deleteEnabled),
		differ.WithLogger(s.logger),
	)
}

// Diff compares the library with the CSV file.
func (s *Session) Diff(ctx context.Context) (*differ.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapResource("diff", "library", s.pair.Library, errors.ErrCanceled)
	}
	csv, err := s.CSVRecords()
	if err != nil {
		return nil, err
	}
	return s.engine().Compare(s.projector.LibraryRecords(s.library), csv), nil
}

// Update applies the CSV file to the library and saves it.
func (s *Session) Update(ctx context.Context) (*applier.Result, error) {
	// Keep the caller's run ID; WithRunID generates one when it is empty.
	ctx = logging.WithRunID(logging.WithLogger(ctx, s.logger), logging.RunID(ctx))
	ctx = logging.WithFields(ctx, map[string]any{"csv": s.pair.CSV})
	log := logging.Ctx(ctx)

	csv, err := s.CSVRecords()
	if err != nil {
		return nil, err
	}

	opts := []applier.Option{
		applier.WithLogger(log),
		applier.WithAdd(s.config.addEnabled),
		applier.WithDelete(s.config.deleteEnabled),
		applier.WithSave(s.config.save),
		applier.WithEvents(s.hooks),
	}
	if s.config.template != nil {
		opts = append(opts, applier.WithTemplate(s.config.template))
	}
	a := applier.New(s.projector, s.engine(), csv, opts...)

	log.Info().Msg("Updating library from CSV")
	res, err := a.Apply(ctx, s.store, nil)
	if err != nil {
		return res, err
	}

	if res.Persisted {
		lib, err := s.store.Load()
		if err != nil {
			return res, err
		}
		s.library = lib
	}
	return res, nil
}

// Export writes the library to the CSV file. A non-empty CSV is only
// overwritten when force is set.
func (s *Session) Export(ctx context.Context, force bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.WrapResource("export", "csv", s.pair.CSV, errors.ErrCanceled)
	}
	if !force && tabular.Exists(s.pair.CSV) {
		return 0, errors.WrapResource("export", "csv", s.pair.CSV, errors.ErrAlreadyExists)
	}

	recs := s.projector.LibraryRecords(s.library)
	header := records.Header(recs)
	if err := tabular.Write(s.pair.CSV, header, records.Rows(recs, header)); err != nil {
		return 0, err
	}
	s.logger.Info().Str("csv", s.pair.CSV).Int("components", len(recs)).Msg("Exported library")
	return len(recs), nil
}

// Publish writes every library record to the configured sink under the
// library's name and returns how many were written.
func (s *Session) Publish(ctx context.Context) (int, error) {
	if s.config.sink == nil {
		return 0, errors.NewConfigError("sink", "no sink configured", nil)
	}

	n := 0
	for _, r := range s.projector.LibraryRecords(s.library) {
		if err := ctx.Err(); err != nil {
			return n, errors.WrapResource("publish", "library", s.pair.Library, errors.ErrCanceled)
		}
		if err := s.config.sink.Write(ctx, s.pair.Name, r); err != nil {
			return n, err
		}
		n++
	}
	s.logger.Info().Int("components", n).Msg("Published library")
	return n, nil
}

// OnComponentAdded registers a callback for components created by Update.
func (s *Session) OnComponentAdded(fn ComponentAddedHook) {
	s.hooks.OnComponentAdded(fn)
}

// OnComponentRemoved registers a callback for components removed by Update.
func (s *Session) OnComponentRemoved(fn ComponentRemovedHook) {
	s.hooks.OnComponentRemoved(fn)
}

// OnComponentRenamed registers a callback for components replaced by Update.
func (s *Session) OnComponentRenamed(fn ComponentRenamedHook) {
	s.hooks.OnComponentRenamed(fn)
}

// OnComponentUpdated registers a callback for components whose fields Update changed.
func (s *Session) OnComponentUpdated(fn ComponentUpdatedHook) {
	s.hooks.OnComponentUpdated(fn)
}
