package applier

import (
	"context"

	"github.com/agentstation/partsync/pkg/differ"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/logging"
	"github.com/agentstation/partsync/pkg/schlib"
)

// replace renames components in place: the renamed copy is inserted right
// after the original, which is then removed.
func (a *Applier) replace(ctx context.Context, lib *schlib.Library, report *differ.Report, st *StageResult, res *Result) {
	for _, rp := range report.Replace {
		if ctx.Err() != nil {
			return
		}
		st.Attempted++

		old, err := lib.Get(rp.Old)
		if err != nil {
			a.fail(ctx, res, err, rp.Old, "")
			continue
		}
		renamed := old.Clone()
		renamed.Rename(rp.New)
		if err := lib.InsertAfter(rp.Old, renamed); err != nil {
			a.fail(ctx, res, err, rp.New, "")
			continue
		}
		if err := lib.Remove(rp.Old); err != nil {
			a.fail(ctx, res, err, rp.Old, "")
			continue
		}

		st.Applied++
		logging.Ctx(ctx).Info().Str("component", rp.Old).Str("new_name", rp.New).Msg("Replaced component")
		a.events.ComponentRenamed(rp.Old, rp.New)
	}
}

// remove deletes components missing from the CSV.
func (a *Applier) remove(ctx context.Context, lib *schlib.Library, report *differ.Report, st *StageResult, res *Result) {
	for _, name := range report.Delete {
		if ctx.Err() != nil {
			return
		}
		st.Attempted++

		if err := lib.Remove(name); err != nil {
			a.fail(ctx, res, err, name, "")
			continue
		}
		st.Applied++
		logging.Ctx(ctx).Info().Str("component", name).Msg("Deleted component")
		a.events.ComponentRemoved(name)
	}
}

// insert creates components that only exist in the CSV from the template.
func (a *Applier) insert(ctx context.Context, lib *schlib.Library, report *differ.Report, st *StageResult, res *Result) {
	if len(report.Add) == 0 {
		return
	}
	if a.template == nil {
		st.Skipped = true
		a.fail(ctx, res, errors.NewMissingTemplateError(report.Add), "", "")
		return
	}

	for _, name := range report.Add {
		if ctx.Err() != nil {
			return
		}
		st.Attempted++

		rec, ok := a.byName[name]
		if !ok {
			a.fail(ctx, res, errors.NewLookupError("csv record", name), name, "")
			continue
		}
		if err := lib.Add(fromTemplate(a.template, name, rec)); err != nil {
			a.fail(ctx, res, err, name, "")
			continue
		}
		st.Applied++
		logging.Ctx(ctx).Info().Str("component", name).Msg("Added component")
		a.events.ComponentAdded(name)
	}
}

// update applies field-level changes to matched components.
func (a *Applier) update(ctx context.Context, lib *schlib.Library, report *differ.Report, st *StageResult, res *Result) {
	for _, cs := range report.Updates {
		if ctx.Err() != nil {
			return
		}
		cctx := logging.WithComponent(ctx, cs.Name)

		comp, err := lib.Get(cs.Name)
		if err != nil {
			st.Attempted += cs.Len()
			a.fail(cctx, res, err, "", "")
			continue
		}

		changed := 0
		apply := func(fc differ.FieldChange, fn func(*schlib.Component, differ.FieldChange) error) {
			st.Attempted++
			if err := fn(comp, fc); err != nil {
				a.fail(cctx, res, err, "", fc.Field)
				return
			}
			changed++
		}
		for _, fc := range cs.FieldUpdate {
			apply(fc, a.updateField)
		}
		for _, fc := range deleteOrder(comp, cs.FieldDelete) {
			apply(fc, a.deleteField)
		}
		for _, fc := range cs.FieldAdd {
			apply(fc, a.addField)
		}

		if changed > 0 {
			st.Applied += changed
			logging.Ctx(cctx).Info().Int("fields", changed).Msg("Updated component")
			a.events.ComponentUpdated(cs.Name, changed)
		}
	}
}
