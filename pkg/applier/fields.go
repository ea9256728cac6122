package applier

import (
	"slices"
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/differ"
	"github.com/agentstation/partsync/pkg/errors"
	"github.com/agentstation/partsync/pkg/fields"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/schlib"
)

// docKey maps "description_doc" to schlib.Description.
func docKey(key string) (schlib.DocKey, bool) {
	base, ok := strings.CutSuffix(key, constants.DocSuffix)
	if !ok {
		return "", false
	}
	dk := schlib.DocKey(base)
	return dk, slices.Contains(schlib.DocKeys, dk)
}

// positional maps the fixed keys to their field index.
func positional(key string) (int, bool) {
	switch key {
	case constants.KeyReference:
		return constants.ReferenceIndex, true
	case constants.KeyValue:
		return constants.ValueIndex, true
	case constants.KeyFootprint:
		return constants.FootprintIndex, true
	}
	return 0, false
}

// namedIndex finds the field a key refers to, using the live labels.
func namedIndex(c *schlib.Component, key string) int {
	keys := records.FieldKeys(c)
	for i := constants.FirstNamedField; i < len(keys); i++ {
		if keys[i] == key {
			return i
		}
	}
	return -1
}

// deleteOrder sorts deletes by descending field index so removing a field
// never renumbers a duplicate-label sibling that is still to be deleted.
// Documentation and positional keys keep their relative order at the end.
func deleteOrder(c *schlib.Component, deletes []differ.FieldChange) []differ.FieldChange {
	keys := records.FieldKeys(c)
	index := func(key string) int {
		if _, ok := docKey(key); ok {
			return -1
		}
		if _, ok := positional(key); ok {
			return -1
		}
		return slices.Index(keys, key)
	}
	ordered := slices.Clone(deletes)
	slices.SortStableFunc(ordered, func(x, y differ.FieldChange) int {
		return index(y.Field) - index(x.Field)
	})
	return ordered
}

// hasLaterSibling reports whether a field after idx carries the same label.
func hasLaterSibling(c *schlib.Component, idx int) bool {
	key := fields.Canonicalize(c.Fields[idx].Label)
	if key == "" {
		return false
	}
	for i := idx + 1; i < len(c.Fields); i++ {
		if fields.Canonicalize(c.Fields[i].Label) == key {
			return true
		}
	}
	return false
}

func (a *Applier) updateField(c *schlib.Component, fc differ.FieldChange) error {
	if dk, ok := docKey(fc.Field); ok {
		if _, existed := c.Doc(dk); !existed || fc.Value == "" {
			return errors.NewFieldLookupError(fc.Field, c.Name)
		}
		c.SetDoc(dk, fc.Value)
		return nil
	}

	if idx, ok := positional(fc.Field); ok {
		f := c.Field(idx)
		if f == nil {
			return errors.NewFieldLookupError(fc.Field, c.Name)
		}
		if idx == constants.ReferenceIndex {
			f.Reference = fc.Value
		} else {
			f.Value = fc.Value
		}
		return nil
	}

	idx := namedIndex(c, fc.Field)
	if idx < 0 {
		return errors.NewFieldLookupError(fc.Field, c.Name)
	}
	c.Fields[idx].Value = fc.Value
	return nil
}

func (a *Applier) deleteField(c *schlib.Component, fc differ.FieldChange) error {
	if dk, ok := docKey(fc.Field); ok {
		if _, existed := c.Doc(dk); !existed {
			return errors.NewFieldLookupError(fc.Field, c.Name)
		}
		c.SetDoc(dk, "")
		return nil
	}

	if idx, ok := positional(fc.Field); ok {
		if idx == constants.ReferenceIndex {
			return errors.NewValidationError(fc.Field, fc.Value, "reference designator cannot be removed")
		}
		f := c.Field(idx)
		if f == nil {
			return errors.NewFieldLookupError(fc.Field, c.Name)
		}
		f.Value = ""
		return nil
	}

	idx := namedIndex(c, fc.Field)
	if idx < 0 && fields.IsPlaceholder(fc.Field) {
		for i := constants.FirstNamedField; i < len(c.Fields); i++ {
			if fields.Canonicalize(c.Fields[i].Label) == "" {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return errors.NewFieldLookupError(fc.Field, c.Name)
	}
	// Removing the field would shift the keys of its later siblings.
	if hasLaterSibling(c, idx) {
		c.Fields[idx].Value = ""
		return nil
	}
	c.RemoveField(idx)
	return nil
}

func (a *Applier) addField(c *schlib.Component, fc differ.FieldChange) error {
	if dk, ok := docKey(fc.Field); ok {
		c.SetDoc(dk, fc.Value)
		return nil
	}
	if _, ok := positional(fc.Field); ok {
		return a.updateField(c, fc)
	}
	if len(c.Fields) == 0 {
		return errors.NewFieldLookupError(constants.KeyReference, c.Name)
	}

	f := c.Fields[len(c.Fields)-1].Clone()
	f.Reference = ""
	f.Label = a.projector.Lookup().Label(fc.Field)
	f.Value = fc.Value
	f.PosY = lowestY(c, f.PosY) + constants.FieldStackOffset
	f.Visible = false
	c.Fields = append(c.Fields, f)
	return nil
}

// lowestY returns the minimum Y position among populated fields.
func lowestY(c *schlib.Component, fallback int) int {
	lowest, found := 0, false
	for i, f := range c.Fields {
		text := f.Value
		if i == constants.ReferenceIndex {
			text = f.Reference
		}
		if text == "" {
			continue
		}
		if !found || f.PosY < lowest {
			lowest, found = f.PosY, true
		}
	}
	if !found {
		return fallback
	}
	return lowest
}
