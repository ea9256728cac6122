package applier

import (
	"strings"

	"github.com/agentstation/partsync/pkg/constants"
	"github.com/agentstation/partsync/pkg/records"
	"github.com/agentstation/partsync/pkg/schlib"
)

// templateTokens maps placeholder text in a template component to the
// record key that replaces it.
var templateTokens = map[string]string{
	"REFERENCE":   constants.KeyReference,
	"VALUE":       constants.KeyValue,
	"FOOTPRINT":   constants.KeyFootprint,
	"DESCRIPTION": records.DocKey(schlib.Description),
	"KEYWORDS":    records.DocKey(schlib.Keywords),
	"DATASHEET":   records.DocKey(schlib.Datasheet),
}

// substitute returns the record value for a placeholder token such as
// "VALUE" or "{value}". Other text is returned unchanged.
func substitute(text string, rec *records.Record) string {
	token := text
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		token = strings.ToUpper(text[1 : len(text)-1])
	}
	key, ok := templateTokens[token]
	if !ok {
		return text
	}
	return rec.Value(key)
}

// fromTemplate builds a new component called name from template, filling
// placeholder tokens from rec.
func fromTemplate(template *schlib.Component, name string, rec *records.Record) *schlib.Component {
	c := template.Clone()
	c.Rename(name)

	c.Definition.Reference = substitute(c.Definition.Reference, rec)
	for i, f := range c.Fields {
		if i == constants.ReferenceIndex {
			f.Reference = substitute(f.Reference, rec)
			continue
		}
		f.Value = substitute(f.Value, rec)
	}
	if c.Documentation != nil {
		for _, k := range schlib.DocKeys {
			if v, ok := c.Doc(k); ok {
				c.SetDoc(k, substitute(v, rec))
			}
		}
	}
	return c
}
