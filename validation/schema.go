package validation

import (
	"path/filepath"

	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

// checkLoad turns the records that failed to load into violations: one per
// schema error of an unparsable info.json, and one per record directory
// without an info.json.
func (c *Corpus) checkLoad() []*Violation {
	var vs []*Violation
	for _, cat := range models.InfoCategories() {
		for _, f := range c.Snapshot.Failures(cat) {
			dir := filepath.Base(filepath.Dir(f.Path))
			for _, se := range models.SchemaErrors(f.Err) {
				vs = append(vs, &Violation{
					Kind:     SchemaViolation,
					Rule:     se.Rule,
					Category: cat,
					Record:   models.ID(dir),
					Path:     c.rel(f.Path),
					Field:    se.Field,
					Message:  se.Msg,
					Actual:   se.Value,
				})
			}
		}
		for _, dir := range c.Snapshot.Missing(cat) {
			vs = append(vs, &Violation{
				Kind:     SchemaViolation,
				Rule:     "info-json-missing",
				Category: cat,
				Record:   models.ID(filepath.Base(dir)),
				Path:     c.rel(dir),
				Message:  "record directory has no " + store.InfoFileName,
			})
		}
	}
	return vs
}
