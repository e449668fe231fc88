package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/preprocess"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/validation"
)

func violationDetails(v *validation.Violation) [][2]string {
	rows := [][2]string{{"Error", v.Message}}
	if v.Expected != "" {
		rows = append(rows, [2]string{"Expected", v.Expected})
	}
	if v.Actual != "" {
		rows = append(rows, [2]string{"Got", v.Actual})
	}
	if len(v.Related) > 0 {
		rows = append(rows, [2]string{"Related", strings.Join(v.Related, ", ")})
	}
	if v.Hint != "" {
		rows = append(rows, [2]string{"Hint", v.Hint})
	}
	return rows
}

// printReport renders the violations grouped by kind, then a summary.
func printReport(u ui.UI, r *validation.Report) {
	byKind := r.ByKind()
	for _, k := range validation.Kinds() {
		vs := byKind[k]
		if len(vs) == 0 {
			continue
		}
		u.Section(fmt.Sprintf("%s (%d)", k, len(vs)))
		for _, v := range vs {
			line := fmt.Sprintf("[%s] %s", v.Rule, v.Location())
			if k.IsFailure() {
				u.Error("%s", line)
			} else {
				u.Warn("%s", line)
			}
			u.Indent().KeyValue(violationDetails(v))
		}
	}

	u.Section("summary")
	rows := [][]string{}
	total := 0
	for _, cat := range models.InfoCategories() {
		rows = append(rows, []string{cat.String(), strconv.Itoa(r.Checked[cat])})
		total += r.Checked[cat]
	}
	kinds := [][]string{}
	for _, k := range validation.Kinds() {
		if n := r.Count(k); n > 0 {
			kinds = append(kinds, []string{k.String(), strconv.Itoa(n)})
		}
	}
	groups := [][][]string{rows}
	if len(kinds) > 0 {
		groups = append(groups, kinds)
	}
	u.TableWithGroups([]string{"checked", "count"}, groups)

	if failures := len(r.Failures()); failures > 0 {
		u.Error("Validation failed: %d violation(s) in %d record(s)", failures, total)
		return
	}
	if skips := len(r.Skips()); skips > 0 {
		u.Warn("%d check(s) skipped", skips)
	}
	u.Success("All %d records are valid", total)
}

func printEnumOutcomes(u ui.UI, outcomes []enums.Outcome) {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		status := u.Style(ui.StyledText{Text: "unchanged", Severity: ui.SeverityInfo})
		switch {
		case o.Err != nil:
			status = u.Style(ui.StyledText{Text: "failed", Severity: ui.SeverityError})
		case o.Changed:
			status = u.Style(ui.StyledText{Text: "rewritten", Severity: ui.SeverityWarn})
		}
		rows = append(rows, []string{o.Type.Family() + "/" + o.Type.Name(), strconv.Itoa(o.Entries), status})
	}
	u.Table([]string{"enum", "entries", "status"}, rows)
	for _, o := range outcomes {
		if o.Err != nil {
			u.Error("%s: %s", o.Type.Name(), o.Err)
		}
	}
}

func printPreprocess(u ui.UI, s *preprocess.Summary) {
	rows := [][]string{}
	for _, r := range s.Records {
		if len(r.Created) == 0 && !r.InfoChanged {
			continue
		}
		rows = append(rows, []string{r.Category.String() + "/" + string(r.ID), imageTypeNames(r.Created), yesNo(r.InfoChanged)})
	}
	if len(rows) > 0 {
		u.Section("records")
		u.Table([]string{"record", "created", "info.json rewritten"}, rows)
	}

	failures := s.DerivationFailures()
	if len(failures) > 0 || len(s.Unreadable) > 0 {
		u.Section("failures")
	}
	for _, r := range failures {
		u.Error("[%s] %s", validation.DerivationFailure, r.Path)
		u.Indent().KeyValue([][2]string{{"Error", r.Err.Error()}})
	}
	for _, f := range s.Unreadable {
		u.Error("[%s] %s", validation.SchemaViolation, f.Path)
		u.Indent().KeyValue([][2]string{{"Error", f.Err.Error()}, {"Hint", "run `asset-info validate` for details"}})
	}

	u.Section("enums")
	printEnumOutcomes(u, s.Enums)

	if s.Failed() {
		u.Error("Preprocess finished with %d failure(s)", len(failures)+len(s.Unreadable))
		return
	}
	u.Success("Preprocessed %d records: %d image(s) created, %d info.json rewritten",
		len(s.Records), s.CreatedCount(), s.ChangedInfoCount())
}
