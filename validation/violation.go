// Package validation checks a record snapshot as a whole: enum closures,
// cross-record references, currency and contract agreement, image artifacts
// and, optionally, on-chain token metadata.
package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bifrost-platform/asset-info-v2/models"
)

type Kind uint8

const (
	// SchemaViolation is a record that fails its own field rules.
	SchemaViolation Kind = iota + 1
	// ReferentialViolation is a value missing from the closure it must
	// belong to.
	ReferentialViolation
	// ConsistencyViolation is two or more sources that disagree.
	ConsistencyViolation
	// ImageViolation is an ImageInfo that disagrees with the files on disk.
	ImageViolation
	// DerivationFailure is a source image that could not be processed.
	DerivationFailure
	// ExternalUnavailable is a check that was skipped because a remote
	// collaborator is not configured or not reachable. It is not a failure.
	ExternalUnavailable
)

var kindNames = [...]string{
	SchemaViolation:      "schema",
	ReferentialViolation: "referential",
	ConsistencyViolation: "consistency",
	ImageViolation:       "image",
	DerivationFailure:    "derivation",
	ExternalUnavailable:  "external-unavailable",
}

// Kinds lists every kind in report order.
func Kinds() []Kind {
	return []Kind{SchemaViolation, ReferentialViolation, ConsistencyViolation, ImageViolation, DerivationFailure, ExternalUnavailable}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) IsFailure() bool { return k != ExternalUnavailable }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Violation is one broken invariant: which record, which field, which rule.
type Violation struct {
	Kind     Kind                `json:"kind"`
	Rule     string              `json:"rule"`
	Category models.InfoCategory `json:"category,omitempty"`
	Record   models.ID           `json:"record,omitempty"`
	// Path is the file the violation was found in, relative to the
	// repository root.
	Path     string `json:"path,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
	Hint     string `json:"hint,omitempty"`
	// Related names the other records involved, as <category>/<id>.
	Related []string `json:"related,omitempty"`
}

// Location renders path and field as "path: field".
func (v *Violation) Location() string {
	switch {
	case v.Path != "" && v.Field != "":
		return v.Path + ": " + v.Field
	case v.Path != "":
		return v.Path
	default:
		return v.Field
	}
}

func (v *Violation) Error() string {
	var sb strings.Builder
	if loc := v.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(v.Message)
	fmt.Fprintf(&sb, " [%s/%s]", v.Kind, v.Rule)
	return sb.String()
}

// Report is the outcome of one validation run.
type Report struct {
	Violations []*Violation `json:"violations"`
	// Checked counts the records loaded per category.
	Checked map[models.InfoCategory]int `json:"checked"`
}

func NewReport() *Report {
	return &Report{Violations: []*Violation{}, Checked: map[models.InfoCategory]int{}}
}

func (r *Report) Add(vs ...*Violation) {
	r.Violations = append(r.Violations, vs...)
}

// Failures returns every violation except skips.
func (r *Report) Failures() []*Violation {
	var out []*Violation
	for _, v := range r.Violations {
		if v.Kind.IsFailure() {
			out = append(out, v)
		}
	}
	return out
}

// Skips returns the checks that could not run.
func (r *Report) Skips() []*Violation {
	var out []*Violation
	for _, v := range r.Violations {
		if !v.Kind.IsFailure() {
			out = append(out, v)
		}
	}
	return out
}

func (r *Report) HasFailures() bool { return len(r.Failures()) > 0 }

func (r *Report) Count(k Kind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == k {
			n++
		}
	}
	return n
}

// ByKind groups the violations; every slice keeps report order.
func (r *Report) ByKind() map[Kind][]*Violation {
	out := map[Kind][]*Violation{}
	for _, v := range r.Violations {
		out[v.Kind] = append(out[v.Kind], v)
	}
	return out
}

// Find returns the violations with the given rule.
func (r *Report) Find(rule string) []*Violation {
	var out []*Violation
	for _, v := range r.Violations {
		if v.Rule == rule {
			out = append(out, v)
		}
	}
	return out
}

// Sort orders violations by kind, path, field and rule so that reports are
// stable across runs.
func (r *Report) Sort() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return a.Rule < b.Rule
	})
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
