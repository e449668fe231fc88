package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncomparableAddress = errors.New("addresses of different chains cannot be compared")
	ErrUnknownAddressKind  = errors.New("unknown address kind")
)

// SchemaError is a record-local violation: a value that does not satisfy
// the pattern, type, presence or ordering rule of the field it was read
// into. Field is a dotted path relative to the record root.
type SchemaError struct {
	Field string
	Rule  string
	Value string
	Msg   string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %q)", e.Value)
	}
	fmt.Fprintf(&b, " [%s]", e.Rule)
	return b.String()
}

func schemaErr(rule, value, format string, args ...any) *SchemaError {
	return &SchemaError{Rule: rule, Value: value, Msg: fmt.Sprintf(format, args...)}
}

// inField prefixes every SchemaError inside err with name. Joined errors are
// rewritten element by element so each keeps its own path.
func inField(name string, err error) error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		out := make([]error, 0, len(errs))
		for _, e := range errs {
			out = append(out, inField(name, e))
		}
		return errors.Join(out...)
	}
	var se *SchemaError
	if errors.As(err, &se) {
		cp := *se
		cp.Field = joinField(name, se.Field)
		return &cp
	}
	return &SchemaError{Field: name, Rule: "type", Msg: err.Error()}
}

func joinField(parent, child string) string {
	switch {
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}

// SchemaErrors flattens err into its SchemaError leaves. Errors that carry no
// SchemaError are returned as a single generic entry.
func SchemaErrors(err error) []*SchemaError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*SchemaError
		for _, e := range joined.Unwrap() {
			out = append(out, SchemaErrors(e)...)
		}
		return out
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return []*SchemaError{se}
	}
	return []*SchemaError{{Rule: "decode", Msg: err.Error()}}
}
