package models

import (
	"errors"
	"fmt"
)

// CheckAscending fails on the first adjacent pair (a, b) with a >= b, which
// covers both "sorted" and "unique" at once. Empty and single element lists
// always pass. A comparison error (e.g. addresses of different chains) is
// reported against the pair that produced it.
func CheckAscending[T any](rule string, items []T, cmp func(a, b T) (int, error), show func(T) string) error {
	for i := 0; i+1 < len(items); i++ {
		a, b := items[i], items[i+1]
		c, err := cmp(a, b)
		if err != nil {
			return &SchemaError{
				Field: indexField(i + 1),
				Rule:  rule,
				Value: show(b),
				Msg:   fmt.Sprintf("cannot order %s and %s: %v", show(a), show(b), err),
			}
		}
		if c >= 0 {
			msg := fmt.Sprintf("must be sorted in ascending order, but %s comes after %s", show(b), show(a))
			if c == 0 {
				msg = fmt.Sprintf("must be unique, but %s is duplicated", show(b))
			}
			return &SchemaError{Field: indexField(i + 1), Rule: rule, Value: show(b), Msg: msg}
		}
	}
	return nil
}

func indexField(i int) string { return fmt.Sprintf("[%d]", i) }

func joinErrs(errs []error) error { return errors.Join(errs...) }
