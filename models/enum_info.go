package models

import (
	"encoding/json"
	"strings"
)

// EnumInfo is one entry of a persisted enum list.
type EnumInfo struct {
	Value       ID          `json:"value"`
	Description Description `json:"description"`
}

func (e EnumInfo) Validate() error {
	var errs []error
	if err := e.Value.Validate(); err != nil {
		errs = append(errs, inField("value", err))
	}
	if err := e.Description.Validate(); err != nil {
		errs = append(errs, inField("description", err))
	}
	return joinErrs(errs)
}

func (e *EnumInfo) UnmarshalJSON(data []byte) error {
	var v EnumInfo
	err := decodeObject(data,
		required("description", &v.Description),
		required("value", &v.Value),
	)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// EnumInfoList is strictly ascending by value.
type EnumInfoList []EnumInfo

func (l EnumInfoList) Validate() error {
	var errs []error
	for i, e := range l {
		if err := e.Validate(); err != nil {
			errs = append(errs, inField(indexField(i), err))
		}
	}
	if len(errs) > 0 {
		return joinErrs(errs)
	}
	return CheckAscending("enum-list-order", l,
		func(a, b EnumInfo) (int, error) { return a.Value.Compare(b.Value), nil },
		func(e EnumInfo) string { return e.Value.String() })
}

// Lookup returns the description registered for value.
func (l EnumInfoList) Lookup(value string) (Description, bool) {
	for _, e := range l {
		if string(e.Value) == value {
			return e.Description, true
		}
	}
	return "", false
}

func (l EnumInfoList) Contains(value string) bool {
	_, ok := l.Lookup(value)
	return ok
}

func (l EnumInfoList) Values() []string {
	out := make([]string, 0, len(l))
	for _, e := range l {
		out = append(out, string(e.Value))
	}
	return out
}

// Equal reports whether both lists hold the same entries in the same order.
func (l EnumInfoList) Equal(other EnumInfoList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

func (l EnumInfoList) MarshalJSON() ([]byte, error) { return marshalList(l) }

func (l *EnumInfoList) UnmarshalJSON(data []byte) error {
	var out EnumInfoList
	err := decodeArray(data, func(_ int, raw json.RawMessage) error {
		var e EnumInfo
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*l = out
	return nil
}

// String renders value: description pairs, one per line.
func (l EnumInfoList) String() string {
	var b strings.Builder
	for _, e := range l {
		b.WriteString(string(e.Value))
		b.WriteString(": ")
		b.WriteString(string(e.Description))
		b.WriteString("\n")
	}
	return b.String()
}
