package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*(-[0-9]+)?$`)

// ID names a record. It doubles as the record's directory name and as the
// foreign key other records use to point at it.
type ID string

func ParseID(s string) (ID, error) {
	if !idPattern.MatchString(s) {
		return "", schemaErr("id-pattern", s, "must match %s", idPattern)
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

func (id ID) Validate() error {
	_, err := ParseID(string(id))
	return err
}

func (id ID) Compare(other ID) int { return strings.Compare(string(id), string(other)) }

func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data, "id-type")
	if err != nil {
		return err
	}
	v, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// IDList is strictly ascending.
type IDList []ID

func (l IDList) Validate() error {
	var errs []error
	for i, id := range l {
		if err := id.Validate(); err != nil {
			errs = append(errs, inField(indexField(i), err))
		}
	}
	if len(errs) > 0 {
		return joinErrs(errs)
	}
	return CheckAscending("id-list-order", l, func(a, b ID) (int, error) { return a.Compare(b), nil }, ID.String)
}

func (l IDList) Contains(id ID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l IDList) MarshalJSON() ([]byte, error) { return marshalList(l) }

func (l *IDList) UnmarshalJSON(data []byte) error {
	var out IDList
	err := decodeArray(data, func(_ int, raw json.RawMessage) error {
		var id ID
		if err := json.Unmarshal(raw, &id); err != nil {
			return err
		}
		out = append(out, id)
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
