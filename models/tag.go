package models

import (
	"encoding/json"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type Tag string

func ParseTag(s string) (Tag, error) {
	if !tagPattern.MatchString(s) {
		return "", schemaErr("tag-pattern", s, "must match %s", tagPattern)
	}
	return Tag(s), nil
}

func (t Tag) String() string { return string(t) }

func (t Tag) Validate() error {
	_, err := ParseTag(string(t))
	return err
}

func (t Tag) Compare(other Tag) int { return strings.Compare(string(t), string(other)) }

func (t *Tag) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data, "tag-type")
	if err != nil {
		return err
	}
	v, err := ParseTag(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TagList is strictly ascending.
type TagList []Tag

func (l TagList) Validate() error {
	var errs []error
	for i, t := range l {
		if err := t.Validate(); err != nil {
			errs = append(errs, inField(indexField(i), err))
		}
	}
	if len(errs) > 0 {
		return joinErrs(errs)
	}
	return CheckAscending("tag-list-order", l, func(a, b Tag) (int, error) { return a.Compare(b), nil }, Tag.String)
}

func (l TagList) Contains(tag string) bool {
	for _, t := range l {
		if string(t) == tag {
			return true
		}
	}
	return false
}

func (l TagList) MarshalJSON() ([]byte, error) { return marshalList(l) }

func (l *TagList) UnmarshalJSON(data []byte) error {
	var out TagList
	err := decodeArray(data, func(_ int, raw json.RawMessage) error {
		var t Tag
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		out = append(out, t)
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
