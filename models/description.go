package models

import "strings"

// Description is a human readable label paired with an ID in an enum list.
// It is non-empty and never ends with a period.
type Description string

func ParseDescription(s string) (Description, error) {
	if s == "" {
		return "", schemaErr("description-empty", s, "must not be empty")
	}
	if strings.HasSuffix(s, ".") {
		return "", schemaErr("description-period", s, "must not end with '.'")
	}
	return Description(s), nil
}

func (d Description) String() string { return string(d) }

func (d Description) Validate() error {
	_, err := ParseDescription(string(d))
	return err
}

func (d *Description) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data, "description-type")
	if err != nil {
		return err
	}
	v, err := ParseDescription(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
