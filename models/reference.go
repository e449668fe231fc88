package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func checkURL(rule, url string) error {
	if err := validate.Var(url, "required,http_url"); err != nil {
		return schemaErr(rule, url, "must be an http(s) url")
	}
	return nil
}

// Reference points at an external resource by a registered id.
type Reference struct {
	ID  ID     `json:"id"`
	URL string `json:"url,omitempty"`
}

func (r Reference) Validate() error {
	var errs []error
	if err := r.ID.Validate(); err != nil {
		errs = append(errs, inField("id", err))
	}
	if r.URL != "" {
		if err := checkURL("url", r.URL); err != nil {
			errs = append(errs, inField("url", err))
		}
	}
	return joinErrs(errs)
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	var v Reference
	err := decodeObject(data,
		required("id", &v.ID),
		optional("url", &v.URL),
	)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*r = v
	return nil
}

// ReferenceList is strictly ascending by id.
type ReferenceList []Reference

func (l ReferenceList) Validate() error {
	var errs []error
	for i, r := range l {
		if err := r.Validate(); err != nil {
			errs = append(errs, inField(indexField(i), err))
		}
	}
	if len(errs) > 0 {
		return joinErrs(errs)
	}
	return CheckAscending("reference-list-order", l,
		func(a, b Reference) (int, error) { return a.ID.Compare(b.ID), nil },
		func(r Reference) string { return r.ID.String() })
}

func (l ReferenceList) Get(id ID) (Reference, bool) {
	for _, r := range l {
		if r.ID == id {
			return r, true
		}
	}
	return Reference{}, false
}

func (l ReferenceList) MarshalJSON() ([]byte, error) { return marshalList(l) }

func (l *ReferenceList) UnmarshalJSON(data []byte) error {
	var out ReferenceList
	err := decodeArray(data, func(_ int, raw json.RawMessage) error {
		var r Reference
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		out = append(out, r)
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
