package models

import "fmt"

// Currency describes the native coin of a network. It must mirror exactly
// one contract of the asset it names.
type Currency struct {
	Address  Address `json:"address"`
	Decimals int     `json:"decimals"`
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
}

func (c Currency) Validate() error {
	var errs []error
	if c.Address.IsZero() {
		errs = append(errs, &SchemaError{Field: "address", Rule: "missing", Msg: "field required"})
	}
	if c.Decimals < 0 {
		errs = append(errs, &SchemaError{Field: "decimals", Rule: "decimals-negative", Value: fmt.Sprint(c.Decimals), Msg: "must be greater than or equal to 0"})
	}
	if err := c.ID.Validate(); err != nil {
		errs = append(errs, inField("id", err))
	}
	return joinErrs(errs)
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	var v Currency
	err := decodeObject(data,
		required("address", &v.Address),
		required("decimals", &v.Decimals),
		required("id", &v.ID),
		required("name", &v.Name),
		required("symbol", &v.Symbol),
	)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*c = v
	return nil
}
