package models

import (
	"encoding/json"
	"fmt"
)

// Contract is one deployment of an asset on a network.
type Contract struct {
	Address  Address `json:"address"`
	Decimals int     `json:"decimals"`
	Name     string  `json:"name"`
	Network  ID      `json:"network"`
	Symbol   string  `json:"symbol"`
	Tags     TagList `json:"tags"`
}

func (c Contract) Key() string { return fmt.Sprintf("%s/%s", c.Network, c.Address) }

func (c Contract) Validate() error {
	var errs []error
	if c.Address.IsZero() {
		errs = append(errs, &SchemaError{Field: "address", Rule: "missing", Msg: "field required"})
	}
	if c.Decimals < 0 {
		errs = append(errs, &SchemaError{Field: "decimals", Rule: "decimals-negative", Value: fmt.Sprint(c.Decimals), Msg: "must be greater than or equal to 0"})
	}
	if err := c.Network.Validate(); err != nil {
		errs = append(errs, inField("network", err))
	}
	if err := c.Tags.Validate(); err != nil {
		errs = append(errs, inField("tags", err))
	}
	return joinErrs(errs)
}

// CompareContracts orders by network, then address.
func CompareContracts(a, b Contract) (int, error) {
	if c := a.Network.Compare(b.Network); c != 0 {
		return c, nil
	}
	return a.Address.Compare(b.Address)
}

func (c *Contract) UnmarshalJSON(data []byte) error {
	var v Contract
	err := decodeObject(data,
		required("address", &v.Address),
		required("decimals", &v.Decimals),
		required("name", &v.Name),
		required("network", &v.Network),
		required("symbol", &v.Symbol),
		required("tags", &v.Tags),
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

// ContractList is strictly ascending by (network, address), so a network
// and address pair appears at most once.
type ContractList []Contract

func (l ContractList) Validate() error {
	var errs []error
	for i, c := range l {
		if err := c.Validate(); err != nil {
			errs = append(errs, inField(indexField(i), err))
		}
	}
	if len(errs) > 0 {
		return joinErrs(errs)
	}
	return CheckAscending("contract-list-order", l, CompareContracts, Contract.Key)
}

// OnNetwork returns the contracts deployed on network, in list order.
func (l ContractList) OnNetwork(network ID) []Contract {
	var out []Contract
	for _, c := range l {
		if c.Network == network {
			out = append(out, c)
		}
	}
	return out
}

func (l ContractList) Names() []string {
	out := make([]string, 0, len(l))
	for _, c := range l {
		out = append(out, c.Name)
	}
	return out
}

func (l ContractList) MarshalJSON() ([]byte, error) { return marshalList(l) }

func (l *ContractList) UnmarshalJSON(data []byte) error {
	var out ContractList
	err := decodeArray(data, func(_ int, raw json.RawMessage) error {
		var c Contract
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		out = append(out, c)
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
