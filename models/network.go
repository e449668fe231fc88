package models

import "strings"

// UnknownAssetPrefix marks placeholder assets for unrecognised tokens. The
// remainder of such an id must also be one of the network's tags.
const UnknownAssetPrefix = "unknown-"

type Network struct {
	Currency       Currency      `json:"currency"`
	Engine         Engine        `json:"engine"`
	Explorers      ReferenceList `json:"explorers"`
	ID             ID            `json:"id"`
	Images         ImageInfo     `json:"images"`
	Name           string        `json:"name"`
	Network        NetworkType   `json:"network"`
	Tags           TagList       `json:"tags"`
	UnknownAssetID ID            `json:"unknownAssetId"`
}

func (n Network) GetID() ID              { return n.ID }
func (n Network) GetName() string        { return n.Name }
func (n Network) GetImages() ImageInfo   { return n.Images }
func (n Network) GetTags() TagList       { return n.Tags }
func (n Network) Category() InfoCategory { return CategoryNetwork }

func (n Network) Validate() error {
	errs := validateInfo(n.ID, n.Name, n.Tags)
	if err := n.Currency.Validate(); err != nil {
		errs = append(errs, inField("currency", err))
	}
	if _, err := ParseEngine(string(n.Engine)); err != nil {
		errs = append(errs, inField("engine", err))
	}
	if _, err := ParseNetworkType(string(n.Network)); err != nil {
		errs = append(errs, inField("network", err))
	}
	if err := n.Explorers.Validate(); err != nil {
		errs = append(errs, inField("explorers", err))
	}
	if err := n.UnknownAssetID.Validate(); err != nil {
		errs = append(errs, inField("unknownAssetId", err))
	} else if suffix, ok := strings.CutPrefix(string(n.UnknownAssetID), UnknownAssetPrefix); ok && !n.Tags.Contains(suffix) {
		errs = append(errs, &SchemaError{
			Field: "unknownAssetId",
			Rule:  "unknown-asset-tag",
			Value: string(n.UnknownAssetID),
			Msg:   "the part after \"" + UnknownAssetPrefix + "\" must be one of the network tags",
		})
	}
	return joinErrs(errs)
}

func (n *Network) UnmarshalJSON(data []byte) error {
	var v Network
	err := decodeObject(data,
		required("currency", &v.Currency),
		required("engine", &v.Engine),
		required("explorers", &v.Explorers),
		required("id", &v.ID),
		required("images", &v.Images),
		required("name", &v.Name),
		required("network", &v.Network),
		required("tags", &v.Tags),
		required("unknownAssetId", &v.UnknownAssetID),
	)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*n = v
	return nil
}
