package models

import (
	"fmt"
	"slices"
)

type Asset struct {
	Contracts  ContractList  `json:"contracts"`
	ID         ID            `json:"id"`
	Images     ImageInfo     `json:"images"`
	Name       string        `json:"name"`
	References ReferenceList `json:"references"`
	Tags       TagList       `json:"tags"`
}

func (a Asset) GetID() ID              { return a.ID }
func (a Asset) GetName() string        { return a.Name }
func (a Asset) GetImages() ImageInfo   { return a.Images }
func (a Asset) GetTags() TagList       { return a.Tags }
func (a Asset) Category() InfoCategory { return CategoryAsset }

// Validate checks the asset on its own: field rules, list ordering and that
// its name is one of its contracts' names.
func (a Asset) Validate() error {
	errs := validateInfo(a.ID, a.Name, a.Tags)
	if err := a.Contracts.Validate(); err != nil {
		errs = append(errs, inField("contracts", err))
	}
	if err := a.References.Validate(); err != nil {
		errs = append(errs, inField("references", err))
	}
	if len(a.Contracts) > 0 && !slices.Contains(a.Contracts.Names(), a.Name) {
		errs = append(errs, &SchemaError{
			Field: "name",
			Rule:  "asset-name-in-contracts",
			Value: a.Name,
			Msg:   fmt.Sprintf("must be one of the contract names %v", a.Contracts.Names()),
		})
	}
	return joinErrs(errs)
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var v Asset
	err := decodeObject(data,
		required("contracts", &v.Contracts),
		required("id", &v.ID),
		required("images", &v.Images),
		required("name", &v.Name),
		required("references", &v.References),
		required("tags", &v.Tags),
	)
	if err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	*a = v
	return nil
}
