package models

import (
	"fmt"
	"strings"
)

// closed enumerations are string types whose ascending order is the index
// in their table.

func enumOrder[T comparable](table []T, v T) int {
	for i, t := range table {
		if t == v {
			return i
		}
	}
	return -1
}

func parseEnum[T ~string](rule string, table []T, s string) (T, error) {
	for _, t := range table {
		if string(t) == s {
			return t, nil
		}
	}
	names := make([]string, len(table))
	for i, t := range table {
		names[i] = string(t)
	}
	return "", schemaErr(rule, s, "must be one of %s", strings.Join(names, ", "))
}

func unmarshalEnum[T ~string](data []byte, rule string, table []T, dst *T) error {
	s, err := decodeString(data, rule)
	if err != nil {
		return err
	}
	v, err := parseEnum(rule, table, s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

type Engine string

const (
	EngineEvm     Engine = "evm"
	EngineUnknown Engine = "unknown"
)

var engines = []Engine{EngineEvm, EngineUnknown}

func ParseEngine(s string) (Engine, error) { return parseEnum("engine", engines, s) }
func (e Engine) Order() int                { return enumOrder(engines, e) }
func (e Engine) IsEvm() bool               { return e == EngineEvm }
func (e Engine) String() string            { return string(e) }

func (e *Engine) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "engine", engines, e)
}

type NetworkType string

const (
	Mainnet            NetworkType = "mainnet"
	Testnet            NetworkType = "testnet"
	NetworkTypeUnknown NetworkType = "unknown"
)

var networkTypes = []NetworkType{Mainnet, Testnet, NetworkTypeUnknown}

func ParseNetworkType(s string) (NetworkType, error) {
	return parseEnum("network-type", networkTypes, s)
}
func (n NetworkType) Order() int      { return enumOrder(networkTypes, n) }
func (n NetworkType) IsUnknown() bool { return n == NetworkTypeUnknown }
func (n NetworkType) String() string  { return string(n) }

func (n *NetworkType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "network-type", networkTypes, n)
}

// InfoCategory is one of the three record families, named after its
// top-level directory.
type InfoCategory string

const (
	CategoryAsset    InfoCategory = "assets"
	CategoryNetwork  InfoCategory = "networks"
	CategoryProtocol InfoCategory = "protocols"
)

var infoCategories = []InfoCategory{CategoryAsset, CategoryNetwork, CategoryProtocol}

func InfoCategories() []InfoCategory { return append([]InfoCategory(nil), infoCategories...) }

func ParseInfoCategory(s string) (InfoCategory, error) {
	for _, c := range infoCategories {
		if string(c) == s || string(c.IDEnum()) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c InfoCategory) Order() int     { return enumOrder(infoCategories, c) }
func (c InfoCategory) String() string { return string(c) }
func (c InfoCategory) Dir() string    { return string(c) }

// IDEnum is the derived id enum that lists every record of c.
func (c InfoCategory) IDEnum() EnumTypeID {
	switch c {
	case CategoryAsset:
		return EnumIDAsset
	case CategoryNetwork:
		return EnumIDNetwork
	default:
		return EnumIDProtocol
	}
}

// TagEnum is the tag vocabulary for records of c.
func (c InfoCategory) TagEnum() EnumTypeTag {
	switch c {
	case CategoryAsset:
		return EnumTagAsset
	case CategoryNetwork:
		return EnumTagNetwork
	default:
		return EnumTagProtocol
	}
}

// EnumType locates one persisted enum list under <root>/enums.
type EnumType interface {
	Family() string
	Name() string
}

type EnumTypeID string

const (
	EnumIDAsset           EnumTypeID = "asset"
	EnumIDAssetReference  EnumTypeID = "asset.reference"
	EnumIDNetwork         EnumTypeID = "network"
	EnumIDNetworkExplorer EnumTypeID = "network.explorer"
	EnumIDProtocol        EnumTypeID = "protocol"
)

var enumTypeIDs = []EnumTypeID{EnumIDAsset, EnumIDAssetReference, EnumIDNetwork, EnumIDNetworkExplorer, EnumIDProtocol}

func EnumTypeIDs() []EnumTypeID { return append([]EnumTypeID(nil), enumTypeIDs...) }

func ParseEnumTypeID(s string) (EnumTypeID, error) { return parseEnum("enum-type", enumTypeIDs, s) }

func (t EnumTypeID) Family() string { return "ids" }
func (t EnumTypeID) Name() string   { return string(t) }
func (t EnumTypeID) Order() int     { return enumOrder(enumTypeIDs, t) }

// Category returns the record family an id enum is derived from. The
// reference and explorer lists are maintained by hand and have none.
func (t EnumTypeID) Category() (InfoCategory, bool) {
	switch t {
	case EnumIDAsset:
		return CategoryAsset, true
	case EnumIDNetwork:
		return CategoryNetwork, true
	case EnumIDProtocol:
		return CategoryProtocol, true
	default:
		return "", false
	}
}

type EnumTypeTag string

const (
	EnumTagAsset          EnumTypeTag = "asset"
	EnumTagAssetContracts EnumTypeTag = "asset.contracts"
	EnumTagNetwork        EnumTypeTag = "network"
	EnumTagProtocol       EnumTypeTag = "protocol"
)

var enumTypeTags = []EnumTypeTag{EnumTagAsset, EnumTagAssetContracts, EnumTagNetwork, EnumTagProtocol}

func EnumTypeTags() []EnumTypeTag { return append([]EnumTypeTag(nil), enumTypeTags...) }

func ParseEnumTypeTag(s string) (EnumTypeTag, error) {
	return parseEnum("enum-type", enumTypeTags, s)
}

func (t EnumTypeTag) Family() string { return "tags" }
func (t EnumTypeTag) Name() string   { return string(t) }
func (t EnumTypeTag) Order() int     { return enumOrder(enumTypeTags, t) }
