package validation

import (
	"errors"
	"fmt"

	"github.com/bifrost-platform/asset-info-v2/db"
	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

const hintCount = 2

// checkIdentifiers requires a bijection between the records of each
// category and the persisted id enum, with every description equal to the
// record name. Duplicate ids are found by rebuilding the enum from the
// records that did load.
func (c *Corpus) checkIdentifiers() []*Violation {
	var vs []*Violation
	for _, cat := range models.InfoCategories() {
		t := cat.IDEnum()
		enumPath := c.rel(enums.Path(c.Root, t))

		if _, err := enums.RebuildEntries(c.Snapshot.Entries(cat)); isDuplicate(err) {
			var dup *enums.DuplicateError
			for _, e := range flatten(err) {
				if !errors.As(e, &dup) {
					continue
				}
				related := make([]string, 0, len(dup.Paths))
				for _, p := range dup.Paths {
					related = append(related, c.rel(p))
				}
				vs = append(vs, &Violation{
					Kind:     ConsistencyViolation,
					Rule:     "duplicate-id",
					Category: cat,
					Record:   dup.ID,
					Path:     enumPath,
					Message:  fmt.Sprintf("%d records share the id %q", len(dup.Paths), dup.ID),
					Related:  related,
				})
			}
		}

		persisted, ok := c.IDEnum(t)
		if !ok {
			continue
		}
		seen := map[models.ID]bool{}
		for _, e := range c.Snapshot.Entries(cat) {
			id := e.Record.GetID()
			seen[id] = true
			desc, found := persisted.Lookup(string(id))
			if !found {
				v := c.on(e, ReferentialViolation, "id-not-in-enum")
				v.Field = "id"
				v.Message = fmt.Sprintf("id %q is not listed in %s", id, enumPath)
				v.Hint = "run `asset-info enums rebuild`"
				vs = append(vs, v)
				continue
			}
			if string(desc) != e.Record.GetName() {
				v := c.on(e, ConsistencyViolation, "enum-description")
				v.Field = "name"
				v.Message = fmt.Sprintf("name differs from the description in %s", enumPath)
				v.Expected = string(desc)
				v.Actual = e.Record.GetName()
				vs = append(vs, v)
			}
		}
		// Orphans are only meaningful when every record could be read.
		if !c.Snapshot.Complete(cat) {
			continue
		}
		for _, entry := range persisted {
			if !seen[entry.Value] {
				vs = append(vs, &Violation{
					Kind:     ConsistencyViolation,
					Rule:     "enum-orphan",
					Category: cat,
					Record:   entry.Value,
					Path:     enumPath,
					Message:  fmt.Sprintf("%q has no record under %s/", entry.Value, cat.Dir()),
					Hint:     "run `asset-info enums rebuild`",
				})
			}
		}
	}
	return vs
}

// checkReferences resolves every foreign-key-like field.
func (c *Corpus) checkReferences() []*Violation {
	var vs []*Violation
	networkEnum, haveNetworks := c.IDEnum(models.EnumIDNetwork)
	referenceEnum, haveReferences := c.IDEnum(models.EnumIDAssetReference)
	explorerEnum, haveExplorers := c.IDEnum(models.EnumIDNetworkExplorer)
	assetIDs := c.derivedOrPersisted(models.CategoryAsset)

	missing := func(e store.RecordEntry, rule, field string, value models.ID, closure string, list models.EnumInfoList) *Violation {
		v := c.on(e, ReferentialViolation, rule)
		v.Field = field
		v.Actual = string(value)
		v.Message = fmt.Sprintf("%q is not a known %s", value, closure)
		v.Hint = db.Hint(string(value), list, hintCount)
		return v
	}

	for _, ae := range c.Snapshot.Assets.Entries {
		e := store.RecordEntry{Record: ae.Record, Path: ae.Path}
		if haveNetworks {
			for i, contract := range ae.Record.Contracts {
				if !networkEnum.Contains(string(contract.Network)) {
					vs = append(vs, missing(e, "contract-network", fmt.Sprintf("contracts[%d].network", i), contract.Network, "network id", networkEnum))
				}
			}
		}
		for i, ref := range ae.Record.References {
			field := fmt.Sprintf("references[%d]", i)
			if haveReferences && !referenceEnum.Contains(string(ref.ID)) {
				vs = append(vs, missing(e, "reference-id", field+".id", ref.ID, "asset reference id", referenceEnum))
			}
			if ref.URL == "" {
				v := c.on(e, ReferentialViolation, "reference-url-missing")
				v.Field = field + ".url"
				v.Message = fmt.Sprintf("reference %q has no url", ref.ID)
				vs = append(vs, v)
			}
		}
	}

	for _, ne := range c.Snapshot.Networks.Entries {
		e := store.RecordEntry{Record: ne.Record, Path: ne.Path}
		n := ne.Record
		if !c.assetKnown(n.UnknownAssetID) {
			vs = append(vs, missing(e, "unknown-asset", "unknownAssetId", n.UnknownAssetID, "asset", assetIDs))
		}
		if !c.assetKnown(n.Currency.ID) {
			vs = append(vs, missing(e, "currency-asset", "currency.id", n.Currency.ID, "asset", assetIDs))
		}
		if haveExplorers {
			for i, ref := range n.Explorers {
				if !explorerEnum.Contains(string(ref.ID)) {
					vs = append(vs, missing(e, "explorer-id", fmt.Sprintf("explorers[%d].id", i), ref.ID, "network explorer id", explorerEnum))
				}
			}
		}
	}

	if haveNetworks {
		for _, pe := range c.Snapshot.Protocols.Entries {
			e := store.RecordEntry{Record: pe.Record, Path: pe.Path}
			for i, id := range pe.Record.Networks {
				if !networkEnum.Contains(string(id)) {
					vs = append(vs, missing(e, "protocol-network", fmt.Sprintf("networks[%d]", i), id, "network id", networkEnum))
				}
			}
		}
	}
	return vs
}

// checkTags requires every tag to belong to its fixed vocabulary.
func (c *Corpus) checkTags() []*Violation {
	var vs []*Violation
	check := func(e store.RecordEntry, t models.EnumTypeTag, field string, tags models.TagList) {
		vocabulary, ok := c.TagEnum(t)
		if !ok {
			return
		}
		for i, tag := range tags {
			if vocabulary.Contains(string(tag)) {
				continue
			}
			v := c.on(e, ReferentialViolation, "tag-not-in-enum")
			v.Field = fmt.Sprintf("%s[%d]", field, i)
			v.Actual = string(tag)
			v.Message = fmt.Sprintf("tag %q is not in tags/%s", tag, t.Name())
			v.Hint = db.Hint(string(tag), vocabulary, hintCount)
			vs = append(vs, v)
		}
	}
	for _, cat := range models.InfoCategories() {
		for _, e := range c.Snapshot.Entries(cat) {
			check(e, cat.TagEnum(), "tags", e.Record.GetTags())
		}
	}
	for _, ae := range c.Snapshot.Assets.Entries {
		e := store.RecordEntry{Record: ae.Record, Path: ae.Path}
		for i, contract := range ae.Record.Contracts {
			check(e, models.EnumTagAssetContracts, fmt.Sprintf("contracts[%d].tags", i), contract.Tags)
		}
	}
	return vs
}

// assetKnown reports whether id names a loaded asset. While some asset
// records failed to load, an id listed in the persisted enum also counts:
// the load failure is reported on its own.
func (c *Corpus) assetKnown(id models.ID) bool {
	if _, found := c.Asset(id); found {
		return true
	}
	if c.Snapshot.Complete(models.CategoryAsset) {
		return false
	}
	list, _ := c.IDEnum(models.EnumIDAsset)
	return list.Contains(string(id))
}

// derivedOrPersisted is the best available id list of cat for hints.
func (c *Corpus) derivedOrPersisted(cat models.InfoCategory) models.EnumInfoList {
	if list, err := c.Derived(cat); err == nil {
		return list
	}
	list, _ := c.IDEnum(cat.IDEnum())
	return list
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
