package validation

import (
	"errors"
	"path/filepath"

	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

// Corpus is everything the passes read: the record snapshot, the persisted
// enum lists and the id enums rebuilt from the snapshot. It is built once
// and never changes during a run.
type Corpus struct {
	Root     string
	Snapshot *store.Snapshot

	ids  map[models.EnumTypeID]models.EnumInfoList
	tags map[models.EnumTypeTag]models.EnumInfoList
	// derived holds the rebuilt id enums; a category whose rebuild failed
	// has no entry and derivedErr says why.
	derived    map[models.InfoCategory]models.EnumInfoList
	derivedErr map[models.InfoCategory]error

	assets   map[models.ID]store.Entry[models.Asset]
	networks map[models.ID]store.Entry[models.Network]
}

// NewCorpus reads the persisted enums and derives the id enums from snap.
// Unreadable enum files are returned as violations; checks that need them
// are then skipped.
func NewCorpus(snap *store.Snapshot) (*Corpus, []*Violation) {
	c := &Corpus{
		Root:       snap.Root,
		Snapshot:   snap,
		ids:        map[models.EnumTypeID]models.EnumInfoList{},
		tags:       map[models.EnumTypeTag]models.EnumInfoList{},
		derived:    map[models.InfoCategory]models.EnumInfoList{},
		derivedErr: map[models.InfoCategory]error{},
		assets:     map[models.ID]store.Entry[models.Asset]{},
		networks:   map[models.ID]store.Entry[models.Network]{},
	}

	var vs []*Violation
	readEnum := func(t models.EnumType) (models.EnumInfoList, bool) {
		list, err := enums.Read(snap.Root, t)
		if err != nil {
			vs = append(vs, &Violation{
				Kind:    SchemaViolation,
				Rule:    "enum-unreadable",
				Path:    c.rel(enums.Path(snap.Root, t)),
				Message: err.Error(),
			})
			return nil, false
		}
		return list, true
	}
	for _, t := range models.EnumTypeIDs() {
		if list, ok := readEnum(t); ok {
			c.ids[t] = list
		}
	}
	for _, t := range models.EnumTypeTags() {
		if list, ok := readEnum(t); ok {
			c.tags[t] = list
		}
	}

	for _, cat := range models.InfoCategories() {
		list, err := enums.Derived(snap, cat)
		if err != nil {
			c.derivedErr[cat] = err
			continue
		}
		c.derived[cat] = list
	}

	// First record wins; duplicates are reported by the identifier pass.
	for _, e := range snap.Assets.Entries {
		if _, found := c.assets[e.Record.ID]; !found {
			c.assets[e.Record.ID] = e
		}
	}
	for _, e := range snap.Networks.Entries {
		if _, found := c.networks[e.Record.ID]; !found {
			c.networks[e.Record.ID] = e
		}
	}
	return c, vs
}

// IDEnum returns the persisted id enum of t.
func (c *Corpus) IDEnum(t models.EnumTypeID) (models.EnumInfoList, bool) {
	list, ok := c.ids[t]
	return list, ok
}

// TagEnum returns the persisted tag vocabulary of t.
func (c *Corpus) TagEnum(t models.EnumTypeTag) (models.EnumInfoList, bool) {
	list, ok := c.tags[t]
	return list, ok
}

// Derived returns the id enum rebuilt from the snapshot for cat.
func (c *Corpus) Derived(cat models.InfoCategory) (models.EnumInfoList, error) {
	if err := c.derivedErr[cat]; err != nil {
		return nil, err
	}
	return c.derived[cat], nil
}

func (c *Corpus) Asset(id models.ID) (store.Entry[models.Asset], bool) {
	e, ok := c.assets[id]
	return e, ok
}

func (c *Corpus) Network(id models.ID) (store.Entry[models.Network], bool) {
	e, ok := c.networks[id]
	return e, ok
}

// rel shortens path to be relative to the repository root when possible.
func (c *Corpus) rel(path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(c.Root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// on starts a violation located at entry.
func (c *Corpus) on(e store.RecordEntry, kind Kind, rule string) *Violation {
	return &Violation{
		Kind:     kind,
		Rule:     rule,
		Category: e.Record.Category(),
		Record:   e.Record.GetID(),
		Path:     c.rel(e.Path),
	}
}

func recordRef(cat models.InfoCategory, id models.ID) string {
	return cat.Dir() + "/" + string(id)
}

func isDuplicate(err error) bool {
	return errors.Is(err, enums.ErrDuplicateID)
}
