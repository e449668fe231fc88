// Package enums reads the persisted enum lists under enums/ and rebuilds the
// derived id lists from a record snapshot.
package enums

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

const Dir = "enums"

var (
	ErrDuplicateID = errors.New("duplicate id")
	// ErrIncomplete is returned when a category has unreadable records and
	// its enum therefore cannot be rebuilt.
	ErrIncomplete = errors.New("category has unreadable records")
)

// DuplicateError names an id carried by more than one record.
type DuplicateError struct {
	ID    models.ID
	Paths []string
}

func (e *DuplicateError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("%s %q", ErrDuplicateID, e.ID)
	}
	return fmt.Sprintf("%s %q in %v", ErrDuplicateID, e.ID, e.Paths)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicateID }

func Path(root string, t models.EnumType) string {
	return filepath.Join(root, Dir, t.Family(), t.Name()+".json")
}

// Read loads and validates the persisted list of t.
func Read(root string, t models.EnumType) (models.EnumInfoList, error) {
	path := Path(root, t)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading enum %s/%s: %w", t.Family(), t.Name(), err)
	}
	var list models.EnumInfoList
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return list, nil
}

// Rebuild projects records to (id, name), sorted by id. Two records sharing
// an id fail the rebuild.
func Rebuild[T models.Record](records []T) (models.EnumInfoList, error) {
	entries := make([]store.RecordEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, store.RecordEntry{Record: r})
	}
	return RebuildEntries(entries)
}

// RebuildEntries is Rebuild over loaded entries; duplicates name the
// info.json files involved.
func RebuildEntries(entries []store.RecordEntry) (models.EnumInfoList, error) {
	sorted := make([]store.RecordEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Record.GetID() < sorted[j].Record.GetID()
	})

	var errs []error
	list := make(models.EnumInfoList, 0, len(sorted))
	for i := 0; i < len(sorted); {
		id := sorted[i].Record.GetID()
		j := i + 1
		for j < len(sorted) && sorted[j].Record.GetID() == id {
			j++
		}
		if j-i > 1 {
			dup := &DuplicateError{ID: id}
			for _, e := range sorted[i:j] {
				if e.Path != "" {
					dup.Paths = append(dup.Paths, e.Path)
				}
			}
			errs = append(errs, dup)
		}
		list = append(list, models.EnumInfo{
			Value:       id,
			Description: models.Description(sorted[i].Record.GetName()),
		})
		i = j
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return list, nil
}

// Encode renders list as stored on disk: two space indent and a trailing
// newline, non-ASCII escaped as \uXXXX.
func Encode(list models.EnumInfoList) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return nil, err
	}
	return common.EscapeNonASCII(buf.Bytes()), nil
}

// Write stores list for t atomically and reports whether the file changed.
func Write(root string, t models.EnumType, list models.EnumInfoList) (bool, error) {
	content, err := Encode(list)
	if err != nil {
		return false, err
	}
	return common.WriteFileIfChanged(Path(root, t), content, 0o644)
}

// Derived rebuilds the id enum of cat from snap without writing it.
func Derived(snap *store.Snapshot, cat models.InfoCategory) (models.EnumInfoList, error) {
	if !snap.Complete(cat) {
		return nil, fmt.Errorf("%s: %w", cat, ErrIncomplete)
	}
	return RebuildEntries(snap.Entries(cat))
}

// Outcome is the result of rebuilding one enum file.
type Outcome struct {
	Type    models.EnumTypeID
	Entries int
	Changed bool
	Err     error
}

// RebuildAll rewrites the id enums of the given categories (all of them when
// none are given) from snap. It returns once every file is written. A
// category that fails keeps its previous file.
func RebuildAll(snap *store.Snapshot, log *zap.Logger, cats ...models.InfoCategory) []Outcome {
	if len(cats) == 0 {
		cats = models.InfoCategories()
	}
	outcomes := make([]Outcome, 0, len(cats))
	for _, cat := range cats {
		t := cat.IDEnum()
		out := Outcome{Type: t}
		list, err := Derived(snap, cat)
		if err == nil {
			out.Entries = len(list)
			out.Changed, err = Write(snap.Root, t, list)
		}
		out.Err = err
		if err != nil {
			log.Error("enum rebuild failed", zap.String("enum", t.Name()), zap.Error(err))
		} else {
			log.Debug("enum rebuilt",
				zap.String("enum", t.Name()),
				zap.Int("entries", out.Entries),
				zap.Bool("changed", out.Changed))
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Failed reports whether any outcome carries an error.
func Failed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Rebuildable reports whether t is derived from records.
func Rebuildable(t models.EnumType) bool {
	id, ok := t.(models.EnumTypeID)
	if !ok {
		return false
	}
	_, ok = id.Category()
	return ok
}

// ParseType resolves "<family>/<name>" or a bare enum name, ids first.
func ParseType(s string) (models.EnumType, error) {
	family, name, found := strings.Cut(s, "/")
	if !found {
		family, name = "", s
	}
	switch family {
	case "ids":
		return models.ParseEnumTypeID(name)
	case "tags":
		return models.ParseEnumTypeTag(name)
	case "":
		if t, err := models.ParseEnumTypeID(name); err == nil {
			return t, nil
		}
		t, err := models.ParseEnumTypeTag(name)
		if err != nil {
			return nil, fmt.Errorf("unknown enum %q", s)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown enum family %q", family)
	}
}
