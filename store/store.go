// Package store reads and writes the record tree: one directory per record
// under assets/, networks/ and protocols/, each holding an info.json.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/models"
)

const InfoFileName = "info.json"

// Entry is a record together with the info.json it was read from.
type Entry[T models.Record] struct {
	Record T
	Path   string
}

func (e Entry[T]) Dir() string     { return filepath.Dir(e.Path) }
func (e Entry[T]) DirName() string { return filepath.Base(filepath.Dir(e.Path)) }

// RecordEntry is the category independent view of an Entry.
type RecordEntry struct {
	Record models.Record
	Path   string
}

func (e RecordEntry) Dir() string     { return filepath.Dir(e.Path) }
func (e RecordEntry) DirName() string { return filepath.Base(filepath.Dir(e.Path)) }

// Failure is an info.json that could not be read or parsed.
type Failure struct {
	Category models.InfoCategory
	Path     string
	Err      error
}

func (f Failure) Error() string { return fmt.Sprintf("%s: %v", f.Path, f.Err) }
func (f Failure) Unwrap() error { return f.Err }

// Category is the outcome of loading one record family.
type Category[T models.Record] struct {
	Entries  []Entry[T]
	Failures []Failure
	// Missing lists record directories without an info.json.
	Missing []string
}

// ListRecordDirs returns the record directories of cat, sorted by name. A
// missing category directory is an empty category.
func ListRecordDirs(root string, cat models.InfoCategory) ([]string, error) {
	base := filepath.Join(root, cat.Dir())
	entries, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", base, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ReadInfo parses one info.json. Schema problems come back as a joined
// error of *models.SchemaError values.
func ReadInfo[T models.Record](path string) (T, error) {
	var v T
	content, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(content, &v); err != nil {
		return v, err
	}
	return v, nil
}

// LoadCategory reads every record of cat on up to workers goroutines. One
// bad file never stops the others; results keep directory order.
func LoadCategory[T models.Record](ctx context.Context, root string, cat models.InfoCategory, workers int, log *zap.Logger) (*Category[T], error) {
	dirs, err := ListRecordDirs(root, cat)
	if err != nil {
		return nil, err
	}

	type slot struct {
		entry   *Entry[T]
		failure *Failure
		missing bool
	}
	slots := make([]slot, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, InfoFileName)
			if !common.FileExists(path) {
				slots[i].missing = true
				return nil
			}
			record, err := ReadInfo[T](path)
			if err != nil {
				log.Debug("record rejected", zap.String("path", path), zap.Error(err))
				slots[i].failure = &Failure{Category: cat, Path: path, Err: err}
				return nil
			}
			slots[i].entry = &Entry[T]{Record: record, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Category[T]{}
	for i, s := range slots {
		switch {
		case s.missing:
			result.Missing = append(result.Missing, dirs[i])
		case s.failure != nil:
			result.Failures = append(result.Failures, *s.failure)
		case s.entry != nil:
			result.Entries = append(result.Entries, *s.entry)
		}
	}
	log.Debug("category loaded",
		zap.String("category", cat.String()),
		zap.Int("records", len(result.Entries)),
		zap.Int("failures", len(result.Failures)),
		zap.Int("missing", len(result.Missing)))
	return result, nil
}

// Records returns the bare records of entries.
func Records[T models.Record](entries []Entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}

// EncodeInfo renders a record the way info.json files are stored: keys
// sorted, two space indent, trailing newline, non-ASCII escaped as \uXXXX.
func EncodeInfo(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return common.EscapeNonASCII(buf.Bytes()), nil
}

// WriteInfo stores v canonically at path. It reports whether the file
// changed.
func WriteInfo(path string, v any) (bool, error) {
	content, err := EncodeInfo(v)
	if err != nil {
		return false, fmt.Errorf("encoding %s: %w", path, err)
	}
	return common.WriteFileIfChanged(path, content, 0o644)
}
