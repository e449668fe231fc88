package validation

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/imaging"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

// checkImages compares every record's ImageInfo with its directory, one
// record per worker.
func (c *Corpus) checkImages(ctx context.Context, workers int) ([]*Violation, error) {
	var entries []store.RecordEntry
	for _, cat := range models.InfoCategories() {
		entries = append(entries, c.Snapshot.Entries(cat)...)
	}
	results := make([][]*Violation, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkRecordImages(e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var vs []*Violation
	for _, r := range results {
		vs = append(vs, r...)
	}
	return vs, nil
}

func (c *Corpus) checkRecordImages(e store.RecordEntry) []*Violation {
	var vs []*Violation
	info := e.Record.GetImages()
	dir := e.Dir()
	fail := func(rule, field, msg string) *Violation {
		v := c.on(e, ImageViolation, rule)
		v.Field = field
		v.Message = msg
		vs = append(vs, v)
		return v
	}

	if err := info.CheckLadder(); err != nil {
		fail("image-ladder", "images", err.Error()).Hint = "run `asset-info preprocess`"
	}

	for _, t := range models.AscendingImageTypes() {
		field := "images." + t.String()
		path := filepath.Join(dir, t.FileName())
		exists := common.FileExists(path)
		switch {
		case info.Has(t) && !exists:
			fail("image-flag", field, fmt.Sprintf("%s is true but %s does not exist", t, t.FileName()))
			continue
		case !info.Has(t) && exists:
			v := fail("image-flag", field, fmt.Sprintf("%s exists but %s is false", t.FileName(), t))
			v.Hint = "run `asset-info preprocess`"
		case !exists:
			continue
		}

		if t.IsPng() {
			w, h, err := imaging.PngSize(path)
			if err != nil {
				fail("image-unreadable", field, err.Error())
				continue
			}
			if w != t.Size() || h != t.Size() {
				v := fail("image-size", field, fmt.Sprintf("%s has the wrong pixel size", t.FileName()))
				v.Expected = fmt.Sprintf("%dx%d", t.Size(), t.Size())
				v.Actual = fmt.Sprintf("%dx%d", w, h)
			}
			continue
		}

		w, h, err := imaging.SvgFileSize(path)
		if err != nil {
			fail("image-unreadable", field, err.Error())
			continue
		}
		if w != models.SvgSize || h != models.SvgSize {
			v := fail("svg-size", field, fmt.Sprintf("%s must declare a %d×%d size", t.FileName(), models.SvgSize, models.SvgSize))
			v.Expected = fmt.Sprintf("%dx%d", models.SvgSize, models.SvgSize)
			v.Actual = fmt.Sprintf("%gx%g", w, h)
		}
	}
	return vs
}
