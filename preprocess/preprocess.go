// Package preprocess brings the record tree to its derived state: ladder
// images for every record, ImageInfo flags that match the files, canonical
// info.json files and rebuilt id enums.
package preprocess

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bifrost-platform/asset-info-v2/enums"
	"github.com/bifrost-platform/asset-info-v2/imaging"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

type Options struct {
	Workers   int
	Overwrite bool
	Log       *zap.Logger
}

// RecordOutcome is what preprocessing did to one record.
type RecordOutcome struct {
	Category models.InfoCategory
	ID       models.ID
	Path     string
	Created  []models.ImageType
	Images   models.ImageInfo
	// InfoChanged is set when info.json was rewritten.
	InfoChanged bool
	Err         error
}

type Summary struct {
	Records []RecordOutcome
	// Unreadable lists the info.json files that could not be parsed and
	// were left untouched.
	Unreadable []store.Failure
	Enums      []enums.Outcome
}

// DerivationFailures returns the records whose images could not be derived
// or whose info.json could not be written.
func (s *Summary) DerivationFailures() []RecordOutcome {
	var out []RecordOutcome
	for _, r := range s.Records {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Failed reports whether the run should exit non-zero.
func (s *Summary) Failed() bool {
	return len(s.DerivationFailures()) > 0 || len(s.Unreadable) > 0 || enums.Failed(s.Enums)
}

func (s *Summary) CreatedCount() int {
	n := 0
	for _, r := range s.Records {
		n += len(r.Created)
	}
	return n
}

func (s *Summary) ChangedInfoCount() int {
	n := 0
	for _, r := range s.Records {
		if r.InfoChanged {
			n++
		}
	}
	return n
}

// Run derives the images of every loaded record on a bounded pool, folds the
// resulting flags into each info.json and then rebuilds the id enums from
// snap. A failing record never stops the others; the enum rebuild starts
// only after every record is done.
func Run(ctx context.Context, snap *store.Snapshot, opts Options) (*Summary, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	summary := &Summary{}
	var entries []store.RecordEntry
	for _, cat := range models.InfoCategories() {
		entries = append(entries, snap.Entries(cat)...)
		for _, f := range snap.Failures(cat) {
			log.Warn("skipping unreadable record", zap.String("path", f.Path), zap.Error(f.Err))
			summary.Unreadable = append(summary.Unreadable, f)
		}
	}

	summary.Records = make([]RecordOutcome, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary.Records[i] = processRecord(e, opts.Overwrite, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Enums = enums.RebuildAll(snap, log)
	return summary, nil
}

func processRecord(e store.RecordEntry, overwrite bool, log *zap.Logger) RecordOutcome {
	rec := e.Record
	out := RecordOutcome{Category: rec.Category(), ID: rec.GetID(), Path: e.Path}
	log = log.With(zap.String("record", string(rec.GetID())), zap.String("path", e.Path))

	res, derr := imaging.Derive(e.Dir(), imaging.Options{Overwrite: overwrite})
	out.Created = res.Created
	if derr != nil {
		log.Error("image derivation failed", zap.Error(derr))
	} else if len(res.Created) > 0 {
		log.Debug("images derived", zap.String("source", res.Source.Name()), zap.Int("created", len(res.Created)))
	}

	// Flags follow the files on disk even when derivation failed halfway.
	out.Images = imaging.Scan(e.Dir())
	updated, err := WithImages(rec, out.Images)
	if err == nil {
		out.InfoChanged, err = store.WriteInfo(e.Path, updated)
	}
	if err != nil {
		log.Error("rewriting info.json failed", zap.Error(err))
	}
	out.Err = errors.Join(derr, err)
	return out
}

// WithImages returns a copy of rec carrying images.
func WithImages(rec models.Record, images models.ImageInfo) (models.Record, error) {
	switch r := rec.(type) {
	case models.Asset:
		r.Images = images
		return r, nil
	case models.Network:
		r.Images = images
		return r, nil
	case models.Protocol:
		r.Images = images
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported record type %T", rec)
	}
}
