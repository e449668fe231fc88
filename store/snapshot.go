package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/models"
)

// Snapshot is the fully materialised record tree of one run. Everything
// derived from the tree (enum rebuilds, validation) reads this value and
// never goes back to disk for records.
type Snapshot struct {
	Root      string
	Assets    *Category[models.Asset]
	Networks  *Category[models.Network]
	Protocols *Category[models.Protocol]
}

func Load(ctx context.Context, root string, workers int, log *zap.Logger) (*Snapshot, error) {
	assets, err := LoadCategory[models.Asset](ctx, root, models.CategoryAsset, workers, log)
	if err != nil {
		return nil, err
	}
	networks, err := LoadCategory[models.Network](ctx, root, models.CategoryNetwork, workers, log)
	if err != nil {
		return nil, err
	}
	protocols, err := LoadCategory[models.Protocol](ctx, root, models.CategoryProtocol, workers, log)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Root: root, Assets: assets, Networks: networks, Protocols: protocols}, nil
}

// Entries returns the parsed records of cat.
func (s *Snapshot) Entries(cat models.InfoCategory) []RecordEntry {
	switch cat {
	case models.CategoryAsset:
		return toRecordEntries(s.Assets.Entries)
	case models.CategoryNetwork:
		return toRecordEntries(s.Networks.Entries)
	default:
		return toRecordEntries(s.Protocols.Entries)
	}
}

// Records returns the parsed records of cat as the common interface.
func (s *Snapshot) Records(cat models.InfoCategory) []models.Record {
	entries := s.Entries(cat)
	out := make([]models.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record)
	}
	return out
}

func (s *Snapshot) Failures(cat models.InfoCategory) []Failure {
	switch cat {
	case models.CategoryAsset:
		return s.Assets.Failures
	case models.CategoryNetwork:
		return s.Networks.Failures
	default:
		return s.Protocols.Failures
	}
}

func (s *Snapshot) Missing(cat models.InfoCategory) []string {
	switch cat {
	case models.CategoryAsset:
		return s.Assets.Missing
	case models.CategoryNetwork:
		return s.Networks.Missing
	default:
		return s.Protocols.Missing
	}
}

// Complete reports whether every directory of cat produced a record, which
// is required before cat's id enum may be rebuilt.
func (s *Snapshot) Complete(cat models.InfoCategory) bool {
	return len(s.Failures(cat)) == 0 && len(s.Missing(cat)) == 0
}

func toRecordEntries[T models.Record](entries []Entry[T]) []RecordEntry {
	out := make([]RecordEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, RecordEntry{Record: e.Record, Path: e.Path})
	}
	return out
}
