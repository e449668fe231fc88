package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/networks"
	"github.com/bifrost-platform/asset-info-v2/store"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/validation"
)

func loadSnapshot(ctx context.Context, cfg *config.Config, u ui.UI, log *zap.Logger) (*store.Snapshot, error) {
	stop := u.Spinner(fmt.Sprintf("Loading records from %s...", cfg.Root))
	snap, err := store.Load(ctx, cfg.Root, cfg.Workers, log)
	stop()
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	for _, cat := range models.InfoCategories() {
		log.Debug("records loaded",
			zap.String("category", cat.String()),
			zap.Int("records", len(snap.Entries(cat))),
			zap.Int("failures", len(snap.Failures(cat))))
	}
	return snap, nil
}

// newOnChain wires the on-chain checks to the rpc list of cfg. newReader
// may be nil to dial real nodes.
func newOnChain(cfg *config.Config, newReader validation.ReaderFactory) (*validation.OnChain, error) {
	endpoints, err := networks.LoadEndpoints(cfg.RPCPath())
	if err != nil {
		return nil, err
	}
	if newReader == nil {
		newReader = validation.NewEthReaderFactory(cfg.Timeout())
	}
	return &validation.OnChain{
		Endpoints: endpoints,
		NewReader: newReader,
		Timeout:   3 * cfg.Timeout(),
	}, nil
}

func writeJSONReport(path string, r *validation.Report) error {
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		return err
	}
	if err := common.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

func imageTypeNames(types []models.ImageType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
