package validation

import (
	"context"

	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/common"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store"
)

type Options struct {
	Workers   int
	SkipImage bool
	// OnChain enables the rpc checks; nil skips them.
	OnChain *OnChain
	Log     *zap.Logger
}

// Run validates snap and returns every violation found. The error is only
// set when ctx ends the run early.
func Run(ctx context.Context, snap *store.Snapshot, opts Options) (*Report, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	report := NewReport()
	for _, cat := range models.InfoCategories() {
		report.Checked[cat] = len(snap.Entries(cat))
	}

	corpus, enumViolations := NewCorpus(snap)
	report.Add(enumViolations...)

	// The offline passes are cheap and independent.
	report.Add(common.RunParallel(
		corpus.checkLoad,
		corpus.checkIdentifiers,
		corpus.checkReferences,
		corpus.checkTags,
		corpus.checkCurrencies,
		corpus.checkContractNetworkTags,
		corpus.checkDirectories,
	)...)

	if opts.SkipImage {
		log.Info("image checks skipped")
	} else {
		vs, err := corpus.checkImages(ctx, opts.Workers)
		if err != nil {
			return nil, err
		}
		report.Add(vs...)
	}

	if opts.OnChain == nil {
		log.Info("on-chain checks skipped")
	} else {
		vs, err := corpus.checkOnChain(ctx, opts.OnChain, opts.Workers, log)
		if err != nil {
			return nil, err
		}
		report.Add(vs...)
	}

	report.Sort()
	log.Debug("validation finished",
		zap.Int("violations", len(report.Failures())),
		zap.Int("skipped", len(report.Skips())))
	return report, nil
}
