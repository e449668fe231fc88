package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/validation"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Inspect the rpc list",
}

var checkRPCCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every rpc endpoint serves the chain its network id names",
	Long: `For every evm network record whose id is evm-<chainId>, asks its nodes
(from the rpc list or the environment override) for eth_chainId and compares
the answer with <chainId>. Networks without a node are listed as skipped, and
rpc list entries without a network record are reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckRPC(cmd.Context(), Config, UI, Log, nil)
	},
}

type chainIDResult struct {
	network models.ID
	want    uint64
	got     uint64
	err     error
	skipped bool
}

func runCheckRPC(ctx context.Context, cfg *config.Config, u ui.UI, log *zap.Logger, newReader validation.ReaderFactory) error {
	snap, err := loadSnapshot(ctx, cfg, u, log)
	if err != nil {
		return err
	}
	oc, err := newOnChain(cfg, newReader)
	if err != nil {
		return err
	}

	var results []*chainIDResult
	records := map[string]bool{}
	for _, ne := range snap.Networks.Entries {
		records[string(ne.Record.ID)] = true
		if !ne.Record.Engine.IsEvm() {
			continue
		}
		if want, ok := oc.Endpoints.Network(ne.Record.ID).GetChainID(); ok {
			results = append(results, &chainIDResult{network: ne.Record.ID, want: want})
		}
	}
	for _, name := range oc.Endpoints.Names() {
		if !records[name] {
			u.Warn("%s is in the rpc list but has no network record", name)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for _, r := range results {
		g.Go(func() error {
			nodes := oc.Endpoints.GetNodes(r.network)
			if len(nodes) == 0 {
				r.skipped = true
				return nil
			}
			cctx, cancel := context.WithTimeout(gctx, oc.Timeout)
			defer cancel()
			chain := oc.NewReader(r.network, nodes)
			defer chain.Close()
			r.got, r.err = chain.ChainID(cctx)
			if r.err != nil {
				log.Warn("chain id call failed", zap.String("network", string(r.network)), zap.Error(r.err))
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := false
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		got := "-"
		status := u.Style(ui.StyledText{Text: "ok", Severity: ui.SeveritySuccess})
		switch {
		case r.skipped:
			status = u.Style(ui.StyledText{Text: "no endpoint", Severity: ui.SeverityWarn})
		case r.err != nil:
			status = u.Style(ui.StyledText{Text: "unreachable", Severity: ui.SeverityWarn})
		case r.got != r.want:
			got = strconv.FormatUint(r.got, 10)
			status = u.Style(ui.StyledText{Text: "mismatch", Severity: ui.SeverityError})
			failed = true
		default:
			got = strconv.FormatUint(r.got, 10)
		}
		rows = append(rows, []string{string(r.network), strconv.FormatUint(r.want, 10), got, status})
	}
	u.Table([]string{"network", "expected", "got", "status"}, rows)
	if failed {
		u.Error("Some endpoints serve a different chain")
		return errFailed
	}
	u.Success("%d network(s) checked", len(results))
	return nil
}

func init() {
	rpcCmd.AddCommand(checkRPCCmd)
	rootCmd.AddCommand(rpcCmd)
}
