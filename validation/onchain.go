package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/networks"
	"github.com/bifrost-platform/asset-info-v2/store"
	"github.com/bifrost-platform/asset-info-v2/util"
	"github.com/bifrost-platform/asset-info-v2/util/reader"
)

// ReaderFactory opens an ERC-20 reader over the nodes of one network.
type ReaderFactory func(network models.ID, nodes map[string]string) reader.ERC20Reader

// NewEthReaderFactory dials real nodes with a per-call timeout.
func NewEthReaderFactory(timeout time.Duration) ReaderFactory {
	return func(_ models.ID, nodes map[string]string) reader.ERC20Reader {
		return reader.NewEthReaderGeneric(nodes, timeout)
	}
}

// OnChain configures the checks that talk to RPC nodes.
type OnChain struct {
	Endpoints *networks.Endpoints
	NewReader ReaderFactory
	// Timeout bounds the chain id call and the reads of each contract;
	// zero leaves them to the reader.
	Timeout time.Duration
}

func (oc *OnChain) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if oc.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, oc.Timeout)
}

type chainTask struct {
	network store.Entry[models.Network]
	nodes   map[string]string
}

// checkOnChain compares every contract's name, symbol and decimals with the
// ERC-20 metadata on its network and checks that each node serves the chain
// its evm-<chainId> id promises. Networks without endpoints are reported as
// skipped. The network's unknown asset and its native currency contract are
// exempt.
func (c *Corpus) checkOnChain(ctx context.Context, oc *OnChain, workers int, log *zap.Logger) ([]*Violation, error) {
	var tasks []chainTask
	var vs []*Violation
	for _, ne := range c.Snapshot.Networks.Entries {
		if !ne.Record.Engine.IsEvm() {
			continue
		}
		nodes := oc.Endpoints.GetNodes(ne.Record.ID)
		if len(nodes) == 0 {
			v := c.on(store.RecordEntry{Record: ne.Record, Path: ne.Path}, ExternalUnavailable, "rpc-unavailable")
			v.Message = fmt.Sprintf("no rpc endpoint for %q, on-chain checks skipped", ne.Record.ID)
			v.Hint = fmt.Sprintf("add it to the rpc list or set %s", networks.GetNodeVariableName(ne.Record.ID))
			vs = append(vs, v)
			log.Info("on-chain checks skipped", zap.String("network", string(ne.Record.ID)))
			continue
		}
		tasks = append(tasks, chainTask{network: ne, nodes: nodes})
	}

	results := make([][]*Violation, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkNetworkOnChain(gctx, oc, task, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, r := range results {
		vs = append(vs, r...)
	}
	return vs, nil
}

func (c *Corpus) checkNetworkOnChain(ctx context.Context, oc *OnChain, task chainTask, log *zap.Logger) []*Violation {
	n := task.network.Record
	ne := store.RecordEntry{Record: n, Path: task.network.Path}
	r := oc.NewReader(n.ID, task.nodes)
	defer r.Close()
	var vs []*Violation

	unavailable := func(e store.RecordEntry, field string, err error) {
		v := c.on(e, ExternalUnavailable, "rpc-error")
		v.Field = field
		v.Message = fmt.Sprintf("rpc call on %q failed: %v", n.ID, err)
		v.Related = []string{recordRef(models.CategoryNetwork, n.ID)}
		vs = append(vs, v)
		log.Warn("rpc call failed", zap.String("network", string(n.ID)), zap.String("record", string(e.Record.GetID())), zap.Error(err))
	}

	if want, ok := oc.Endpoints.Network(n.ID).GetChainID(); ok {
		cctx, cancel := oc.bounded(ctx)
		got, err := r.ChainID(cctx)
		cancel()
		switch {
		case err != nil:
			unavailable(ne, "id", err)
			return vs
		case got != want:
			v := c.on(ne, ConsistencyViolation, "rpc-chain-id")
			v.Field = "id"
			v.Message = "the rpc endpoint serves a different chain"
			v.Expected = strconv.FormatUint(want, 10)
			v.Actual = strconv.FormatUint(got, 10)
			return append(vs, v)
		}
	}

	for _, ae := range c.Snapshot.Assets.Entries {
		if ae.Record.ID == n.UnknownAssetID {
			continue
		}
		e := store.RecordEntry{Record: ae.Record, Path: ae.Path}
		for i, contract := range ae.Record.Contracts {
			if contract.Network != n.ID || addressEqual(contract.Address, n.Currency.Address) {
				continue
			}
			addr, ok := contract.Address.Evm()
			if !ok {
				continue
			}
			field := fmt.Sprintf("contracts[%d]", i)
			cctx, cancel := oc.bounded(ctx)
			info, err := util.GetERC20Info(cctx, r, n.ID, addr)
			cancel()
			if util.IsNotContract(err) {
				v := c.on(e, ConsistencyViolation, "onchain-not-contract")
				v.Field = field + ".address"
				v.Message = fmt.Sprintf("%s has no token contract on %q", addr.Hex(), n.ID)
				vs = append(vs, v)
				continue
			}
			if err != nil {
				unavailable(e, field, err)
				continue
			}
			mismatch := func(name, want, got string) {
				if want == got {
					return
				}
				v := c.on(e, ConsistencyViolation, "onchain-mismatch")
				v.Field = field + "." + name
				v.Message = fmt.Sprintf("%s differs from the token contract on %q", name, n.ID)
				v.Expected = want
				v.Actual = got
				v.Related = []string{recordRef(models.CategoryNetwork, n.ID)}
				vs = append(vs, v)
			}
			mismatch("name", strings.TrimSpace(info.Name), contract.Name)
			mismatch("symbol", strings.TrimSpace(info.Symbol), contract.Symbol)
			mismatch("decimals", strconv.FormatUint(info.Decimals, 10), strconv.Itoa(contract.Decimals))
		}
	}
	return vs
}
