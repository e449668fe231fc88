package validation

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/networks"
	"github.com/bifrost-platform/asset-info-v2/store/storetest"
	"github.com/bifrost-platform/asset-info-v2/util"
	"github.com/bifrost-platform/asset-info-v2/util/reader"
)

var errNoCode = errors.New("abi: attempting to unmarshall an empty string while arguments are expected")

type fakeReader struct {
	chainID  uint64
	chainErr error
	tokens   map[common.Address]util.ERC20Info
	asked    map[common.Address]bool
	// delay is spent on every call unless ctx ends first.
	delay  time.Duration
	closed bool
}

func (f *fakeReader) Close() { f.closed = true }

func (f *fakeReader) wait(ctx context.Context) error {
	if f.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeReader) ChainID(ctx context.Context) (uint64, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.chainID, f.chainErr
}

func (f *fakeReader) token(ctx context.Context, addr common.Address) (util.ERC20Info, error) {
	if err := f.wait(ctx); err != nil {
		return util.ERC20Info{}, err
	}
	f.asked[addr] = true
	info, found := f.tokens[addr]
	if !found {
		return util.ERC20Info{}, errNoCode
	}
	return info, nil
}

func (f *fakeReader) ERC20Name(ctx context.Context, addr common.Address) (string, error) {
	info, err := f.token(ctx, addr)
	return info.Name, err
}

func (f *fakeReader) ERC20Symbol(ctx context.Context, addr common.Address) (string, error) {
	info, err := f.token(ctx, addr)
	return info.Symbol, err
}

func (f *fakeReader) ERC20Decimal(ctx context.Context, addr common.Address) (uint64, error) {
	info, err := f.token(ctx, addr)
	return info.Decimals, err
}

func onChainWith(f *fakeReader, ids ...models.ID) *OnChain {
	var ns []networks.Network
	for _, id := range ids {
		ns = append(ns, networks.NewGenericNetwork(networks.GenericNetworkConfig{
			Name:             string(id),
			NodeVariableName: networks.GetNodeVariableName(id),
			DefaultNodes:     map[string]string{string(id): "fake://"},
		}))
	}
	if f.asked == nil {
		f.asked = map[common.Address]bool{}
	}
	return &OnChain{
		Endpoints: networks.NewEndpoints(ns...),
		NewReader: func(models.ID, map[string]string) reader.ERC20Reader { return f },
		Timeout:   time.Second,
	}
}

// This is the only test that reaches the token reads; their results are
// cached per network and address for the whole process.
func TestOnChainContracts(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	usdt := storetest.USDTAsset(t)
	usdt.Contracts = append(usdt.Contracts, models.Contract{
		Address:  storetest.Address(t, storetest.WETHAddress),
		Decimals: 18,
		Name:     "Wrapped Tether",
		Network:  "evm-1",
		Symbol:   "WUSDT",
		Tags:     models.TagList{"mainnet"},
	})
	r.Add(usdt)
	unknown := storetest.UnknownAsset()
	unknown.Contracts = models.ContractList{{
		Address:  storetest.Address(t, storetest.BNBAddress),
		Decimals: 18,
		Name:     "Unknown",
		Network:  "evm-1",
		Symbol:   "UNKNOWN",
		Tags:     models.TagList{"mainnet"},
	}}
	r.Add(unknown)

	f := &fakeReader{
		chainID: 1,
		tokens: map[common.Address]util.ERC20Info{
			common.HexToAddress(storetest.USDTAddress): {Name: "Tether", Symbol: "USDT ", Decimals: 6},
		},
	}
	report := run(t, r, Options{OnChain: onChainWith(f, "evm-1")})

	mismatch := report.Find("onchain-mismatch")
	require.Len(t, mismatch, 1)
	assert.Equal(t, ConsistencyViolation, mismatch[0].Kind)
	assert.Equal(t, models.ID("usdt"), mismatch[0].Record)
	assert.Equal(t, "contracts[0].name", mismatch[0].Field)
	assert.Equal(t, "Tether", mismatch[0].Expected)
	assert.Equal(t, "Tether USD", mismatch[0].Actual)
	assert.Equal(t, []string{"networks/evm-1"}, mismatch[0].Related)

	notContract := report.Find("onchain-not-contract")
	require.Len(t, notContract, 1)
	assert.Equal(t, "contracts[1].address", notContract[0].Field)

	assert.False(t, f.asked[common.HexToAddress(storetest.BNBAddress)], "unknown asset is exempt")
	assert.False(t, f.asked[common.HexToAddress(storetest.EthAddress)], "currency contract is exempt")
	assert.Empty(t, report.Skips())
}

// The timeout bounds each contract, so a network with many slow contracts
// still gets every one of them checked.
func TestOnChainTimeoutPerContract(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	usdt := storetest.USDTAsset(t)
	tokens := map[common.Address]util.ERC20Info{}
	usdt.Contracts = models.ContractList{}
	for i := range 10 {
		addr := common.BigToAddress(big.NewInt(int64(0x5100 + i)))
		usdt.Contracts = append(usdt.Contracts, models.Contract{
			Address:  storetest.Address(t, addr.Hex()),
			Decimals: 6,
			Name:     "Tether USD",
			Network:  "evm-1",
			Symbol:   "USDT",
			Tags:     models.TagList{"mainnet", "stablecoin"},
		})
		tokens[addr] = util.ERC20Info{Name: "Tether USD", Symbol: "USDT", Decimals: 6}
	}
	last := common.BigToAddress(big.NewInt(0x5100 + 9))
	tokens[last] = util.ERC20Info{Name: "Tether USD", Symbol: "USDT", Decimals: 8}
	r.Add(usdt)

	f := &fakeReader{chainID: 1, tokens: tokens, delay: 20 * time.Millisecond}
	oc := onChainWith(f, "evm-1")
	oc.Timeout = 200 * time.Millisecond
	report := run(t, r, Options{OnChain: oc})

	assert.Empty(t, report.Skips())
	mismatch := report.Find("onchain-mismatch")
	require.Len(t, mismatch, 1)
	assert.Equal(t, "contracts[9].decimals", mismatch[0].Field)
	assert.Equal(t, "8", mismatch[0].Expected)
	assert.Len(t, f.asked, 10)
}

func TestOnChainChainID(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	f := &fakeReader{chainID: 56}
	report := run(t, r, Options{OnChain: onChainWith(f, "evm-1")})

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "rpc-chain-id", failures[0].Rule)
	assert.Equal(t, "1", failures[0].Expected)
	assert.Equal(t, "56", failures[0].Actual)
	assert.Empty(t, f.asked)
	assert.True(t, f.closed)
}

func TestOnChainUnavailable(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		reader *fakeReader
		ids    []models.ID
		rule   string
	}{
		"no endpoint": {
			reader: &fakeReader{chainID: 1},
			rule:   "rpc-unavailable",
		},
		"node error": {
			reader: &fakeReader{chainErr: errors.New("connection refused")},
			ids:    []models.ID{"evm-1"},
			rule:   "rpc-error",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := run(t, storetest.Seed(t), Options{OnChain: onChainWith(tt.reader, tt.ids...)})
			assert.False(t, report.HasFailures())
			skips := report.Skips()
			require.Len(t, skips, 1)
			assert.Equal(t, ExternalUnavailable, skips[0].Kind)
			assert.Equal(t, tt.rule, skips[0].Rule)
			assert.Equal(t, models.ID("evm-1"), skips[0].Record)
		})
	}
}
