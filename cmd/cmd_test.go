package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bifrost-platform/asset-info-v2/config"
	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/store/storetest"
	"github.com/bifrost-platform/asset-info-v2/ui"
	"github.com/bifrost-platform/asset-info-v2/util/reader"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		Root:       root,
		Workers:    2,
		SkipRPC:    true,
		RPCFile:    config.DefaultRPCFile,
		RPCTimeout: 1,
		LogLevel:   "info",
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

// chainReader answers chain id calls only.
type chainReader struct{ chainID uint64 }

func (c chainReader) ChainID(context.Context) (uint64, error) { return c.chainID, nil }

func (chainReader) Close() {}

func (chainReader) ERC20Name(context.Context, common.Address) (string, error) {
	return "", errors.New("not implemented")
}

func (chainReader) ERC20Symbol(context.Context, common.Address) (string, error) {
	return "", errors.New("not implemented")
}

func (chainReader) ERC20Decimal(context.Context, common.Address) (uint64, error) {
	return 0, errors.New("not implemented")
}

func chainIDs(ids map[models.ID]uint64) func(models.ID, map[string]string) reader.ERC20Reader {
	return func(network models.ID, _ map[string]string) reader.ERC20Reader {
		return chainReader{chainID: ids[network]}
	}
}

func writeRPCList(r *storetest.Repo, refs models.ReferenceList) {
	r.WriteJSON(config.DefaultRPCFile, refs)
}

func TestRunValidate(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	u := ui.NewRecordingUI()
	require.NoError(t, runValidate(context.Background(), testConfig(r.Root), u, zap.NewNop(), "", nil))
	assert.True(t, u.HasMessage("All 5 records are valid"))
	assert.Equal(t, []string{"summary"}, u.Sections())
}

func TestRunValidateFailure(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	n := storetest.EthNetwork(t)
	n.Currency.Address = storetest.Address(t, storetest.WETHAddress)
	r.Add(n)
	jsonPath := filepath.Join(t.TempDir(), "report.json")

	u := ui.NewRecordingUI()
	err := runValidate(context.Background(), testConfig(r.Root), u, zap.NewNop(), jsonPath, nil)
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, []string{"consistency (1)", "summary"}, u.Sections())
	assert.Contains(t, u.ErrorMessages(), "[currency-address] networks/evm-1/info.json: currency.address")
	assert.True(t, u.HasMessage("Validation failed: 1 violation(s)"))

	content, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Len(t, decoded["violations"], 1)

	u = ui.NewRecordingUI()
	err = runValidate(context.Background(), testConfig(r.Root), u, zap.NewNop(), "-", nil)
	assert.ErrorIs(t, err, errFailed)
	assert.Empty(t, u.Sections())
	var stdout map[string]any
	require.NoError(t, json.Unmarshal([]byte(u.Output()), &stdout))
	assert.Len(t, stdout["violations"], 1)
}

func TestRunValidateOnChain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rpcList models.ReferenceList
		chainID uint64
		failed  bool
		warn    string
	}{
		"no rpc list": {
			warn: "[rpc-unavailable] networks/evm-1/info.json",
		},
		"wrong chain": {
			rpcList: models.ReferenceList{{ID: "evm-1", URL: "https://rpc.example.org"}},
			chainID: 5,
			failed:  true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := storetest.Seed(t)
			if tt.rpcList != nil {
				writeRPCList(r, tt.rpcList)
			}
			cfg := testConfig(r.Root)
			cfg.SkipRPC = false
			cfg.SkipImage = true

			u := ui.NewRecordingUI()
			err := runValidate(context.Background(), cfg, u, zap.NewNop(), "", chainIDs(map[models.ID]uint64{"evm-1": tt.chainID}))
			if tt.failed {
				assert.ErrorIs(t, err, errFailed)
				assert.Contains(t, u.ErrorMessages(), "[rpc-chain-id] networks/evm-1/info.json: id")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, u.WarnMessages(), tt.warn)
			assert.True(t, u.HasMessage("1 check(s) skipped"))
		})
	}
}

func TestRunPreprocess(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.WriteFile("assets/usdt/image.png", pngBytes(t, 512, 300))

	u := ui.NewRecordingUI()
	require.NoError(t, runPreprocess(context.Background(), testConfig(r.Root), u, zap.NewNop()))
	assert.True(t, u.HasMessage("4 image(s) created, 1 info.json rewritten"))
	tables := u.Tables()
	require.Len(t, tables, 2)
	assert.Equal(t, [][]string{{"assets/usdt", "png32, png64, png128, png256", "yes"}}, tables[0])
	assert.Len(t, tables[1], 3)

	r.WriteFile("networks/evm-1/image.webp", []byte("RIFF"))
	u = ui.NewRecordingUI()
	err := runPreprocess(context.Background(), testConfig(r.Root), u, zap.NewNop())
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, u.ErrorMessages(), "[derivation] "+r.Path("networks", "evm-1", "info.json"))
}

func TestRunRebuildEnums(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.Add(models.Protocol{
		ID:       "curve",
		Name:     "Curve",
		Networks: models.IDList{"evm-1"},
		Tags:     models.TagList{"dex"},
		URL:      "https://curve.fi",
	})

	u := ui.NewRecordingUI()
	require.NoError(t, runRebuildEnums(context.Background(), testConfig(r.Root), u, zap.NewNop(), []string{"protocols"}))
	assert.Equal(t, [][][]string{{{"ids/protocol", "2", "rewritten"}}}, u.Tables())

	err := runRebuildEnums(context.Background(), testConfig(r.Root), ui.NewRecordingUI(), zap.NewNop(), []string{"tokens"})
	assert.Error(t, err)
}

func TestRunShowEnum(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	tests := map[string]struct {
		name string
		info string
		rows [][]string
	}{
		"tag family":   {name: "tags/asset", info: "tags/asset: 2 entries", rows: [][]string{{"coin", "Coin"}, {"token", "Token"}}},
		"bare id name": {name: "network", info: "ids/network: 1 entries", rows: [][]string{{"evm-1", "Ethereum"}}},
		"unknown name": {name: "protocol.x", rows: nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			u := ui.NewRecordingUI()
			err := runShowEnum(testConfig(r.Root), u, tt.name)
			if tt.rows == nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, [][][]string{tt.rows}, u.Tables())
			assert.Equal(t, []string{tt.info}, u.InfoMessages())
		})
	}
}

func TestRunDeriveImages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), pngBytes(t, 64, 64), 0o644))

	u := ui.NewRecordingUI()
	require.NoError(t, runDeriveImages(testConfig(dir), u, dir))
	kv := u.Entries()[0]
	require.Equal(t, "KeyValue", kv.Method)
	assert.Contains(t, kv.Rows, []string{"Created", "png32, png64"})
	assert.Contains(t, kv.Rows, []string{"Flags", "{png32,png64}"})

	u = ui.NewRecordingUI()
	require.NoError(t, runDeriveImages(testConfig(dir), u, t.TempDir()))
	assert.True(t, u.HasMessage("has no source image"))
}

func evmNetwork(t *testing.T, id models.ID, engine models.Engine) models.Network {
	n := storetest.EthNetwork(t)
	n.ID = id
	n.Engine = engine
	return n
}

func TestRunCheckRPC(t *testing.T) {
	t.Parallel()

	r := storetest.Seed(t)
	r.Add(evmNetwork(t, "evm-56", models.EngineEvm))
	r.Add(evmNetwork(t, "evm-97", models.EngineUnknown))
	writeRPCList(r, models.ReferenceList{
		{ID: "bitcoin", URL: "https://btc.example.org"},
		{ID: "evm-1", URL: "https://eth.example.org"},
		{ID: "evm-56", URL: "https://bsc.example.org"},
		{ID: "evm-97", URL: "https://bsc-testnet.example.org"},
	})
	cfg := testConfig(r.Root)

	u := ui.NewRecordingUI()
	err := runCheckRPC(context.Background(), cfg, u, zap.NewNop(), chainIDs(map[models.ID]uint64{"evm-1": 1, "evm-56": 1}))
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, [][][]string{{
		{"evm-1", "1", "1", "ok"},
		{"evm-56", "56", "1", "mismatch"},
	}}, u.Tables())
	assert.Equal(t, []string{"bitcoin is in the rpc list but has no network record"}, u.WarnMessages())

	u = ui.NewRecordingUI()
	require.NoError(t, runCheckRPC(context.Background(), cfg, u, zap.NewNop(), chainIDs(map[models.ID]uint64{"evm-1": 1, "evm-56": 56})))
	assert.True(t, u.HasMessage("2 network(s) checked"))
}

// Not parallel: sets a node override in the environment.
func TestRunCheckRPCEnvOverride(t *testing.T) {
	t.Setenv("ASSETINFO_NODE_EVM_10", "https://op.example.org")

	r := storetest.Seed(t)
	r.Add(evmNetwork(t, "evm-10", models.EngineEvm))

	u := ui.NewRecordingUI()
	require.NoError(t, runCheckRPC(context.Background(), testConfig(r.Root), u, zap.NewNop(), chainIDs(map[models.ID]uint64{"evm-10": 10})))
	assert.Equal(t, [][][]string{{
		{"evm-1", "1", "-", "no endpoint"},
		{"evm-10", "10", "10", "ok"},
	}}, u.Tables())
}

func TestFlagOverrides(t *testing.T) {
	c := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	addPersistentFlags(c)
	addSkipFlags(c)
	require.NoError(t, c.ParseFlags([]string{"--workers", "3", "--skip-rpc", "-r", "/data"}))

	assert.Equal(t, map[string]any{
		"workers":  3,
		"skip_rpc": true,
		"root":     "/data",
	}, flagOverrides(c))
}
