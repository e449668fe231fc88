// Package storetest builds record trees on disk for tests.
package storetest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bifrost-platform/asset-info-v2/models"
)

// Checksummed EVM addresses usable as fixture values.
const (
	EthAddress  = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	USDTAddress = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
	WETHAddress = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	BNBAddress  = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

// Repo is a record tree rooted in a test temp dir.
type Repo struct {
	t    testing.TB
	Root string
}

func New(t testing.TB) *Repo {
	t.Helper()
	return &Repo{t: t, Root: t.TempDir()}
}

func (r *Repo) Path(rel ...string) string {
	return filepath.Join(append([]string{r.Root}, rel...)...)
}

func (r *Repo) WriteFile(rel string, content []byte) string {
	r.t.Helper()
	path := r.Path(rel)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, content, 0o644))
	return path
}

func (r *Repo) WriteJSON(rel string, v any) string {
	r.t.Helper()
	content, err := json.MarshalIndent(v, "", "  ")
	require.NoError(r.t, err)
	return r.WriteFile(rel, append(content, '\n'))
}

func (r *Repo) Mkdir(rel string) string {
	r.t.Helper()
	path := r.Path(rel)
	require.NoError(r.t, os.MkdirAll(path, 0o755))
	return path
}

// Put writes rec to <category>/<dir>/info.json.
func (r *Repo) Put(dir string, rec models.Record) string {
	r.t.Helper()
	return r.WriteJSON(filepath.Join(rec.Category().Dir(), dir, "info.json"), rec)
}

// Add writes rec into the directory named after its id.
func (r *Repo) Add(rec models.Record) string {
	r.t.Helper()
	return r.Put(string(rec.GetID()), rec)
}

func (r *Repo) WriteEnum(t models.EnumType, list models.EnumInfoList) string {
	r.t.Helper()
	return r.WriteJSON(filepath.Join("enums", t.Family(), t.Name()+".json"), list)
}

func Address(t testing.TB, s string) models.Address {
	t.Helper()
	a, err := models.ParseAddress(s)
	require.NoError(t, err)
	return a
}

func Enum(pairs ...string) models.EnumInfoList {
	out := models.EnumInfoList{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.EnumInfo{Value: models.ID(pairs[i]), Description: models.Description(pairs[i+1])})
	}
	return out
}

func EthAsset(t testing.TB) models.Asset {
	return models.Asset{
		Contracts: models.ContractList{{
			Address:  Address(t, EthAddress),
			Decimals: 18,
			Name:     "Ether",
			Network:  "evm-1",
			Symbol:   "ETH",
			Tags:     models.TagList{"mainnet", "native-coin"},
		}},
		ID:         "eth",
		Name:       "Ether",
		References: models.ReferenceList{{ID: "coingecko", URL: "https://www.coingecko.com/en/coins/ethereum"}},
		Tags:       models.TagList{"coin"},
	}
}

func USDTAsset(t testing.TB) models.Asset {
	return models.Asset{
		Contracts: models.ContractList{{
			Address:  Address(t, USDTAddress),
			Decimals: 6,
			Name:     "Tether USD",
			Network:  "evm-1",
			Symbol:   "USDT",
			Tags:     models.TagList{"mainnet", "stablecoin"},
		}},
		ID:         "usdt",
		Name:       "Tether USD",
		References: models.ReferenceList{},
		Tags:       models.TagList{"token"},
	}
}

func UnknownAsset() models.Asset {
	return models.Asset{
		Contracts:  models.ContractList{},
		ID:         "unknown-ethereum",
		Name:       "Unknown Ethereum Token",
		References: models.ReferenceList{},
		Tags:       models.TagList{},
	}
}

func EthNetwork(t testing.TB) models.Network {
	return models.Network{
		Currency: models.Currency{
			Address:  Address(t, EthAddress),
			Decimals: 18,
			ID:       "eth",
			Name:     "Ether",
			Symbol:   "ETH",
		},
		Engine:         models.EngineEvm,
		Explorers:      models.ReferenceList{{ID: "etherscan", URL: "https://etherscan.io"}},
		ID:             "evm-1",
		Name:           "Ethereum",
		Network:        models.Mainnet,
		Tags:           models.TagList{"ethereum", "mainnet"},
		UnknownAssetID: "unknown-ethereum",
	}
}

func UniswapProtocol() models.Protocol {
	return models.Protocol{
		ID:       "uniswap",
		Name:     "Uniswap",
		Networks: models.IDList{"evm-1"},
		Tags:     models.TagList{"dex"},
		URL:      "https://uniswap.org",
	}
}

// Seed writes a small corpus that passes every offline check: two tokens
// and the unknown placeholder on Ethereum, one protocol, and matching id
// and tag enums.
func Seed(t testing.TB) *Repo {
	t.Helper()
	r := New(t)
	r.Add(EthAsset(t))
	r.Add(USDTAsset(t))
	r.Add(UnknownAsset())
	r.Add(EthNetwork(t))
	r.Add(UniswapProtocol())

	r.WriteEnum(models.EnumIDAsset, Enum("eth", "Ether", "unknown-ethereum", "Unknown Ethereum Token", "usdt", "Tether USD"))
	r.WriteEnum(models.EnumIDAssetReference, Enum("coingecko", "CoinGecko"))
	r.WriteEnum(models.EnumIDNetwork, Enum("evm-1", "Ethereum"))
	r.WriteEnum(models.EnumIDNetworkExplorer, Enum("etherscan", "Etherscan"))
	r.WriteEnum(models.EnumIDProtocol, Enum("uniswap", "Uniswap"))

	r.WriteEnum(models.EnumTagAsset, Enum("coin", "Coin", "token", "Token"))
	r.WriteEnum(models.EnumTagAssetContracts, Enum("mainnet", "Mainnet", "native-coin", "Native coin", "stablecoin", "Stablecoin", "testnet", "Testnet"))
	r.WriteEnum(models.EnumTagNetwork, Enum("ethereum", "Ethereum", "mainnet", "Mainnet", "testnet", "Testnet"))
	r.WriteEnum(models.EnumTagProtocol, Enum("dex", "Decentralized exchange"))
	return r
}
