package util

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bifrost-platform/asset-info-v2/models"
	"github.com/bifrost-platform/asset-info-v2/util/cache"
	"github.com/bifrost-platform/asset-info-v2/util/reader"
)

// ERC20Info is the on-chain metadata of a token contract.
type ERC20Info struct {
	Name     string
	Symbol   string
	Decimals uint64
}

var erc20Cache = cache.New[ERC20Info](cache.DefaultExpiration, cache.DefaultCleanupInterval)

func erc20CacheKey(network models.ID, addr common.Address) string {
	return fmt.Sprintf("%s/%s", network, addr.Hex())
}

// GetERC20Info reads name, symbol and decimals of addr on network, hitting
// the nodes at most once per contract and process.
func GetERC20Info(ctx context.Context, r reader.ERC20Reader, network models.ID, addr common.Address) (ERC20Info, error) {
	cacheKey := erc20CacheKey(network, addr)
	if info, found := erc20Cache.Get(cacheKey); found {
		return info, nil
	}

	name, err := r.ERC20Name(ctx, addr)
	if err != nil {
		return ERC20Info{}, fmt.Errorf("reading name: %w", err)
	}
	symbol, err := r.ERC20Symbol(ctx, addr)
	if err != nil {
		return ERC20Info{}, fmt.Errorf("reading symbol: %w", err)
	}
	decimals, err := r.ERC20Decimal(ctx, addr)
	if err != nil {
		return ERC20Info{}, fmt.Errorf("reading decimals: %w", err)
	}

	info := ERC20Info{Name: name, Symbol: symbol, Decimals: decimals}
	erc20Cache.Set(cacheKey, info)
	return info, nil
}

// IsNotContract reports whether err comes from calling an address that has
// no code, which answers every call with empty data.
func IsNotContract(err error) bool {
	return err != nil && strings.Contains(err.Error(), "abi: attempting to unmarshall an empty string while arguments are expected")
}
