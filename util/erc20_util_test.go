package util

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	calls atomic.Int32
	fail  bool
}

func (r *countingReader) ChainID(context.Context) (uint64, error) { return 1, nil }

func (r *countingReader) Close() {}

func (r *countingReader) ERC20Name(context.Context, common.Address) (string, error) {
	r.calls.Add(1)
	if r.fail {
		return "", errors.New("abi: attempting to unmarshall an empty string while arguments are expected")
	}
	return "Tether USD", nil
}

func (r *countingReader) ERC20Symbol(context.Context, common.Address) (string, error) {
	return "USDT", nil
}

func (r *countingReader) ERC20Decimal(context.Context, common.Address) (uint64, error) {
	return 6, nil
}

func TestGetERC20InfoCaches(t *testing.T) {
	t.Parallel()

	r := &countingReader{}
	addr := common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	for i := 0; i < 3; i++ {
		info, err := GetERC20Info(context.Background(), r, "evm-1-cache-test", addr)
		require.NoError(t, err)
		assert.Equal(t, ERC20Info{Name: "Tether USD", Symbol: "USDT", Decimals: 6}, info)
	}
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestGetERC20InfoError(t *testing.T) {
	t.Parallel()

	r := &countingReader{fail: true}
	_, err := GetERC20Info(context.Background(), r, "evm-1-error-test", common.Address{})
	require.Error(t, err)
	assert.True(t, IsNotContract(err))
	assert.False(t, IsNotContract(nil))
}
