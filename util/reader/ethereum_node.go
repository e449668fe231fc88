package reader

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// EthereumNode is a single JSON-RPC endpoint.
type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ChainID(ctx context.Context) (uint64, error)
	ReadContractToBytes(
		ctx context.Context,
		caddr common.Address,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) ([]byte, error)
	Close()
}
