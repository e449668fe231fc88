package reader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const TIMEOUT time.Duration = 4 * time.Second

type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	timeout   time.Duration
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string, timeout time.Duration) *OneNodeReader {
	if timeout <= 0 {
		timeout = TIMEOUT
	}
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
		timeout:  timeout,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) EthClient(ctx context.Context) (*ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.ethClient != nil {
		return onr.ethClient, nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, onr.timeout)
	defer cancel()
	client, err := rpc.DialContext(dialCtx, onr.NodeURL())
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(onr.client)
	return onr.ethClient, nil
}

func (onr *OneNodeReader) ChainID(ctx context.Context) (uint64, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(ctx, onr.timeout)
	defer cancel()
	id, err := ethcli.ChainID(timeout)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (onr *OneNodeReader) ReadContractToBytes(ctx context.Context, caddr common.Address, abi *abi.ABI, method string, args ...interface{}) ([]byte, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	data, err := abi.Pack(method, args...)
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, onr.timeout)
	defer cancel()

	return ethcli.CallContract(timeout, ethereum.CallMsg{
		To:   &caddr,
		Data: data,
	}, nil)
}

func (onr *OneNodeReader) Close() {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		onr.client.Close()
		onr.client, onr.ethClient = nil, nil
	}
}
