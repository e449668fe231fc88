package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	infocommon "github.com/bifrost-platform/asset-info-v2/common"
)

var ErrNoNodes = errors.New("no nodes configured")

var (
	erc20ABI        = mustParseABI(infocommon.ERC20ABI)
	erc20Bytes32ABI = mustParseABI(infocommon.ERC20Bytes32ABI)
)

func mustParseABI(def string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid abi: %s", err))
	}
	return &parsed
}

// ERC20Reader reads token metadata from one network.
type ERC20Reader interface {
	ChainID(ctx context.Context) (uint64, error)
	ERC20Name(ctx context.Context, caddr common.Address) (string, error)
	ERC20Symbol(ctx context.Context, caddr common.Address) (string, error)
	ERC20Decimal(ctx context.Context, caddr common.Address) (uint64, error)
	// Close releases the connections opened by earlier calls.
	Close()
}

// EthReader asks every node of a network at once and returns the first
// successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string, timeout time.Duration) *EthReader {
	ns := map[string]EthereumNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url, timeout)
	}
	return &EthReader{nodes: ns}
}

func NewEthReaderWithNodes(nodes ...EthereumNode) *EthReader {
	ns := map[string]EthereumNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{nodes: ns}
}

func (er *EthReader) Close() {
	for _, n := range er.nodes {
		n.Close()
	}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResult[T any] struct {
	Value T
	Error error
}

func fanOut[T any](er *EthReader, call func(n EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, ErrNoNodes
	}
	resCh := make(chan nodeResult[T], len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			v, err := call(n)
			resCh <- nodeResult[T]{
				Value: v,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ChainID(ctx context.Context) (uint64, error) {
	return fanOut(er, func(n EthereumNode) (uint64, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) ReadContractToBytes(
	ctx context.Context,
	caddr common.Address,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	return fanOut(er, func(n EthereumNode) ([]byte, error) {
		return n.ReadContractToBytes(ctx, caddr, abi, method, args...)
	})
}

func (er *EthReader) ReadContractWithABI(
	ctx context.Context,
	result interface{},
	caddr common.Address,
	abi *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(ctx, caddr, abi, method, args...)
	if err != nil {
		return err
	}
	return abi.UnpackIntoInterface(result, method, responseBytes)
}

// readERC20Text reads name or symbol, accepting both the string return type
// and the legacy bytes32 one.
func (er *EthReader) readERC20Text(ctx context.Context, caddr common.Address, method string) (string, error) {
	responseBytes, err := er.ReadContractToBytes(ctx, caddr, erc20ABI, method)
	if err != nil {
		return "", err
	}
	var result string
	if err := erc20ABI.UnpackIntoInterface(&result, method, responseBytes); err == nil {
		return result, nil
	}
	var raw [32]byte
	if err := erc20Bytes32ABI.UnpackIntoInterface(&raw, method, responseBytes); err != nil {
		return "", fmt.Errorf("%s of %s is neither string nor bytes32: %w", method, caddr.Hex(), err)
	}
	return string(bytes.TrimRight(raw[:], "\x00")), nil
}

func (er *EthReader) ERC20Name(ctx context.Context, caddr common.Address) (string, error) {
	return er.readERC20Text(ctx, caddr, "name")
}

func (er *EthReader) ERC20Symbol(ctx context.Context, caddr common.Address) (string, error) {
	return er.readERC20Text(ctx, caddr, "symbol")
}

func (er *EthReader) ERC20Decimal(ctx context.Context, caddr common.Address) (uint64, error) {
	var result uint8
	err := er.ReadContractWithABI(ctx, &result, caddr, erc20ABI, "decimals")
	return uint64(result), err
}
