package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
)

type AddressKind uint8

const (
	AddressEvm AddressKind = iota + 1
	AddressBitcoin
)

func (k AddressKind) String() string {
	switch k {
	case AddressEvm:
		return "evm"
	case AddressBitcoin:
		return "bitcoin"
	default:
		return "unknown"
	}
}

var evmAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

var bitcoinNets = []*chaincfg.Params{&chaincfg.MainNetParams, &chaincfg.TestNet3Params}

// Address is a chain specific account or contract address. Exactly one
// variant is set; the zero value is invalid.
type Address struct {
	kind AddressKind
	evm  common.Address
	btc  btcutil.Address
}

// ParseAddress picks the variant from the shape of s: 0x-prefixed values are
// EVM addresses, anything else is tried as Bitcoin.
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return ParseEvmAddress(s)
	}
	return ParseBitcoinAddress(s)
}

// ParseEvmAddress accepts only the EIP-55 checksum spelling of an address.
func ParseEvmAddress(s string) (Address, error) {
	if !evmAddressPattern.MatchString(s) {
		return Address{}, schemaErr("address-pattern", s, "must match %s", evmAddressPattern)
	}
	addr := common.HexToAddress(s)
	if addr.Hex() != s {
		return Address{}, schemaErr("address-checksum", s, "must be checksum encoded as %s", addr.Hex())
	}
	return Address{kind: AddressEvm, evm: addr}, nil
}

func ParseBitcoinAddress(s string) (Address, error) {
	for _, params := range bitcoinNets {
		addr, err := btcutil.DecodeAddress(s, params)
		if err == nil && addr.IsForNet(params) {
			return Address{kind: AddressBitcoin, btc: addr}, nil
		}
	}
	return Address{}, schemaErr("address-bitcoin", s, "must be a valid bitcoin address")
}

// EvmAddress builds the EVM variant from an already decoded value.
func EvmAddress(addr common.Address) Address {
	return Address{kind: AddressEvm, evm: addr}
}

func (a Address) Kind() AddressKind { return a.kind }
func (a Address) IsZero() bool      { return a.kind == 0 }

// Evm returns the EVM value and whether a holds one.
func (a Address) Evm() (common.Address, bool) {
	return a.evm, a.kind == AddressEvm
}

func (a Address) String() string {
	switch a.kind {
	case AddressEvm:
		return a.evm.Hex()
	case AddressBitcoin:
		return a.btc.EncodeAddress()
	default:
		return ""
	}
}

// Compare orders addresses of the same variant by value. EVM addresses
// compare by their 20 bytes, so two spellings of one address are equal.
// Addresses of different variants are not comparable and yield an error
// wrapping ErrIncomparableAddress.
func (a Address) Compare(b Address) (int, error) {
	if a.kind == 0 || b.kind == 0 {
		return 0, ErrUnknownAddressKind
	}
	if a.kind != b.kind {
		return 0, fmt.Errorf("%w: %s and %s", ErrIncomparableAddress, a.kind, b.kind)
	}
	switch a.kind {
	case AddressEvm:
		return bytes.Compare(a.evm.Bytes(), b.evm.Bytes()), nil
	case AddressBitcoin:
		if c := bytes.Compare(a.btc.ScriptAddress(), b.btc.ScriptAddress()); c != 0 {
			return c, nil
		}
		return strings.Compare(strings.ToLower(a.btc.EncodeAddress()), strings.ToLower(b.btc.EncodeAddress())), nil
	default:
		return 0, ErrUnknownAddressKind
	}
}

func (a Address) Equal(b Address) (bool, error) {
	c, err := a.Compare(b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	if a.kind == 0 {
		return nil, ErrUnknownAddressKind
	}
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data, "address-type")
	if err != nil {
		return err
	}
	v, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
