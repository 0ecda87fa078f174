package common

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

type Address = common.Address

var ZeroAddr = Address{}

const (
	// AddressLength is the expected length of the address
	AddressLength = common.AddressLength
)

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	return common.BytesToAddress(b)
}

// HexToAddress returns Address with byte values of s.
// If s is larger than len(h), s will be cropped from the left.
func HexToAddress(s string) Address {
	return common.HexToAddress(s)
}

// ParseAddress parses a hex address and rejects malformed input
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return ZeroAddr, errors.Wrapf(ErrInvalidAddressFormat, "%q", s)
	}
	return common.HexToAddress(s), nil
}
