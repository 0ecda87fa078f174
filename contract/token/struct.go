package token

import (
	"io"

	"github.com/meverselabs/farms/common"
	"github.com/meverselabs/farms/common/bin"
)

// AssetInfo describes a fungible asset of the ledger
type AssetInfo struct {
	Address  common.Address `json:"address"`
	Issuer   common.Address `json:"issuer"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

func (s *AssetInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Address); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Issuer); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, s.Decimals); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *AssetInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Address); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Issuer); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Symbol); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &s.Decimals); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
