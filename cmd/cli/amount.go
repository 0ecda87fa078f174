package main

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	errInvalidAmount = errors.New("invalid amount")
	maxAmount        = decimal.RequireFromString("18446744073709551615")
)

// parseAmount converts the decimal string to the integer amount of the decimals
func parseAmount(str string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return 0, errors.Wrap(errInvalidAmount, str)
	}
	d = d.Shift(decimals)
	if d.IsNegative() || !d.Equal(d.Truncate(0)) || d.GreaterThan(maxAmount) {
		return 0, errors.Wrap(errInvalidAmount, str)
	}
	return d.BigInt().Uint64(), nil
}

// formatAmount converts the integer amount to the decimal string of the decimals
func formatAmount(str string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return "", errors.Wrap(errInvalidAmount, str)
	}
	return d.Shift(-decimals).String(), nil
}

// parseRate converts a fraction like 0.003 to the rate over 1e9
func parseRate(str string) (uint64, error) {
	return parseAmount(str, 9)
}
