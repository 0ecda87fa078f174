package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	n, err := parseAmount("1.5", 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500000000), n)

	n, err = parseAmount("42", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)

	n, err = parseAmount("18446744073709551615", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), n)

	for _, str := range []string{"0.1", "-1", "abc", "18446744073709551616"} {
		_, err := parseAmount(str, 0)
		assert.Equal(t, errInvalidAmount, errors.Cause(err), str)
	}
}

func TestFormatAmount(t *testing.T) {
	str, err := formatAmount("1500000000", 9)
	require.NoError(t, err)
	assert.Equal(t, "1.5", str)

	str, err = formatAmount("7", 0)
	require.NoError(t, err)
	assert.Equal(t, "7", str)

	_, err = formatAmount("x", 0)
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	r, err := parseRate("0.003")
	require.NoError(t, err)
	assert.Equal(t, uint64(3000000), r)

	r, err = parseRate("1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000000), r)
}
