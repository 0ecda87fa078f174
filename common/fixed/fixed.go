// Package fixed provides the overflow checked integer helpers used by the
// reward accounting. Two 64-bit operands are combined in a 128-bit working
// width and narrowed back to 64 bits.
package fixed

import (
	"math/bits"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// WorkingBits is the width of the intermediate products
const WorkingBits = 128

// ErrNumericalOverflow is returned when a value can not be represented
// exactly, including a division by zero
var ErrNumericalOverflow = errors.New("numerical overflow error")

// Mul128 returns a*b as a 128-bit intermediate
func Mul128(a, b uint64) *uint256.Int {
	x := new(uint256.Int).SetUint64(a)
	return x.Mul(x, new(uint256.Int).SetUint64(b))
}

// MulDiv returns floor(a*b/d)
func MulDiv(a, b, d uint64) (uint64, error) {
	return Div(Mul128(a, b), d)
}

// MulMulDiv returns floor(a*b*c/d); both products must fit in the working width
func MulMulDiv(a, b, c, d uint64) (uint64, error) {
	x, err := MulWide(Mul128(a, b), c)
	if err != nil {
		return 0, err
	}
	return Div(x, d)
}

// MulWide multiplies the intermediate by v and checks the working width
func MulWide(x *uint256.Int, v uint64) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, new(uint256.Int).SetUint64(v))
	if overflow || z.BitLen() > WorkingBits {
		return nil, errors.WithStack(ErrNumericalOverflow)
	}
	return z, nil
}

// Div divides the intermediate by d and narrows the quotient to 64 bits
func Div(x *uint256.Int, d uint64) (uint64, error) {
	if d == 0 || x.BitLen() > WorkingBits {
		return 0, errors.WithStack(ErrNumericalOverflow)
	}
	q := new(uint256.Int).Div(x, new(uint256.Int).SetUint64(d))
	if !q.IsUint64() {
		return 0, errors.WithStack(ErrNumericalOverflow)
	}
	return q.Uint64(), nil
}

// Add64 returns a+b
func Add64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.WithStack(ErrNumericalOverflow)
	}
	return sum, nil
}

// Sub64 returns a-b
func Sub64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errors.WithStack(ErrNumericalOverflow)
	}
	return diff, nil
}
