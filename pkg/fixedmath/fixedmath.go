// Package fixedmath provides overflow-checked integer primitives for the
// curve math. All values are arbitrary-precision big.Ints, with explicit
// range checks against the 127/128/256 bit widths the market accounting
// relies on.
package fixedmath

import (
	"errors"
	"math/big"
)

var (
	// ErrSignedCastOverflow is returned when a value does not fit in the
	// signed trade-size range of ±(2^127 - 1).
	ErrSignedCastOverflow = errors.New("fixedmath: signed 127-bit cast overflow")
	// ErrUnsignedCastOverflow is returned when a value is negative or does
	// not fit in 127 bits.
	ErrUnsignedCastOverflow = errors.New("fixedmath: unsigned 127-bit cast overflow")
	// ErrToSignedOverflow is returned when an unsigned value cannot be
	// reinterpreted as a signed one.
	ErrToSignedOverflow = errors.New("fixedmath: unsigned to signed conversion overflow")
	// ErrAddDeltaOverflow is returned when adding a signed delta to an
	// unsigned 128-bit value leaves the 128-bit range.
	ErrAddDeltaOverflow = errors.New("fixedmath: signed delta addition overflow")
	// ErrDivisionByZero ...
	ErrDivisionByZero = errors.New("fixedmath: division by zero")
	// ErrMulDivOverflow is returned when the result of a full-precision
	// multiply-then-divide does not fit in 256 bits.
	ErrMulDivOverflow = errors.New("fixedmath: muldiv result overflow")
)

var (
	// MaxInt127 is the largest trade size accepted by the market, 2^127 - 1.
	MaxInt127 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	// MaxUint128 is the largest value a reserve may assume, 2^128 - 1.
	MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	// MaxInt256 bounds unsigned to signed reinterpretation, 2^255 - 1.
	MaxInt256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
)

// CastToSigned127 validates that x fits in the signed 128-bit range reduced
// by one bit of headroom, ie. |x| <= 2^127 - 1.
func CastToSigned127(x *big.Int) (*big.Int, error) {
	if x.CmpAbs(MaxInt127) > 0 {
		return nil, ErrSignedCastOverflow
	}
	return new(big.Int).Set(x), nil
}

// CastToUnsigned127 validates that x is non-negative and fits in 127 bits.
func CastToUnsigned127(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 || x.BitLen() > 127 {
		return nil, ErrUnsignedCastOverflow
	}
	return new(big.Int).Set(x), nil
}

// ToSigned converts an unsigned value to a signed one, failing if the value
// would flip negative when reinterpreted in 256 bits.
func ToSigned(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 || x.Cmp(MaxInt256) > 0 {
		return nil, ErrToSignedOverflow
	}
	return new(big.Int).Set(x), nil
}

// AddSignedDelta128 adds a signed delta to an unsigned 128-bit value. It
// fails if the mathematical result is negative or exceeds 128 bits, which
// covers both overflow and underflow in a single check.
func AddSignedDelta128(x, delta *big.Int) (*big.Int, error) {
	z := new(big.Int).Add(x, delta)
	if z.Sign() < 0 || z.BitLen() > 128 {
		return nil, ErrAddDeltaOverflow
	}
	return z, nil
}

// CeilDiv divides x by d rounding the quotient toward positive infinity.
func CeilDiv(x, d *big.Int) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q, r := new(big.Int).QuoRem(x, d, new(big.Int))
	if r.Sign() != 0 && (x.Sign() > 0) == (d.Sign() > 0) {
		q.Add(q, big.NewInt(1))
	}
	return q, nil
}

// FullMulDiv computes floor(x*y/d) with full intermediate precision, so the
// product never overflows before the division. The result must fit in 256
// bits.
func FullMulDiv(x, y, d *big.Int) (*big.Int, error) {
	return fullMulDiv(x, y, d, false)
}

// FullMulDivRoundUp computes ceil(x*y/d) with full intermediate precision.
func FullMulDivRoundUp(x, y, d *big.Int) (*big.Int, error) {
	return fullMulDiv(x, y, d, true)
}

func fullMulDiv(x, y, d *big.Int, roundUp bool) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	q, r := new(big.Int).QuoRem(prod, d, new(big.Int))
	if roundUp && r.Sign() != 0 && (prod.Sign() > 0) == (d.Sign() > 0) {
		q.Add(q, big.NewInt(1))
	}
	if q.BitLen() > 256 {
		return nil, ErrMulDivOverflow
	}
	return q, nil
}
