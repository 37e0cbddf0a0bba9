// Package curvemath implements the pure math of a constant-liquidity price
// segment. Prices are square roots of the reference-per-traded asset ratio,
// scaled by 2^96 (Q96), which makes every reserve/price relation linear in
// the scaled square root and keeps divisions out of the hot path.
package curvemath

import (
	"errors"
	"math/big"

	"github.com/bondex-network/bondex-daemon/pkg/fixedmath"
)

// MaxFee is the fee denominator: fee rates are expressed in parts-per-million.
const MaxFee = 1_000_000

// Q96Resolution is the number of fractional bits of a sqrt price.
const Q96Resolution = 96

// Q96 is the fixed-point scale of a sqrt price, 2^96.
var Q96 = new(big.Int).Lsh(big.NewInt(1), Q96Resolution)

var (
	// ErrInvalidPriceRange is returned when a segment's bounds are not
	// strictly positive and ordered.
	ErrInvalidPriceRange = errors.New("curvemath: invalid price range")
	// ErrZeroLiquidity ...
	ErrZeroLiquidity = errors.New("curvemath: liquidity must be greater than zero")
	// ErrSegmentOverflow is returned when a signed amount moves the price
	// out of the representable segment range.
	ErrSegmentOverflow = errors.New("curvemath: amount exceeds segment range")
)

// LiquidityFromAmount0 derives the liquidity constant of a segment
// [pLow, pHigh] whose traded-asset capacity is amount0:
//
//	L = floor(amount0 * pLow * pHigh / ((pHigh - pLow) << 96))
func LiquidityFromAmount0(pLow, pHigh, amount0 *big.Int) (*big.Int, error) {
	if pLow.Sign() <= 0 || pLow.Cmp(pHigh) >= 0 {
		return nil, ErrInvalidPriceRange
	}
	denom := new(big.Int).Lsh(new(big.Int).Sub(pHigh, pLow), Q96Resolution)
	return fixedmath.FullMulDiv(amount0, new(big.Int).Mul(pLow, pHigh), denom)
}

// Amount0 returns the traded-asset amount spanning [pLow, pHigh] at
// liquidity l, rounded up when the caller must supply it and down when the
// caller receives it.
func Amount0(pLow, pHigh, l *big.Int, roundUp bool) (*big.Int, error) {
	if pLow.Sign() <= 0 || pLow.Cmp(pHigh) > 0 {
		return nil, ErrInvalidPriceRange
	}
	if l.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	numerator := new(big.Int).Lsh(l, Q96Resolution)
	diff := new(big.Int).Sub(pHigh, pLow)
	if roundUp {
		amount, err := fixedmath.FullMulDivRoundUp(numerator, diff, pHigh)
		if err != nil {
			return nil, err
		}
		return fixedmath.CeilDiv(amount, pLow)
	}
	amount, err := fixedmath.FullMulDiv(numerator, diff, pHigh)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Quo(amount, pLow), nil
}

// Amount1 returns the reference-asset amount spanning [pLow, pHigh] at
// liquidity l, rounded analogously to Amount0.
func Amount1(pLow, pHigh, l *big.Int, roundUp bool) (*big.Int, error) {
	if pLow.Sign() <= 0 || pLow.Cmp(pHigh) > 0 {
		return nil, ErrInvalidPriceRange
	}
	if l.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	diff := new(big.Int).Sub(pHigh, pLow)
	if roundUp {
		return fixedmath.FullMulDivRoundUp(l, diff, Q96)
	}
	return fixedmath.FullMulDiv(l, diff, Q96)
}

// NextPriceFromAmount0 solves for the sqrt price reached after adding
// (positive) or removing (negative) amount0 of traded asset at fixed
// liquidity:
//
//	p' = l*2^96*p / (l*2^96 + amount0*p)
//
// The result always rounds up so the market never over-pays output.
func NextPriceFromAmount0(p, l, amount0 *big.Int) (*big.Int, error) {
	if p.Sign() <= 0 {
		return nil, ErrInvalidPriceRange
	}
	if l.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	numerator := new(big.Int).Lsh(l, Q96Resolution)
	denominator := new(big.Int).Add(numerator, new(big.Int).Mul(amount0, p))
	if denominator.Sign() <= 0 {
		return nil, ErrSegmentOverflow
	}
	return fixedmath.FullMulDivRoundUp(numerator, p, denominator)
}

// NextPriceFromAmount1 solves the symmetric case for a signed
// reference-asset amount:
//
//	p' = (p*l + amount1*2^96) / l
//
// The result always rounds down.
func NextPriceFromAmount1(p, l, amount1 *big.Int) (*big.Int, error) {
	if p.Sign() <= 0 {
		return nil, ErrInvalidPriceRange
	}
	if l.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}
	numerator := new(big.Int).Add(
		new(big.Int).Mul(p, l),
		new(big.Int).Lsh(amount1, Q96Resolution),
	)
	if numerator.Sign() <= 0 {
		return nil, ErrSegmentOverflow
	}
	return new(big.Int).Quo(numerator, l), nil
}
