package curvemath

import (
	"errors"
	"math/big"

	"github.com/bondex-network/bondex-daemon/pkg/fixedmath"
)

// ErrInvalidFeeRate is returned when a fee rate exceeds the MaxFee
// denominator.
var ErrInvalidFeeRate = errors.New("curvemath: fee rate out of range")

// SegmentQuote is the result of quoting a single price segment.
type SegmentQuote struct {
	// NextSqrtPriceX96 is the price reached by the quoted move.
	NextSqrtPriceX96 *big.Int
	// AmountIn is the input consumed, net of fee.
	AmountIn *big.Int
	// AmountOut is the output produced.
	AmountOut *big.Int
	// FeeAmount is the fee collected, denominated in the input asset.
	FeeAmount *big.Int
}

// QuoteSegment quotes a move within one segment of liquidity l, from sqrt
// price p toward targetP. The direction of the trade follows from the price
// comparison: moving toward a lower price consumes traded asset and produces
// reference asset, and vice versa.
//
// A positive delta is an exact-input request capped by what the caller
// supplies, a negative one an exact-output request capped by what the caller
// demands back. The caller must never pass a zero delta.
//
// Rounding is chosen so the market never under-collects fee nor over-pays
// output.
func QuoteSegment(p, targetP, l, delta *big.Int, feeRate uint64) (*SegmentQuote, error) {
	if feeRate > MaxFee {
		return nil, ErrInvalidFeeRate
	}
	zeroForOne := p.Cmp(targetP) >= 0
	exactIn := delta.Sign() > 0
	fee := new(big.Int).SetUint64(feeRate)
	feeComplement := new(big.Int).SetUint64(MaxFee - feeRate)

	var next, amountIn, amountOut, feeAmount *big.Int
	var err error

	if exactIn {
		// Fee comes off the input up front.
		remaining, err := fixedmath.FullMulDiv(delta, feeComplement, big.NewInt(MaxFee))
		if err != nil {
			return nil, err
		}
		if zeroForOne {
			amountIn, err = Amount0(targetP, p, l, true)
		} else {
			amountIn, err = Amount1(p, targetP, l, true)
		}
		if err != nil {
			return nil, err
		}
		if remaining.Cmp(amountIn) >= 0 {
			// Segment exhausted: fee is layered on top of the input
			// needed to reach the boundary.
			next = new(big.Int).Set(targetP)
			feeAmount, err = fixedmath.CeilDiv(new(big.Int).Mul(amountIn, fee), feeComplement)
			if err != nil {
				return nil, err
			}
		} else {
			amountIn = remaining
			if zeroForOne {
				next, err = NextPriceFromAmount0(p, l, remaining)
			} else {
				next, err = NextPriceFromAmount1(p, l, remaining)
			}
			if err != nil {
				return nil, err
			}
			feeAmount = new(big.Int).Sub(delta, amountIn)
		}
		if zeroForOne {
			amountOut, err = Amount1(next, p, l, false)
		} else {
			amountOut, err = Amount0(p, next, l, false)
		}
		if err != nil {
			return nil, err
		}
		return &SegmentQuote{next, amountIn, amountOut, feeAmount}, nil
	}

	requested := new(big.Int).Neg(delta)
	if zeroForOne {
		amountOut, err = Amount1(targetP, p, l, false)
	} else {
		amountOut, err = Amount0(p, targetP, l, false)
	}
	if err != nil {
		return nil, err
	}
	if requested.Cmp(amountOut) >= 0 {
		next = new(big.Int).Set(targetP)
	} else {
		amountOut = requested
		if zeroForOne {
			next, err = NextPriceFromAmount1(p, l, delta)
		} else {
			next, err = NextPriceFromAmount0(p, l, delta)
		}
		if err != nil {
			return nil, err
		}
	}
	if zeroForOne {
		amountIn, err = Amount0(next, p, l, true)
	} else {
		amountIn, err = Amount1(p, next, l, true)
	}
	if err != nil {
		return nil, err
	}
	feeAmount, err = fixedmath.CeilDiv(new(big.Int).Mul(amountIn, fee), feeComplement)
	if err != nil {
		return nil, err
	}
	return &SegmentQuote{next, amountIn, amountOut, feeAmount}, nil
}
