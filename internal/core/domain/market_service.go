package domain

import (
	"math/big"

	"github.com/bondex-network/bondex-daemon/pkg/curvemath"
	"github.com/bondex-network/bondex-daemon/pkg/fixedmath"
)

// QuoteResult holds the amounts of a quoted or executed trade. AmountIn is
// net of fee; AmountIn + FeeAmountIn is what the trader pays.
type QuoteResult struct {
	NextSqrtPriceX96 *big.Int
	AmountIn         *big.Int
	AmountOut        *big.Int
	FeeAmountIn      *big.Int
}

// TradeEvent is the record emitted by every executed swap.
type TradeEvent struct {
	MarketId  string
	Sender    string
	Recipient string
	// BaseDelta and QuoteDelta are the signed asset movements of the trade:
	// positive toward the market, negative toward the trader.
	BaseDelta  *big.Int
	QuoteDelta *big.Int
	// FeeAmountIn is the fee paid in input-asset terms, FeeAmountQuote the
	// same fee once denominated in the quote asset.
	FeeAmountIn    *big.Int
	FeeAmountQuote *big.Int
	// SqrtPriceX96 is the price the market settled at.
	SqrtPriceX96 *big.Int
}

// GetDeltaAmounts quotes a swap against the current market state without
// mutating it. baseForQuote selects the direction: true means the base asset
// is the input and the price moves down, false the opposite. delta is the
// signed trade size (positive exact-input, negative exact-output) and
// priceLimit bounds how far the price may travel; it must lie strictly on
// the correct side of the current price and within [pA, pMax].
//
// A zero delta is tolerated here and quotes as a no-op.
func (m *Market) GetDeltaAmounts(
	baseForQuote bool, delta, priceLimit *big.Int,
) (*QuoteResult, error) {
	if !m.Initialized {
		return nil, ErrMarketNotInitialized
	}
	return m.deltaAmountsAt(m.SqrtPriceX96, baseForQuote, delta, priceLimit, m.FeeRate)
}

// Swap executes a trade. The caller is expected to have pre-funded the
// market's ledger account with the input asset; the market verifies its held
// balance against the updated reserves before paying any output.
//
// When the base asset is the input, the collected base fee is converted to
// quote terms by pushing it through the curve a second time with zero fee,
// which can move the settled price further than the primary swap did.
//
// Price and reserves are committed only after every transfer and the
// collector notification succeeded: a failing call leaves both the market
// and the ledger unchanged, transfers already performed are reversed.
func (m *Market) Swap(
	ledger AssetLedger, collector FeeCollector,
	sender, recipient string,
	baseForQuote bool, delta, priceLimit *big.Int,
) (*TradeEvent, error) {
	if !m.Initialized {
		return nil, ErrMarketNotInitialized
	}
	if delta == nil || delta.Sign() == 0 {
		return nil, ErrSwapZeroAmount
	}
	if m.Migrated {
		return nil, ErrMarketMigrated
	}
	if !m.tryLock() {
		return nil, ErrMarketLocked
	}
	defer m.unlock()

	res, err := m.deltaAmountsAt(m.SqrtPriceX96, baseForQuote, delta, priceLimit, m.FeeRate)
	if err != nil {
		return nil, err
	}

	if baseForQuote {
		return m.swapBaseForQuote(ledger, collector, sender, recipient, res)
	}
	return m.swapQuoteForBase(ledger, collector, sender, recipient, res)
}

func (m *Market) swapBaseForQuote(
	ledger AssetLedger, collector FeeCollector,
	sender, recipient string, res *QuoteResult,
) (*TradeEvent, error) {
	nextPrice := res.NextSqrtPriceX96
	feeBase := res.FeeAmountIn
	feeQuote := new(big.Int)

	// The base-denominated fee is sold into the curve at the post-swap
	// price, fee-free, down to the lower curve boundary.
	if feeBase.Sign() > 0 && nextPrice.Cmp(m.SqrtPriceAX96) > 0 {
		conv, err := m.deltaAmountsAt(nextPrice, true, feeBase, m.SqrtPriceAX96, 0)
		if err != nil {
			return nil, err
		}
		nextPrice = conv.NextSqrtPriceX96
		feeQuote = conv.AmountOut
	}

	newBaseReserve, err := fixedmath.AddSignedDelta128(
		m.BaseReserve, new(big.Int).Add(res.AmountIn, feeBase),
	)
	if err != nil {
		return nil, err
	}
	newQuoteReserve, err := fixedmath.AddSignedDelta128(
		m.QuoteReserve, new(big.Int).Neg(new(big.Int).Add(res.AmountOut, feeQuote)),
	)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.BalanceOf(m.Id, m.BaseAsset)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(newBaseReserve) < 0 {
		return nil, ErrMarketInsufficientBalance
	}
	quoteBalance, err := ledger.BalanceOf(m.Id, m.QuoteAsset)
	if err != nil {
		return nil, err
	}
	if quoteBalance.Cmp(new(big.Int).Add(res.AmountOut, feeQuote)) < 0 {
		return nil, ErrMarketInsufficientBalance
	}

	if res.AmountOut.Sign() > 0 {
		if err := ledger.Transfer(m.Id, recipient, m.QuoteAsset, res.AmountOut); err != nil {
			return nil, err
		}
	}
	if feeQuote.Sign() > 0 {
		if err := ledger.Transfer(m.Id, m.CollectorAddress, m.QuoteAsset, feeQuote); err != nil {
			m.refund(ledger, recipient, m.QuoteAsset, res.AmountOut)
			return nil, err
		}
		if err := collector.OnFeeReceived(m.QuoteAsset, feeQuote); err != nil {
			m.refund(ledger, m.CollectorAddress, m.QuoteAsset, feeQuote)
			m.refund(ledger, recipient, m.QuoteAsset, res.AmountOut)
			return nil, err
		}
	}

	m.SqrtPriceX96 = nextPrice
	m.BaseReserve = newBaseReserve
	m.QuoteReserve = newQuoteReserve

	return &TradeEvent{
		MarketId:       m.Id,
		Sender:         sender,
		Recipient:      recipient,
		BaseDelta:      new(big.Int).Add(res.AmountIn, feeBase),
		QuoteDelta:     new(big.Int).Neg(res.AmountOut),
		FeeAmountIn:    new(big.Int).Set(feeBase),
		FeeAmountQuote: feeQuote,
		SqrtPriceX96:   new(big.Int).Set(nextPrice),
	}, nil
}

func (m *Market) swapQuoteForBase(
	ledger AssetLedger, collector FeeCollector,
	sender, recipient string, res *QuoteResult,
) (*TradeEvent, error) {
	// Fee is already quote-denominated, no conversion pass needed.
	feeQuote := res.FeeAmountIn

	newQuoteReserve, err := fixedmath.AddSignedDelta128(m.QuoteReserve, res.AmountIn)
	if err != nil {
		return nil, err
	}
	newBaseReserve, err := fixedmath.AddSignedDelta128(
		m.BaseReserve, new(big.Int).Neg(res.AmountOut),
	)
	if err != nil {
		return nil, err
	}

	balance, err := ledger.BalanceOf(m.Id, m.QuoteAsset)
	if err != nil {
		return nil, err
	}
	required := new(big.Int).Add(newQuoteReserve, feeQuote)
	if balance.Cmp(required) < 0 {
		return nil, ErrMarketInsufficientBalance
	}
	baseBalance, err := ledger.BalanceOf(m.Id, m.BaseAsset)
	if err != nil {
		return nil, err
	}
	if baseBalance.Cmp(res.AmountOut) < 0 {
		return nil, ErrMarketInsufficientBalance
	}

	if res.AmountOut.Sign() > 0 {
		if err := ledger.Transfer(m.Id, recipient, m.BaseAsset, res.AmountOut); err != nil {
			return nil, err
		}
	}
	if feeQuote.Sign() > 0 {
		if err := ledger.Transfer(m.Id, m.CollectorAddress, m.QuoteAsset, feeQuote); err != nil {
			m.refund(ledger, recipient, m.BaseAsset, res.AmountOut)
			return nil, err
		}
		if err := collector.OnFeeReceived(m.QuoteAsset, feeQuote); err != nil {
			m.refund(ledger, m.CollectorAddress, m.QuoteAsset, feeQuote)
			m.refund(ledger, recipient, m.BaseAsset, res.AmountOut)
			return nil, err
		}
	}

	m.SqrtPriceX96 = new(big.Int).Set(res.NextSqrtPriceX96)
	m.BaseReserve = newBaseReserve
	m.QuoteReserve = newQuoteReserve

	return &TradeEvent{
		MarketId:       m.Id,
		Sender:         sender,
		Recipient:      recipient,
		BaseDelta:      new(big.Int).Neg(res.AmountOut),
		QuoteDelta:     new(big.Int).Add(res.AmountIn, feeQuote),
		FeeAmountIn:    new(big.Int).Set(feeQuote),
		FeeAmountQuote: new(big.Int).Set(feeQuote),
		SqrtPriceX96:   new(big.Int).Set(res.NextSqrtPriceX96),
	}, nil
}

// refund returns already-transferred funds to the market while unwinding a
// failed swap. The amount just left the market, so the reversal cannot lack
// funds.
func (m *Market) refund(ledger AssetLedger, from, asset string, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	// nolint
	ledger.Transfer(from, m.Id, asset, amount)
}

// deltaAmountsAt runs the two-segment traversal from an arbitrary starting
// price. It is shared verbatim by read-only quoting, swap execution and the
// fee-conversion pass.
func (m *Market) deltaAmountsAt(
	price *big.Int, baseForQuote bool, delta, priceLimit *big.Int, feeRate uint64,
) (*QuoteResult, error) {
	if err := m.validatePriceLimit(price, baseForQuote, priceLimit); err != nil {
		return nil, err
	}
	if delta == nil {
		return nil, ErrSwapZeroAmount
	}
	signed, err := fixedmath.CastToSigned127(delta)
	if err != nil {
		return nil, err
	}
	if signed.Sign() == 0 {
		return &QuoteResult{
			NextSqrtPriceX96: new(big.Int).Set(price),
			AmountIn:         new(big.Int),
			AmountOut:        new(big.Int),
			FeeAmountIn:      new(big.Int),
		}, nil
	}

	exactIn := signed.Sign() > 0
	remaining := signed
	amountIn := new(big.Int)
	amountOut := new(big.Int)
	feeAmount := new(big.Int)

	// At most two segment evaluations: the active segment, then, if the
	// boundary price pB was reached with amount to spare, the other one.
	for leg := 0; leg < 2; leg++ {
		liquidity, target := m.activeSegment(price, baseForQuote, priceLimit)
		q, err := curvemath.QuoteSegment(price, target, liquidity, remaining, feeRate)
		if err != nil {
			return nil, err
		}
		amountIn.Add(amountIn, q.AmountIn)
		amountOut.Add(amountOut, q.AmountOut)
		feeAmount.Add(feeAmount, q.FeeAmount)
		price = q.NextSqrtPriceX96

		if exactIn {
			consumed := new(big.Int).Add(q.AmountIn, q.FeeAmount)
			remaining = new(big.Int).Sub(remaining, consumed)
		} else {
			remaining = new(big.Int).Add(remaining, q.AmountOut)
		}
		if remaining.Sign() == 0 || price.Cmp(priceLimit) == 0 {
			break
		}
	}

	if _, err := fixedmath.CastToUnsigned127(
		new(big.Int).Add(amountIn, feeAmount),
	); err != nil {
		return nil, err
	}
	if _, err := fixedmath.CastToUnsigned127(amountOut); err != nil {
		return nil, err
	}

	return &QuoteResult{
		NextSqrtPriceX96: new(big.Int).Set(price),
		AmountIn:         amountIn,
		AmountOut:        amountOut,
		FeeAmountIn:      feeAmount,
	}, nil
}

// activeSegment returns the liquidity of the segment the given price sits in
// for the given direction of travel, along with the in-segment target: the
// boundary price pB when the limit lies beyond it, the limit itself
// otherwise.
func (m *Market) activeSegment(
	price *big.Int, baseForQuote bool, priceLimit *big.Int,
) (*big.Int, *big.Int) {
	if baseForQuote {
		// Price travels down. Exactly at pB the lower segment applies.
		if price.Cmp(m.SqrtPriceBX96) > 0 {
			if priceLimit.Cmp(m.SqrtPriceBX96) < 0 {
				return m.LiquidityB, m.SqrtPriceBX96
			}
			return m.LiquidityB, priceLimit
		}
		return m.LiquidityA, priceLimit
	}
	// Price travels up. Exactly at pB the upper segment applies.
	if price.Cmp(m.SqrtPriceBX96) < 0 {
		if priceLimit.Cmp(m.SqrtPriceBX96) > 0 {
			return m.LiquidityA, m.SqrtPriceBX96
		}
		return m.LiquidityA, priceLimit
	}
	return m.LiquidityB, priceLimit
}

func (m *Market) validatePriceLimit(
	price *big.Int, baseForQuote bool, priceLimit *big.Int,
) error {
	if priceLimit == nil {
		return ErrInvalidPriceLimit
	}
	if baseForQuote {
		if priceLimit.Cmp(price) >= 0 || priceLimit.Cmp(m.SqrtPriceAX96) < 0 {
			return ErrInvalidPriceLimit
		}
		return nil
	}
	if priceLimit.Cmp(price) <= 0 || priceLimit.Cmp(m.SqrtPriceMaxX96) > 0 {
		return ErrInvalidPriceLimit
	}
	return nil
}
