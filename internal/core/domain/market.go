package domain

import (
	"math/big"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bondex-network/bondex-daemon/pkg/curvemath"
	"github.com/bondex-network/bondex-daemon/pkg/fixedmath"
)

// Market is the entity holding the full state of a two-segment bonding-curve
// market launching a base asset against a quote (reference) asset. The curve
// shape and its liquidity are fixed at creation; the base asset and fee rate
// are bound once at initialization to support pre-computed identities.
type Market struct {
	// Id is the market identifier, also used as its ledger account.
	Id string
	// CollectorAddress receives fees and is the only identity allowed to
	// migrate the market.
	CollectorAddress string
	// BaseAsset is the traded asset launched by the market, set at
	// initialization.
	BaseAsset string
	// QuoteAsset is the reference asset the base asset trades against.
	QuoteAsset string
	// SqrtPriceAX96, SqrtPriceBX96 and SqrtPriceMaxX96 are the boundary
	// sqrt prices of the two segments, 0 < pA < pB < pMax.
	SqrtPriceAX96   *big.Int
	SqrtPriceBX96   *big.Int
	SqrtPriceMaxX96 *big.Int
	// LiquidityA and LiquidityB are the per-segment liquidity constants.
	LiquidityA *big.Int
	LiquidityB *big.Int
	// MaxTotalSupply is the base-asset supply minted to the market at
	// initialization, the sum of both segment capacities.
	MaxTotalSupply *big.Int
	// FeeRate is the swap fee in parts-per-million.
	FeeRate uint64
	// SqrtPriceX96 is the current sqrt price, always within [pA, pMax].
	SqrtPriceX96 *big.Int
	// BaseReserve and QuoteReserve track the assets owned by the curve.
	BaseReserve  *big.Int
	QuoteReserve *big.Int
	// Initialized reports whether the base asset and fee rate are bound.
	Initialized bool
	// Migrated is terminal: once true the market accepts no more swaps.
	Migrated bool

	// Exclusive-access flag guarding against logical reentrancy. Zero when
	// free, acquired and released with CAS on every swap and migration path.
	locked int32
}

// NewMarket returns a market with the given curve configuration. The two
// segment liquidities are derived from the desired base-asset capacities and
// the maximum issuable supply is their sum.
func NewMarket(
	collector, quoteAsset string,
	sqrtPriceAX96, sqrtPriceBX96, sqrtPriceMaxX96 *big.Int,
	baseCapacityA, baseCapacityB *big.Int,
) (*Market, error) {
	if collector == "" {
		return nil, ErrMarketInvalidCollector
	}
	if quoteAsset == "" {
		return nil, ErrMarketInvalidQuoteAsset
	}
	if !isValidPriceRange(sqrtPriceAX96, sqrtPriceBX96, sqrtPriceMaxX96) {
		return nil, ErrMarketInvalidPriceRange
	}
	for _, capacity := range []*big.Int{baseCapacityA, baseCapacityB} {
		if capacity == nil || capacity.Sign() <= 0 {
			return nil, ErrMarketInvalidCapacity
		}
	}
	maxSupply, err := fixedmath.CastToUnsigned127(
		new(big.Int).Add(baseCapacityA, baseCapacityB),
	)
	if err != nil {
		return nil, ErrMarketInvalidCapacity
	}

	liquidityA, err := segmentLiquidity(sqrtPriceAX96, sqrtPriceBX96, baseCapacityA)
	if err != nil {
		return nil, err
	}
	liquidityB, err := segmentLiquidity(sqrtPriceBX96, sqrtPriceMaxX96, baseCapacityB)
	if err != nil {
		return nil, err
	}

	return &Market{
		Id:               uuid.New().String(),
		CollectorAddress: collector,
		QuoteAsset:       quoteAsset,
		SqrtPriceAX96:    new(big.Int).Set(sqrtPriceAX96),
		SqrtPriceBX96:    new(big.Int).Set(sqrtPriceBX96),
		SqrtPriceMaxX96:  new(big.Int).Set(sqrtPriceMaxX96),
		LiquidityA:       liquidityA,
		LiquidityB:       liquidityB,
		MaxTotalSupply:   maxSupply,
		SqrtPriceX96:     new(big.Int).Set(sqrtPriceAX96),
		BaseReserve:      new(big.Int),
		QuoteReserve:     new(big.Int),
	}, nil
}

// Initialize binds the base asset and fee rate, mints the maximum supply to
// the market's own ledger account and opens it for trading. It can succeed
// exactly once.
func (m *Market) Initialize(ledger AssetLedger, baseAsset string, feeRate uint64) error {
	if m.Initialized {
		return ErrMarketAlreadyInitialized
	}
	if baseAsset == "" || baseAsset == m.QuoteAsset {
		return ErrMarketInvalidBaseAsset
	}
	if feeRate > curvemath.MaxFee {
		return ErrMarketInvalidFeeRate
	}

	if err := ledger.Mint(m.Id, baseAsset, m.MaxTotalSupply); err != nil {
		return err
	}

	m.BaseAsset = baseAsset
	m.FeeRate = feeRate
	m.SqrtPriceX96 = new(big.Int).Set(m.SqrtPriceAX96)
	m.BaseReserve = new(big.Int).Set(m.MaxTotalSupply)
	m.QuoteReserve = new(big.Int)
	m.Initialized = true
	return nil
}

// Migrate terminates the market by sweeping its entire base and quote
// balances to recipient. Only the collector may call it and it succeeds at
// most once. It takes the same exclusive-access guard as Swap, so it cannot
// run from within a swap in flight.
func (m *Market) Migrate(ledger AssetLedger, caller, recipient string) error {
	if caller != m.CollectorAddress {
		return ErrMarketUnauthorized
	}
	if !m.Initialized {
		return ErrMarketNotInitialized
	}
	if m.Migrated {
		return ErrMarketMigrated
	}
	if !m.tryLock() {
		return ErrMarketLocked
	}
	defer m.unlock()

	for _, asset := range []string{m.BaseAsset, m.QuoteAsset} {
		balance, err := ledger.BalanceOf(m.Id, asset)
		if err != nil {
			return err
		}
		if balance.Sign() == 0 {
			continue
		}
		if err := ledger.Transfer(m.Id, recipient, asset, balance); err != nil {
			return err
		}
	}

	m.BaseReserve = new(big.Int)
	m.QuoteReserve = new(big.Int)
	m.Migrated = true
	return nil
}

// IsInitialized ...
func (m *Market) IsInitialized() bool {
	return m.Initialized
}

// IsMigrated ...
func (m *Market) IsMigrated() bool {
	return m.Migrated
}

// IsTradable returns true if the market accepts swaps.
func (m *Market) IsTradable() bool {
	return m.Initialized && !m.Migrated
}

// Price returns the current price as quote asset per base asset unit,
// derived from the Q96 sqrt price.
func (m *Market) Price() decimal.Decimal {
	sqrt := decimal.NewFromBigInt(m.SqrtPriceX96, 0).
		Div(decimal.NewFromBigInt(curvemath.Q96, 0))
	return sqrt.Mul(sqrt)
}

func (m *Market) tryLock() bool {
	return atomic.CompareAndSwapInt32(&m.locked, 0, 1)
}

func (m *Market) unlock() {
	atomic.StoreInt32(&m.locked, 0)
}

func segmentLiquidity(pLow, pHigh, capacity *big.Int) (*big.Int, error) {
	liquidity, err := curvemath.LiquidityFromAmount0(pLow, pHigh, capacity)
	if err != nil {
		return nil, err
	}
	liquidity, err = fixedmath.CastToUnsigned127(liquidity)
	if err != nil {
		return nil, ErrMarketInvalidCapacity
	}
	if liquidity.Sign() == 0 {
		return nil, ErrMarketZeroLiquidity
	}
	return liquidity, nil
}

func isValidPriceRange(pA, pB, pMax *big.Int) bool {
	for _, p := range []*big.Int{pA, pB, pMax} {
		if p == nil || p.Sign() <= 0 || p.BitLen() > 160 {
			return false
		}
	}
	return pA.Cmp(pB) < 0 && pB.Cmp(pMax) < 0
}
