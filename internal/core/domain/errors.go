package domain

import "errors"

var (
	// ErrMarketInvalidCollector ...
	ErrMarketInvalidCollector = errors.New("market collector must not be empty")
	// ErrMarketInvalidQuoteAsset ...
	ErrMarketInvalidQuoteAsset = errors.New("market quote asset must not be empty")
	// ErrMarketInvalidPriceRange is thrown when the boundary sqrt prices are
	// not strictly positive and ordered.
	ErrMarketInvalidPriceRange = errors.New("market sqrt price bounds must satisfy 0 < pA < pB < pMax")
	// ErrMarketInvalidCapacity is thrown when a segment capacity is not a
	// positive amount fitting 127 bits.
	ErrMarketInvalidCapacity = errors.New("market segment capacity out of range")
	// ErrMarketZeroLiquidity is thrown when the derived liquidity of a
	// segment is zero.
	ErrMarketZeroLiquidity = errors.New("market segment liquidity must not be zero")
	// ErrMarketAlreadyInitialized ...
	ErrMarketAlreadyInitialized = errors.New("market is already initialized")
	// ErrMarketNotInitialized ...
	ErrMarketNotInitialized = errors.New("market is not initialized")
	// ErrMarketInvalidBaseAsset is thrown when the base asset is empty or
	// matches the quote asset.
	ErrMarketInvalidBaseAsset = errors.New("market base asset must not be empty nor match the quote asset")
	// ErrMarketInvalidFeeRate is thrown when the fee rate exceeds the
	// parts-per-million denominator.
	ErrMarketInvalidFeeRate = errors.New("market fee rate must not exceed the fee denominator")
	// ErrMarketMigrated is thrown on any state-changing call after the
	// market has been migrated.
	ErrMarketMigrated = errors.New("market is migrated")
	// ErrMarketUnauthorized is thrown when migrate is attempted by anybody
	// but the collector.
	ErrMarketUnauthorized = errors.New("operation restricted to the market collector")
	// ErrMarketLocked is thrown on a reentrant call into a market that is
	// already executing a swap or a migration.
	ErrMarketLocked = errors.New("market is locked")
	// ErrMarketInsufficientBalance is thrown when the market's held balance
	// of the input asset does not cover the updated reserve.
	ErrMarketInsufficientBalance = errors.New("market balance does not cover reserves")
	// ErrSwapZeroAmount ...
	ErrSwapZeroAmount = errors.New("swap amount must not be zero")
	// ErrInvalidPriceLimit is thrown when a price limit is not strictly on
	// the correct side of the current price or leaves the curve bounds.
	ErrInvalidPriceLimit = errors.New("price limit out of range for swap direction")
)
