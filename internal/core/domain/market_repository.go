package domain

import "context"

// MarketRepository is the abstraction for any kind of database intended to
// persist Markets.
type MarketRepository interface {
	// AddMarket adds a new market to the repository.
	AddMarket(ctx context.Context, market *Market) error
	// GetMarketById returns the market with the given id.
	GetMarketById(ctx context.Context, marketId string) (*Market, error)
	// GetTradableMarkets returns all markets that are open for trading.
	GetTradableMarkets(ctx context.Context) ([]Market, error)
	// GetAllMarkets returns all markets.
	GetAllMarkets(ctx context.Context) ([]Market, error)
	// UpdateMarket updates the state of a market. The closure function lets
	// the caller commit multiple changes to a market in a transactional way.
	UpdateMarket(
		ctx context.Context,
		marketId string, updateFn func(m *Market) (*Market, error),
	) error
}
