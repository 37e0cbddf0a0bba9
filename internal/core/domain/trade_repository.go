package domain

import "context"

// TradeRepository is the abstraction for any kind of database intended to
// persist Trades.
type TradeRepository interface {
	// AddTrade adds a new trade to the repository.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetAllTrades returns all the trades stored in the repository.
	GetAllTrades(ctx context.Context) ([]*Trade, error)
	// GetTradesForMarket returns all the trades executed against the market
	// with the given id.
	GetTradesForMarket(ctx context.Context, marketId string) ([]*Trade, error)
}
