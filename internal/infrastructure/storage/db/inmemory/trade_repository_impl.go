package inmemory

import (
	"context"
	"sync"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	trades []*domain.Trade
	lock   *sync.RWMutex
}

// NewTradeRepositoryImpl returns a volatile implementation of
// domain.TradeRepository.
func NewTradeRepositoryImpl() domain.TradeRepository {
	return &tradeRepositoryImpl{
		trades: make([]*domain.Trade, 0),
		lock:   &sync.RWMutex{},
	}
}

func (r *tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.trades = append(r.trades, trade)
	return nil
}

func (r *tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]*domain.Trade, len(r.trades))
	copy(trades, r.trades)
	return trades, nil
}

func (r *tradeRepositoryImpl) GetTradesForMarket(
	_ context.Context, marketId string,
) ([]*domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]*domain.Trade, 0)
	for _, trade := range r.trades {
		if trade.MarketId == marketId {
			trades = append(trades, trade)
		}
	}
	return trades, nil
}
