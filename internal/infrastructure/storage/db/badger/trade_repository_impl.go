package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

type tradeRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTradeRepositoryImpl initializes a badger implementation of the
// domain.TradeRepository.
func NewTradeRepositoryImpl(store *badgerhold.Store) domain.TradeRepository {
	return tradeRepositoryImpl{store}
}

func (t tradeRepositoryImpl) AddTrade(
	_ context.Context, trade *domain.Trade,
) error {
	return t.store.Insert(trade.Id, *trade)
}

func (t tradeRepositoryImpl) GetAllTrades(
	_ context.Context,
) ([]*domain.Trade, error) {
	return t.findTrades(nil)
}

func (t tradeRepositoryImpl) GetTradesForMarket(
	_ context.Context, marketId string,
) ([]*domain.Trade, error) {
	return t.findTrades(badgerhold.Where("MarketId").Eq(marketId))
}

func (t tradeRepositoryImpl) findTrades(
	query *badgerhold.Query,
) ([]*domain.Trade, error) {
	var trades []domain.Trade
	if err := t.store.Find(&trades, query); err != nil {
		return nil, err
	}

	list := make([]*domain.Trade, 0, len(trades))
	for i := range trades {
		list = append(list, &trades[i])
	}
	return list, nil
}
