package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

type marketRepositoryImpl struct {
	store *badgerhold.Store
}

// NewMarketRepositoryImpl initializes a badger implementation of the
// domain.MarketRepository.
func NewMarketRepositoryImpl(store *badgerhold.Store) domain.MarketRepository {
	return marketRepositoryImpl{store}
}

func (m marketRepositoryImpl) AddMarket(
	_ context.Context, market *domain.Market,
) error {
	if err := m.store.Insert(market.Id, *market); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return ErrMarketAlreadyExists
		}
		return err
	}
	return nil
}

func (m marketRepositoryImpl) GetMarketById(
	_ context.Context, marketId string,
) (*domain.Market, error) {
	return m.getMarket(marketId)
}

func (m marketRepositoryImpl) GetTradableMarkets(
	_ context.Context,
) ([]domain.Market, error) {
	query := badgerhold.Where("Initialized").Eq(true).And("Migrated").Eq(false)
	return m.findMarkets(query)
}

func (m marketRepositoryImpl) GetAllMarkets(
	_ context.Context,
) ([]domain.Market, error) {
	return m.findMarkets(nil)
}

func (m marketRepositoryImpl) UpdateMarket(
	_ context.Context,
	marketId string, updateFn func(mkt *domain.Market) (*domain.Market, error),
) error {
	market, err := m.getMarket(marketId)
	if err != nil {
		return err
	}

	updated, err := updateFn(market)
	if err != nil {
		return err
	}

	return m.store.Update(marketId, *updated)
}

func (m marketRepositoryImpl) getMarket(marketId string) (*domain.Market, error) {
	var market domain.Market
	if err := m.store.Get(marketId, &market); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}
	return &market, nil
}

func (m marketRepositoryImpl) findMarkets(
	query *badgerhold.Query,
) ([]domain.Market, error) {
	var markets []domain.Market
	if err := m.store.Find(&markets, query); err != nil {
		return nil, err
	}
	return markets, nil
}
