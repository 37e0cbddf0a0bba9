package inmemory

import (
	"context"
	"sync"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

type marketRepositoryImpl struct {
	markets map[string]*domain.Market
	lock    *sync.RWMutex
}

// NewMarketRepositoryImpl returns a volatile implementation of
// domain.MarketRepository.
func NewMarketRepositoryImpl() domain.MarketRepository {
	return &marketRepositoryImpl{
		markets: map[string]*domain.Market{},
		lock:    &sync.RWMutex{},
	}
}

func (r *marketRepositoryImpl) AddMarket(
	_ context.Context, market *domain.Market,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.markets[market.Id]; ok {
		return ErrMarketAlreadyExists
	}
	r.markets[market.Id] = market
	return nil
}

func (r *marketRepositoryImpl) GetMarketById(
	_ context.Context, marketId string,
) (*domain.Market, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getMarket(marketId)
}

func (r *marketRepositoryImpl) GetTradableMarkets(
	_ context.Context,
) ([]domain.Market, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	markets := make([]domain.Market, 0, len(r.markets))
	for _, market := range r.markets {
		if market.IsTradable() {
			markets = append(markets, *market)
		}
	}
	return markets, nil
}

func (r *marketRepositoryImpl) GetAllMarkets(
	_ context.Context,
) ([]domain.Market, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	markets := make([]domain.Market, 0, len(r.markets))
	for _, market := range r.markets {
		markets = append(markets, *market)
	}
	return markets, nil
}

func (r *marketRepositoryImpl) UpdateMarket(
	_ context.Context,
	marketId string, updateFn func(m *domain.Market) (*domain.Market, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	market, err := r.getMarket(marketId)
	if err != nil {
		return err
	}

	updated, err := updateFn(market)
	if err != nil {
		return err
	}

	r.markets[marketId] = updated
	return nil
}

func (r *marketRepositoryImpl) getMarket(marketId string) (*domain.Market, error) {
	market, ok := r.markets[marketId]
	if !ok {
		return nil, ErrMarketNotFound
	}
	return market, nil
}
