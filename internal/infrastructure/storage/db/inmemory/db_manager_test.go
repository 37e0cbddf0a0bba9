package inmemory_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/bondex-network/bondex-daemon/pkg/curvemath"
)

var ctx = context.Background()

func newTestMarket(t *testing.T) *domain.Market {
	sqrtPriceA := new(big.Int).Set(curvemath.Q96)
	sqrtPriceB := new(big.Int).Mul(big.NewInt(2), curvemath.Q96)
	sqrtPriceMax := new(big.Int).Mul(big.NewInt(3), curvemath.Q96)
	capacity, _ := new(big.Int).SetString("500000000000000000000000000", 10)

	m, err := domain.NewMarket(
		"collector", "USD",
		sqrtPriceA, sqrtPriceB, sqrtPriceMax,
		capacity, capacity,
	)
	require.NoError(t, err)
	return m
}

func newRepoManager() ports.RepoManager {
	return inmemory.NewRepoManager()
}

func TestMarketRepository(t *testing.T) {
	t.Parallel()

	repo := newRepoManager().MarketRepository()
	market := newTestMarket(t)

	err := repo.AddMarket(ctx, market)
	require.NoError(t, err)

	err = repo.AddMarket(ctx, market)
	require.EqualError(t, err, inmemory.ErrMarketAlreadyExists.Error())

	found, err := repo.GetMarketById(ctx, market.Id)
	require.NoError(t, err)
	require.Equal(t, market.Id, found.Id)

	_, err = repo.GetMarketById(ctx, "unknown")
	require.EqualError(t, err, inmemory.ErrMarketNotFound.Error())

	// Not initialized yet, hence not tradable.
	tradable, err := repo.GetTradableMarkets(ctx)
	require.NoError(t, err)
	require.Empty(t, tradable)

	all, err := repo.GetAllMarkets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateMarket(t *testing.T) {
	t.Parallel()

	repo := newRepoManager().MarketRepository()
	market := newTestMarket(t)
	require.NoError(t, repo.AddMarket(ctx, market))

	err := repo.UpdateMarket(
		ctx, market.Id, func(m *domain.Market) (*domain.Market, error) {
			m.Initialized = true
			return m, nil
		},
	)
	require.NoError(t, err)

	found, err := repo.GetMarketById(ctx, market.Id)
	require.NoError(t, err)
	require.True(t, found.IsInitialized())

	tradable, err := repo.GetTradableMarkets(ctx)
	require.NoError(t, err)
	require.Len(t, tradable, 1)

	// A failing update function leaves the stored market untouched.
	err = repo.UpdateMarket(
		ctx, market.Id, func(m *domain.Market) (*domain.Market, error) {
			m.Migrated = true
			return nil, domain.ErrMarketMigrated
		},
	)
	require.EqualError(t, err, domain.ErrMarketMigrated.Error())

	err = repo.UpdateMarket(
		ctx, "unknown", func(m *domain.Market) (*domain.Market, error) {
			return m, nil
		},
	)
	require.EqualError(t, err, inmemory.ErrMarketNotFound.Error())
}

func TestAssetLedger(t *testing.T) {
	t.Parallel()

	assetLedger := newRepoManager().AssetLedger()
	require.NoError(t, assetLedger.Deposit("m1", "USD", big.NewInt(10)))

	balance, err := assetLedger.BalanceOf("m1", "USD")
	require.NoError(t, err)
	require.Equal(t, int64(10), balance.Int64())
}

func TestTradeRepository(t *testing.T) {
	t.Parallel()

	repo := newRepoManager().TradeRepository()

	trades := []*domain.Trade{
		{Id: "t1", MarketId: "m1", BaseDelta: "-10", QuoteDelta: "40"},
		{Id: "t2", MarketId: "m1", BaseDelta: "-5", QuoteDelta: "21"},
		{Id: "t3", MarketId: "m2", BaseDelta: "7", QuoteDelta: "-30"},
	}
	for _, trade := range trades {
		require.NoError(t, repo.AddTrade(ctx, trade))
	}

	all, err := repo.GetAllTrades(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	forMarket, err := repo.GetTradesForMarket(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, forMarket, 2)

	forMarket, err = repo.GetTradesForMarket(ctx, "unknown")
	require.NoError(t, err)
	require.Empty(t, forMarket)
}
