package trade_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bondex-network/bondex-daemon/internal/core/application/operator"
	"github.com/bondex-network/bondex-daemon/internal/core/application/trade"
	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/inmemory"
	"github.com/bondex-network/bondex-daemon/pkg/curvemath"
)

var (
	ctx = context.Background()

	sqrtPriceA   = new(big.Int).Set(curvemath.Q96)
	sqrtPriceB   = new(big.Int).Mul(big.NewInt(2), curvemath.Q96)
	sqrtPriceMax = new(big.Int).Mul(big.NewInt(3), curvemath.Q96)
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid big int literal: " + s)
	}
	return v
}

func newServices(t *testing.T) (*operator.Service, *trade.Service, domain.AssetLedger) {
	repoManager := inmemory.NewRepoManager()
	assetLedger := repoManager.AssetLedger()
	collector := ledger.NewCollector()

	operatorSvc, err := operator.NewService(repoManager, assetLedger)
	require.NoError(t, err)
	tradeSvc, err := trade.NewService(repoManager, assetLedger, collector)
	require.NoError(t, err)
	return operatorSvc, tradeSvc, assetLedger
}

func newTradableMarketId(t *testing.T, operatorSvc *operator.Service, feeRate uint64) string {
	capacity := mustBig("500000000000000000000000000")
	market, err := operatorSvc.CreateMarket(
		ctx, "collector", "USD",
		sqrtPriceA, sqrtPriceB, sqrtPriceMax,
		capacity, capacity,
	)
	require.NoError(t, err)

	err = operatorSvc.InitializeMarket(ctx, market.Id, "TOKEN", feeRate)
	require.NoError(t, err)
	return market.Id
}

func TestGetTradableMarkets(t *testing.T) {
	t.Parallel()

	operatorSvc, tradeSvc, _ := newServices(t)

	markets, err := tradeSvc.GetTradableMarkets(ctx)
	require.NoError(t, err)
	require.Empty(t, markets)

	marketId := newTradableMarketId(t, operatorSvc, 0)

	markets, err = tradeSvc.GetTradableMarkets(ctx)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	require.Equal(t, marketId, markets[0].Id)
}

func TestPreviewTrade(t *testing.T) {
	t.Parallel()

	operatorSvc, tradeSvc, _ := newServices(t)
	marketId := newTradableMarketId(t, operatorSvc, 0)

	quoteIn := mustBig("500000000000000000000000000")
	preview, err := tradeSvc.PreviewTrade(ctx, marketId, false, quoteIn, sqrtPriceMax)
	require.NoError(t, err)
	require.Zero(t, preview.AmountIn.Cmp(quoteIn))
	require.Zero(t, preview.AmountOut.Cmp(mustBig("333333333333333333333333333")))
	require.Zero(t, preview.FeeAmountIn.Sign())

	_, err = tradeSvc.PreviewTrade(ctx, "unknown", false, quoteIn, sqrtPriceMax)
	require.EqualError(t, err, inmemory.ErrMarketNotFound.Error())
}

func TestExecuteTrade(t *testing.T) {
	t.Parallel()

	operatorSvc, tradeSvc, assetLedger := newServices(t)
	marketId := newTradableMarketId(t, operatorSvc, 10000)

	// Fund the market's account with the quote input, the way the deposit
	// command does.
	quoteIn := mustBig("2000000000000000000000000000")
	require.NoError(t, tradeSvc.Deposit(ctx, marketId, "USD", quoteIn))

	executed, err := tradeSvc.ExecuteTrade(
		ctx, marketId, "trader", "trader", false, quoteIn, sqrtPriceMax,
	)
	require.NoError(t, err)
	require.Equal(t, marketId, executed.MarketId)
	require.Equal(t, quoteIn.String(), executed.QuoteDelta)
	require.Equal(t, "-710601719197707736389684813", executed.BaseDelta)
	require.Equal(t, "20000000000000000000000001", executed.FeeAmountQuote)

	// The market state change survived the repository round-trip.
	market, err := operatorSvc.GetMarket(ctx, marketId)
	require.NoError(t, err)
	require.Zero(t, market.SqrtPriceX96.Cmp(mustBig("184337524783188358800978924422")))

	traderBase, err := assetLedger.BalanceOf("trader", "TOKEN")
	require.NoError(t, err)
	require.Zero(t, traderBase.Cmp(mustBig("710601719197707736389684813")))

	trades, err := tradeSvc.GetTradesForMarket(ctx, marketId)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, executed.Id, trades[0].Id)
}

func TestFailingExecuteTrade(t *testing.T) {
	t.Parallel()

	operatorSvc, tradeSvc, _ := newServices(t)
	marketId := newTradableMarketId(t, operatorSvc, 0)

	// Swap not backed by a deposit: nothing executes, nothing is recorded.
	_, err := tradeSvc.ExecuteTrade(
		ctx, marketId, "trader", "trader",
		false, mustBig("1000000000000000000"), sqrtPriceMax,
	)
	require.Error(t, err)

	trades, err := tradeSvc.GetTradesForMarket(ctx, marketId)
	require.NoError(t, err)
	require.Empty(t, trades)

	market, err := operatorSvc.GetMarket(ctx, marketId)
	require.NoError(t, err)
	require.Zero(t, market.SqrtPriceX96.Cmp(sqrtPriceA))
}
