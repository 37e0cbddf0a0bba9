// Package trade implements the trader-facing application service: listing
// tradable markets, previewing trades and executing swaps.
package trade

import (
	"context"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
)

// Service is the trader-facing application service.
type Service struct {
	repoManager ports.RepoManager
	ledger      domain.AssetLedger
	collector   domain.FeeCollector
}

// NewService ...
func NewService(
	repoManager ports.RepoManager,
	ledger domain.AssetLedger,
	collector domain.FeeCollector,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if ledger == nil {
		return nil, fmt.Errorf("missing asset ledger")
	}
	if collector == nil {
		return nil, fmt.Errorf("missing fee collector")
	}
	return &Service{repoManager, ledger, collector}, nil
}

// GetTradableMarkets returns the markets open for trading.
func (s *Service) GetTradableMarkets(ctx context.Context) ([]domain.Market, error) {
	return s.repoManager.MarketRepository().GetTradableMarkets(ctx)
}

// PreviewTrade quotes a swap against the current market state without
// executing it. The returned amounts can go stale if another swap executes
// in between; the price limit passed to ExecuteTrade bounds that risk.
func (s *Service) PreviewTrade(
	ctx context.Context, marketId string,
	baseForQuote bool, delta, priceLimit *big.Int,
) (*domain.QuoteResult, error) {
	market, err := s.repoManager.MarketRepository().GetMarketById(ctx, marketId)
	if err != nil {
		return nil, err
	}
	return market.GetDeltaAmounts(baseForQuote, delta, priceLimit)
}

// ExecuteTrade performs a swap against the market and persists the trade
// record.
func (s *Service) ExecuteTrade(
	ctx context.Context, marketId, sender, recipient string,
	baseForQuote bool, delta, priceLimit *big.Int,
) (*domain.Trade, error) {
	var trade *domain.Trade
	err := s.repoManager.MarketRepository().UpdateMarket(
		ctx, marketId, func(m *domain.Market) (*domain.Market, error) {
			event, err := m.Swap(
				s.ledger, s.collector, sender, recipient,
				baseForQuote, delta, priceLimit,
			)
			if err != nil {
				return nil, err
			}
			trade = domain.NewTrade(event, m.Price())
			return m, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.TradeRepository().AddTrade(ctx, trade); err != nil {
		log.WithError(err).Warn("trade executed but could not be persisted")
	}

	log.WithFields(log.Fields{
		"market":     trade.MarketId,
		"base":       trade.BaseDelta,
		"quote":      trade.QuoteDelta,
		"fee":        trade.FeeAmountIn,
		"price":      trade.Price,
		"sqrt_price": trade.SqrtPriceX96,
	}).Info("trade executed")

	return trade, nil
}

// Deposit credits an account on the ledger, standing in for funds entering
// the system from outside. Traders use it to fund a market's account with
// the input asset before swapping against it.
func (s *Service) Deposit(
	_ context.Context, account, asset string, amount *big.Int,
) error {
	if account == "" {
		return fmt.Errorf("missing account")
	}
	if asset == "" {
		return fmt.Errorf("missing asset")
	}
	if err := s.ledger.Deposit(account, asset, amount); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"account": account,
		"asset":   asset,
		"amount":  amount.String(),
	}).Info("deposit credited")
	return nil
}

// GetBalance returns the ledger balance of an account for an asset.
func (s *Service) GetBalance(
	_ context.Context, account, asset string,
) (*big.Int, error) {
	return s.ledger.BalanceOf(account, asset)
}

// GetTradesForMarket returns the trade history of a market.
func (s *Service) GetTradesForMarket(
	ctx context.Context, marketId string,
) ([]*domain.Trade, error) {
	return s.repoManager.TradeRepository().GetTradesForMarket(ctx, marketId)
}
