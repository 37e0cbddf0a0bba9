// Package operator implements the market lifecycle service: creating
// markets from a curve configuration, binding their traded asset, and
// migrating them once their run is over.
package operator

import (
	"context"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
)

// Service is the operator-facing application service.
type Service struct {
	repoManager ports.RepoManager
	ledger      domain.AssetLedger
}

// NewService ...
func NewService(
	repoManager ports.RepoManager, ledger domain.AssetLedger,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if ledger == nil {
		return nil, fmt.Errorf("missing asset ledger")
	}
	return &Service{repoManager, ledger}, nil
}

// CreateMarket derives the segment liquidities from the desired capacities
// and persists the new market.
func (s *Service) CreateMarket(
	ctx context.Context,
	collector, quoteAsset string,
	sqrtPriceAX96, sqrtPriceBX96, sqrtPriceMaxX96 *big.Int,
	baseCapacityA, baseCapacityB *big.Int,
) (*domain.Market, error) {
	market, err := domain.NewMarket(
		collector, quoteAsset,
		sqrtPriceAX96, sqrtPriceBX96, sqrtPriceMaxX96,
		baseCapacityA, baseCapacityB,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.MarketRepository().AddMarket(ctx, market); err != nil {
		return nil, err
	}

	log.Infof(
		"created market %s for quote asset %s with max supply %s",
		market.Id, quoteAsset, market.MaxTotalSupply,
	)
	return market, nil
}

// InitializeMarket binds the base asset and fee rate of a market and mints
// its total supply.
func (s *Service) InitializeMarket(
	ctx context.Context, marketId, baseAsset string, feeRate uint64,
) error {
	err := s.repoManager.MarketRepository().UpdateMarket(
		ctx, marketId, func(m *domain.Market) (*domain.Market, error) {
			if err := m.Initialize(s.ledger, baseAsset, feeRate); err != nil {
				return nil, err
			}
			return m, nil
		},
	)
	if err != nil {
		return err
	}

	log.Infof(
		"initialized market %s with base asset %s and fee rate %d ppm",
		marketId, baseAsset, feeRate,
	)
	return nil
}

// MigrateMarket sweeps the market's balances to recipient and terminates it.
func (s *Service) MigrateMarket(
	ctx context.Context, marketId, caller, recipient string,
) error {
	err := s.repoManager.MarketRepository().UpdateMarket(
		ctx, marketId, func(m *domain.Market) (*domain.Market, error) {
			if err := m.Migrate(s.ledger, caller, recipient); err != nil {
				return nil, err
			}
			return m, nil
		},
	)
	if err != nil {
		return err
	}

	log.Infof("migrated market %s to %s", marketId, recipient)
	return nil
}

// ListMarkets returns all markets.
func (s *Service) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	return s.repoManager.MarketRepository().GetAllMarkets(ctx)
}

// GetMarket returns the market with the given id.
func (s *Service) GetMarket(ctx context.Context, marketId string) (*domain.Market, error) {
	return s.repoManager.MarketRepository().GetMarketById(ctx, marketId)
}
