// Package inmemory provides volatile storage implementations of the domain
// repositories, used as test backend and as the daemon's storage when no
// datadir persistence is wanted.
package inmemory

import (
	"github.com/bondex-network/bondex-daemon/internal/core/domain"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
)

type repoManager struct {
	marketRepository domain.MarketRepository
	tradeRepository  domain.TradeRepository
	assetLedger      domain.AssetLedger
}

// NewRepoManager returns a ports.RepoManager backed by in-memory stores.
func NewRepoManager() ports.RepoManager {
	return &repoManager{
		marketRepository: NewMarketRepositoryImpl(),
		tradeRepository:  NewTradeRepositoryImpl(),
		assetLedger:      ledger.NewLedger(),
	}
}

func (d *repoManager) MarketRepository() domain.MarketRepository {
	return d.marketRepository
}

func (d *repoManager) TradeRepository() domain.TradeRepository {
	return d.tradeRepository
}

func (d *repoManager) AssetLedger() domain.AssetLedger {
	return d.assetLedger
}

func (d *repoManager) Close() {}
