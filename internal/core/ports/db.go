package ports

import (
	"github.com/bondex-network/bondex-daemon/internal/core/domain"
)

// RepoManager gives access to all the repositories of a storage backend,
// along with the asset ledger living in the same backend so that balances
// share the lifetime of the markets they settle.
type RepoManager interface {
	MarketRepository() domain.MarketRepository
	TradeRepository() domain.TradeRepository
	AssetLedger() domain.AssetLedger

	Close()
}
