package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/bondex-network/bondex-daemon/internal/config"
	"github.com/bondex-network/bondex-daemon/internal/core/application/operator"
	tradeservice "github.com/bondex-network/bondex-daemon/internal/core/application/trade"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
	dbbadger "github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/badger"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/inmemory"
)

// getServices opens the datadir storage and builds the application services
// the way the daemon does. The CLI must not run against a datadir that is in
// use by a running daemon.
func getServices(ctx *cli.Context) (
	*operator.Service, *tradeservice.Service, func(), error,
) {
	if datadir := ctx.String("datadir"); datadir != "" {
		os.Setenv("BONDEX_DATADIR", datadir)
	}
	if err := config.Validate(); err != nil {
		return nil, nil, nil, err
	}

	repoManager, err := openRepoManager()
	if err != nil {
		return nil, nil, nil, err
	}

	assetLedger := repoManager.AssetLedger()
	feeCollector := ledger.NewCollector()

	operatorSvc, err := operator.NewService(repoManager, assetLedger)
	if err != nil {
		repoManager.Close()
		return nil, nil, nil, err
	}
	tradeSvc, err := tradeservice.NewService(repoManager, assetLedger, feeCollector)
	if err != nil {
		repoManager.Close()
		return nil, nil, nil, err
	}

	cleanup := func() { repoManager.Close() }
	return operatorSvc, tradeSvc, cleanup, nil
}

// openRepoManager selects the storage backend like the daemon does. An
// inmemory backend gives a throwaway environment useful for dry runs.
func openRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), nil)
}

// parseAmount parses a positive or negative integer amount.
func parseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// parsePrice converts a human-readable price (quote per base unit) to its
// Q96 sqrt representation.
func parsePrice(s string) (*big.Int, error) {
	price, err := decimal.NewFromString(s)
	if err != nil || price.Sign() <= 0 {
		return nil, fmt.Errorf("invalid price %q", s)
	}

	// value = price << 192, then sqrt halves the shift to 96 bits.
	value := new(big.Int).Lsh(price.Coefficient(), 192)
	if exp := int64(price.Exponent()); exp > 0 {
		value.Mul(value, pow10(exp))
	} else if exp < 0 {
		value.Quo(value, pow10(-exp))
	}
	return new(big.Int).Sqrt(value), nil
}

func pow10(exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
}

func printJSON(v interface{}) {
	buf, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(buf))
}
