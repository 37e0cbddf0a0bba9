package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bondex-network/bondex-daemon/internal/config"
	"github.com/bondex-network/bondex-daemon/internal/core/application/operator"
	tradeservice "github.com/bondex-network/bondex-daemon/internal/core/application/trade"
	"github.com/bondex-network/bondex-daemon/internal/core/ports"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/ledger"
	dbbadger "github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/badger"
	"github.com/bondex-network/bondex-daemon/internal/infrastructure/storage/db/inmemory"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	if err := config.Validate(); err != nil {
		log.WithError(err).Panic("invalid config")
	}

	repoManager, err := openRepoManager()
	if err != nil {
		log.WithError(err).Panic("error while opening storage")
	}
	defer repoManager.Close()

	assetLedger := repoManager.AssetLedger()
	feeCollector := ledger.NewCollector()

	operatorSvc, err := operator.NewService(repoManager, assetLedger)
	if err != nil {
		log.WithError(err).Panic("error while starting operator service")
	}
	tradeSvc, err := tradeservice.NewService(repoManager, assetLedger, feeCollector)
	if err != nil {
		log.WithError(err).Panic("error while starting trade service")
	}
	markets, err := operatorSvc.ListMarkets(context.Background())
	if err != nil {
		log.WithError(err).Panic("error while restoring markets")
	}
	log.Infof("daemon started with %d market(s)", len(markets))

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return statsLoop(ctx, tradeSvc)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.WithError(err).Error("daemon stopped with error")
	}
	log.Info("exiting")
}

func openRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}
	return dbbadger.NewRepoManager(config.GetDbDir(), nil)
}

func statsLoop(ctx context.Context, tradeSvc *tradeservice.Service) error {
	interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			markets, err := tradeSvc.GetTradableMarkets(ctx)
			if err != nil {
				log.WithError(err).Warn("cannot fetch markets for stats")
				continue
			}
			for _, market := range markets {
				log.WithFields(log.Fields{
					"market":        market.Id,
					"price":         market.Price().String(),
					"base_reserve":  market.BaseReserve.String(),
					"quote_reserve": market.QuoteReserve.String(),
				}).Info("market stats")
			}
		}
	}
}
