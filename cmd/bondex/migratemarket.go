package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bondex-network/bondex-daemon/internal/config"
)

var migratemarket = cli.Command{
	Name:  "migrate",
	Usage: "terminate a market and sweep its balances to a recipient",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "the account receiving the swept balances",
		},
	},
	Action: migrateMarketAction,
}

func migrateMarketAction(ctx *cli.Context) error {
	operatorSvc, _, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := operatorSvc.MigrateMarket(
		context.Background(), ctx.String("market"),
		config.GetString(config.CollectorAddressKey), ctx.String("recipient"),
	); err != nil {
		return err
	}

	fmt.Println("market migrated")
	return nil
}
