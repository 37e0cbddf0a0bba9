package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/bondex-network/bondex-daemon/internal/config"
)

var createmarket = cli.Command{
	Name:  "createmarket",
	Usage: "create a new bonding-curve market",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "quote_asset",
			Usage: "the reference asset the new market trades against",
		},
		&cli.StringFlag{
			Name:  "price_a",
			Usage: "lower boundary price of segment A (quote per base unit)",
			Value: "1.0",
		},
		&cli.StringFlag{
			Name:  "price_b",
			Usage: "boundary price between segments A and B",
			Value: "4.0",
		},
		&cli.StringFlag{
			Name:  "price_max",
			Usage: "upper boundary price of segment B",
			Value: "9.0",
		},
		&cli.StringFlag{
			Name:  "capacity_a",
			Usage: "base-asset capacity of segment A",
		},
		&cli.StringFlag{
			Name:  "capacity_b",
			Usage: "base-asset capacity of segment B",
		},
	},
	Action: createMarketAction,
}

func createMarketAction(ctx *cli.Context) error {
	operatorSvc, _, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	priceA, err := parsePrice(ctx.String("price_a"))
	if err != nil {
		return err
	}
	priceB, err := parsePrice(ctx.String("price_b"))
	if err != nil {
		return err
	}
	priceMax, err := parsePrice(ctx.String("price_max"))
	if err != nil {
		return err
	}
	capacityA, err := parseAmount(ctx.String("capacity_a"))
	if err != nil {
		return err
	}
	capacityB, err := parseAmount(ctx.String("capacity_b"))
	if err != nil {
		return err
	}

	market, err := operatorSvc.CreateMarket(
		context.Background(),
		config.GetString(config.CollectorAddressKey),
		ctx.String("quote_asset"),
		priceA, priceB, priceMax,
		capacityA, capacityB,
	)
	if err != nil {
		return err
	}

	fmt.Println("market created with id:", market.Id)
	return nil
}
