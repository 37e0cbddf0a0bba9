package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var initmarket = cli.Command{
	Name:  "initmarket",
	Usage: "bind the base asset and fee rate of a market and mint its supply",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
		},
		&cli.StringFlag{
			Name:  "base_asset",
			Usage: "the traded asset launched by the market",
		},
		&cli.Uint64Flag{
			Name:  "fee_rate",
			Usage: "swap fee in parts-per-million",
			Value: 10000,
		},
	},
	Action: initMarketAction,
}

func initMarketAction(ctx *cli.Context) error {
	operatorSvc, _, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := operatorSvc.InitializeMarket(
		context.Background(),
		ctx.String("market"), ctx.String("base_asset"), ctx.Uint64("fee_rate"),
	); err != nil {
		return err
	}

	fmt.Println("market initialized")
	return nil
}
