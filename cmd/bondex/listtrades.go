package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listtrades = cli.Command{
	Name:  "trades",
	Usage: "list the trade history of a market",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
		},
	},
	Action: listTradesAction,
}

func listTradesAction(ctx *cli.Context) error {
	_, tradeSvc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	trades, err := tradeSvc.GetTradesForMarket(
		context.Background(), ctx.String("market"),
	)
	if err != nil {
		return err
	}

	printJSON(trades)
	return nil
}
