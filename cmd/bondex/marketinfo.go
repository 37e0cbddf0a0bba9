package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var marketinfo = cli.Command{
	Name:  "market",
	Usage: "show the full state of a market",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
		},
	},
	Action: marketInfoAction,
}

func marketInfoAction(ctx *cli.Context) error {
	operatorSvc, _, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	market, err := operatorSvc.GetMarket(context.Background(), ctx.String("market"))
	if err != nil {
		return err
	}

	printJSON(map[string]interface{}{
		"id":             market.Id,
		"collector":      market.CollectorAddress,
		"base_asset":     market.BaseAsset,
		"quote_asset":    market.QuoteAsset,
		"price":          market.Price().String(),
		"sqrt_price":     market.SqrtPriceX96.String(),
		"sqrt_price_a":   market.SqrtPriceAX96.String(),
		"sqrt_price_b":   market.SqrtPriceBX96.String(),
		"sqrt_price_max": market.SqrtPriceMaxX96.String(),
		"liquidity_a":    market.LiquidityA.String(),
		"liquidity_b":    market.LiquidityB.String(),
		"max_supply":     market.MaxTotalSupply.String(),
		"base_reserve":   market.BaseReserve.String(),
		"quote_reserve":  market.QuoteReserve.String(),
		"fee_rate":       market.FeeRate,
		"initialized":    market.Initialized,
		"migrated":       market.Migrated,
	})
	return nil
}
