package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var swap = cli.Command{
	Name:  "swap",
	Usage: "execute a swap against a market",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
		},
		&cli.StringFlag{
			Name:  "sender",
			Usage: "the trading account",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "the account receiving the output, defaults to the sender",
		},
		&cli.BoolFlag{
			Name:  "base_for_quote",
			Usage: "sell base asset for quote asset instead of buying",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "signed trade size: positive exact-input, negative exact-output",
		},
		&cli.StringFlag{
			Name:  "price_limit",
			Usage: "price bound the swap must not cross (quote per base unit)",
		},
	},
	Action: swapAction,
}

func swapAction(ctx *cli.Context) error {
	_, tradeSvc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}
	priceLimit, err := parsePrice(ctx.String("price_limit"))
	if err != nil {
		return err
	}
	recipient := ctx.String("recipient")
	if recipient == "" {
		recipient = ctx.String("sender")
	}

	trade, err := tradeSvc.ExecuteTrade(
		context.Background(), ctx.String("market"),
		ctx.String("sender"), recipient,
		ctx.Bool("base_for_quote"), amount, priceLimit,
	)
	if err != nil {
		return err
	}

	printJSON(trade)
	return nil
}
