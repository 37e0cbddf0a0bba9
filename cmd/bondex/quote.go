package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var quote = cli.Command{
	Name:  "quote",
	Usage: "preview a swap without executing it",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "market",
			Usage: "the market id",
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
	Action: quoteAction,
}

func quoteAction(ctx *cli.Context) error {
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

	preview, err := tradeSvc.PreviewTrade(
		context.Background(), ctx.String("market"),
		ctx.Bool("base_for_quote"), amount, priceLimit,
	)
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"amount_in":       preview.AmountIn.String(),
		"amount_out":      preview.AmountOut.String(),
		"fee_amount_in":   preview.FeeAmountIn.String(),
		"next_sqrt_price": preview.NextSqrtPriceX96.String(),
	})
	return nil
}
