package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "show the ledger balance of an account for an asset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "account",
			Usage: "the account to inspect",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "the asset to inspect",
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	_, tradeSvc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := tradeSvc.GetBalance(
		context.Background(), ctx.String("account"), ctx.String("asset"),
	)
	if err != nil {
		return err
	}

	printJSON(map[string]string{
		"account": ctx.String("account"),
		"asset":   ctx.String("asset"),
		"balance": amount.String(),
	})
	return nil
}
