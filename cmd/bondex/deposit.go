package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "credit an account with funds entering the system",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "account",
			Usage: "the account to credit, a market id to fund a swap",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "the asset to credit",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "the amount to credit",
		},
	},
	Action: depositAction,
}

func depositAction(ctx *cli.Context) error {
	_, tradeSvc, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	amount, err := parseAmount(ctx.String("amount"))
	if err != nil {
		return err
	}

	if err := tradeSvc.Deposit(
		context.Background(), ctx.String("account"), ctx.String("asset"), amount,
	); err != nil {
		return err
	}

	fmt.Println("deposit done")
	return nil
}
