package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listmarkets = cli.Command{
	Name:   "listmarkets",
	Usage:  "list all markets",
	Action: listMarketsAction,
}

func listMarketsAction(ctx *cli.Context) error {
	operatorSvc, _, cleanup, err := getServices(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	markets, err := operatorSvc.ListMarkets(context.Background())
	if err != nil {
		return err
	}

	type marketRow struct {
		Id         string
		BaseAsset  string
		QuoteAsset string
		Price      string
		Tradable   bool
		Migrated   bool
	}
	rows := make([]marketRow, 0, len(markets))
	for _, m := range markets {
		rows = append(rows, marketRow{
			Id:         m.Id,
			BaseAsset:  m.BaseAsset,
			QuoteAsset: m.QuoteAsset,
			Price:      m.Price().String(),
			Tradable:   m.IsTradable(),
			Migrated:   m.Migrated,
		})
	}
	printJSON(rows)
	return nil
}
