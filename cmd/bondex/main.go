package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "bondex operator CLI"
	app.Usage = "command line interface for bondex-daemon operators"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "daemon data directory, overrides BONDEX_DATADIR",
			Value: "",
		},
	}
	app.Commands = append(
		app.Commands,
		&createmarket,
		&initmarket,
		&listmarkets,
		&marketinfo,
		&deposit,
		&balance,
		&quote,
		&swap,
		&migratemarket,
		&listtrades,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[bondex] %v\n", err)
	os.Exit(1)
}
