package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/walletpass/passkit/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "passkit",
		Usage: "Build and verify signed wallet pass bundles",
		Commands: []*cli.Command{
			cmd.BuildCommand(),
			cmd.VerifyCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
