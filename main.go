package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Nabagata/scim/cmd/scimd"
)

func main() {
	app := &cli.App{
		Name:        "scim",
		Usage:       "Simple Cloud Identity Management",
		Commands:    []*cli.Command{scimd.Command()},
		HideVersion: true,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
