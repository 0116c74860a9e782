package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sc",
		Usage: "A collection of command-line utilities for SelfEncS",
		Commands: []*cli.Command{
			getAWSCmd(),
			dumpMapCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
