package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/SelfEncS/selfenc"
)

func dumpMapCmd() *cli.Command {
	return &cli.Command{
		Name:  "dumpmap",
		Usage: "Print the contents of a DataMap file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "map", Required: true, Usage: "Path to the DataMap file"},
		},
		Action: func(c *cli.Context) error {
			dm, err := selfenc.LoadDataMap(c.String("map"))
			if err != nil {
				return err
			}
			fmt.Print(dm.Summary())
			return nil
		},
	}
}
