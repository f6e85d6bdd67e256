package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fitforge/fitforge"
)

func newInspectCmd() *cli.Command {
	return &cli.Command{
		Name:    "inspect",
		Usage:   "Print the state held in a snapshot file",
		Aliases: []string{"i"},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "snapshot",
				Required: true,
				Usage:    "specify the input .ffas snapshot",
			},
		},
		Action: func(c *cli.Context) error {
			f, err := os.Open(c.String("snapshot"))
			if err != nil {
				return err
			}
			defer f.Close()

			cfg := fitforge.DefaultConfig()
			cfg.InitialAlgorithm = fitforge.InitialAlgorithmNone
			eng, err := fitforge.NewEngine(&cfg)
			if err != nil {
				return err
			}
			if err := eng.Load(f); err != nil {
				return err
			}

			if eng.Stage() != fitforge.StageOperational {
				fmt.Fprintln(c.App.Writer, "stage:", eng.Stage())
				return nil
			}

			return printState(c.App.Writer, eng)
		},
	}
}
