// Command fitforge solves team/project allocation problems from the command
// line and inspects saved snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "fitforge",
		Usage: "Allocate teams to projects and inspect saved sessions",
		Commands: []*cli.Command{
			newSolveCmd(),
			newInspectCmd(),
		},
	}
}
