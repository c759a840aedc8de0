package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rowsleuth/rowsleuth/pkg/cmd"
	"github.com/urfave/cli/v3"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	cli.VersionPrinter = func(c *cli.Command) {
		fmt.Fprintln(c.Writer, "Version:", version)
		fmt.Fprintln(c.Writer, "Commit:", commit)
		fmt.Fprintln(c.Writer, "Date:", date)
	}

	if err := cmd.Run(context.Background(), version, os.Args); err != nil {
		slog.Error("Error running command", "err", err)
		os.Exit(1)
	}
}
