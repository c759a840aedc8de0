// Package cmd wires the rowsleuth CLI commands.
package cmd

import (
	"context"
	"os"

	"github.com/rowsleuth/rowsleuth/pkg/config"
	"github.com/rowsleuth/rowsleuth/pkg/consts"
	"github.com/urfave/cli/v3"
)

var currentConfig *config.Config

// Run creates and executes the main rowsleuth CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: config file path (defaults to rowsleuth.yaml)
//
// The application loads the config file when it exists; all commands work
// without one.
//
// Example usage:
//
//	# Analyze a SQL file
//	err := Run(ctx, "v1.0.0", []string{"rowsleuth", "analyze", "report.sql"})
//
//	# Format a SQL file in place
//	err := Run(ctx, "v1.0.0", []string{"rowsleuth", "fmt", "-w", "report.sql"})
func Run(ctx context.Context, version string, args []string) error {
	app := &cli.Command{
		Name:  "rowsleuth",
		Usage: "Debug your SQL row counts",
		Description: `rowsleuth parses a SQL file and, for each query, emits progressively more
complete COUNT(*) queries mirroring how the query's clauses compose. Running
the sequence against your database shows exactly which table, join, filter,
or grouping key changed the row count.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the rowsleuth config file",
				Sources: cli.EnvVars("ROWSLEUTH_CONFIG"),
				Value:   consts.ConfigFile,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String("config")

			_, err := os.Stat(path)
			if os.IsNotExist(err) {
				return ctx, nil
			}
			if err != nil {
				return ctx, err
			}

			cfg, err := config.LoadConfigFile(path)
			if err != nil {
				return ctx, err
			}

			currentConfig = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			analyze(),
			fmtCmd(),
		},
	}

	return app.Run(ctx, args)
}
