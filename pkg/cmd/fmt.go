package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rowsleuth/rowsleuth/pkg/consts"
	"github.com/rowsleuth/rowsleuth/pkg/format"
	"github.com/rowsleuth/rowsleuth/pkg/parser"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates the CLI command for canonicalizing SQL files. It parses
// each file and writes every statement back in the tool's canonical
// single-line form, the same rendering the analyzer uses for its count
// queries, so formatted files diff cleanly against analysis output.
//
// Path handling:
//   - File paths: format the specified SQL file directly
//   - Directory paths: recursively find and format all .sql files
//
// Flags:
//   - -w: write results back to source files instead of stdout
//
// Examples:
//
//	# Format a single file to stdout
//	rowsleuth fmt queries.sql
//
//	# Format all SQL files in a directory tree in place
//	rowsleuth fmt -w queries/
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Rewrite SQL files in canonical form",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			return formatPath(cmd.Args().First(), cmd.Bool("write"), cmd.Writer)
		},
	}
}

// formatPath dispatches to single-file or directory formatting based on what
// the path points at.
func formatPath(path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(path, writeBack, writer)
	}

	return formatFile(path, writeBack, writer)
}

// formatDirectory formats every .sql file under dir, in walk order.
func formatDirectory(dir string, writeBack bool, writer io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(sqlFile, writeBack, writer); err != nil {
			return err
		}
	}

	return nil
}

// formatFile parses one SQL file and writes its canonical form to stdout or
// back to the file.
func formatFile(path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	file, err := parser.ParseString(string(content))
	if err != nil {
		return errors.Wrapf(err, "failed to parse SQL in file: %s", path)
	}

	var buf strings.Builder
	if err := format.Format(&buf, file.Statements...); err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	if writeBack {
		if err := os.WriteFile(path, []byte(buf.String()), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	}

	if _, err := fmt.Fprint(writer, buf.String()); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}
