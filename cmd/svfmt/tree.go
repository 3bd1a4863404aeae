package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"svfmt/internal/diagfmt"
	"svfmt/internal/driver"
	"svfmt/internal/source"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.sv",
	Short: "Print the syntax tree the formatter walks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().String("format", "outline", "output format (outline|go|json)")
}

func runTree(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	res, bag := driver.ParseFile(fs.Get(id), maxDiagnostics)
	if format == "json" {
		return diagfmt.JSON(cmd.OutOrStdout(), bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	}
	if !res.OK() {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: useColor(os.Stderr), Context: 1, ShowNotes: true})
		return fmt.Errorf("%s %w", args[0], driver.ErrParseFailed)
	}

	switch format {
	case "outline":
		return res.Tree.Dump(cmd.OutOrStdout())
	case "go":
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(res.Tree.Root))
		return err
	default:
		return errors.New("unknown format: " + format)
	}
}
