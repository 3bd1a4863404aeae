package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"svfmt/internal/diagfmt"
	"svfmt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.sv",
	Short: "Dump the tokens of a SystemVerilog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	res, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return err
	}

	// Выводим диагностику в stderr, если есть
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: useColor(os.Stderr), Context: 1})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens, res.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
