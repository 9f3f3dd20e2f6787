package main

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simaogato/propertyflow-backend/internal/adapter/tableio"
	"github.com/simaogato/propertyflow-backend/internal/usecase/portfolio"
)

var (
	outputFormat string
	delimiter    string
	maxBytes     int64
)

// analyzeCmd computes the augmented table of a delimited file
var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Compute investment metrics for a delimited file",
	Long: `Reads a delimited file with a header row, validates it and prints the
table with the eight derived metric columns appended. Use "-" to read
from standard input.

Example:
  propertyflow analyze properties.csv --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", string(tableio.FormatCSV), "Output format (csv, yaml)")
	analyzeCmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", `Field delimiter of the input file ("\t" for tab)`)
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", tableio.DefaultMaxBytes, "Size limit of the input file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	comma, err := parseDelimiter(delimiter)
	if err != nil {
		return err
	}

	var src io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		src = f
	}

	parser := tableio.NewCSVParser(tableio.Options{Delimiter: comma, MaxBytes: maxBytes})
	records, err := portfolio.Analyze(parser, src)
	if err != nil {
		return err
	}

	logger.Debug("table analyzed",
		zap.String("file", args[0]),
		zap.Int("records", len(records)))

	return tableio.Write(cmd.OutOrStdout(), records, tableio.Format(outputFormat), ',')
}

// parseDelimiter accepts a single character, or \t for tab
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
