package main

import (
	"github.com/spf13/cobra"

	"github.com/simaogato/propertyflow-backend/internal/adapter/tableio"
	"github.com/simaogato/propertyflow-backend/internal/usecase/metrics"
	"github.com/simaogato/propertyflow-backend/internal/usecase/seeder"
)

var sampleFormat string

// sampleCmd prints the sample portfolio
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the sample portfolio with its metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records := metrics.Augment(seeder.SampleProperties())
		return tableio.Write(cmd.OutOrStdout(), records, tableio.Format(sampleFormat), ',')
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", string(tableio.FormatCSV), "Output format (csv, yaml)")
}
