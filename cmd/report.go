package cmd

import (
	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd prints the analytics report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the donor analytics report.",
	Long: `Analyze the stored donor history and print a report.

The report includes:
- Totals: donors, gifts, amount and averages
- Segments by giving frequency (one-time, occasional, frequent)
- Segments by lifetime amount tier (see --tiers)
- Monthly or yearly giving trend (see --trend)
- Repeat donor rate
- Top donors and plain-language insights

Examples:
  # Default report
  giving report

  # Custom tiers and a yearly trend
  giving report --tiers 50,250,1000 --trend year

  # Save the report as CSV
  giving report --output csv --output-file report.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}
