package cmd

import (
	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd exports every stored donor.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all donors as CSV, JSON or Parquet.",
	Long: `Export the full donor history.

CSV (the default for text output) uses the columns:
  First Name,Last Name,Email,Phone,Total Amount,Donation Count,
  Average Donation,First Donation,Last Donation,Frequency

A CSV export can be imported again with 'giving import'.

Parquet writes two files next to --output-file: <prefix>.donors.parquet and
<prefix>.uploads.parquet, for DuckDB, pandas and other analytics tools.

Examples:
  # CSV to stdout
  giving export

  # CSV to a file
  giving export --output-file donors.csv

  # Parquet for analytics
  giving export --output parquet --output-file donors
  duckdb -c "SELECT * FROM read_parquet('donors.donors.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export donors", err)
		}
	},
}
