package cmd

import (
	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd imports one or more donation files.
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import donation files into the donor history.",
	Long: `Parse one or more CSV, TSV or TXT donation exports and merge them into the stored donor history.

Each file is read with its delimiter detected from the header line. Columns are
matched by name (e.g., "First Name", "Donor Name", "Gift Amount", "Date").
Rows with a missing name, an invalid amount or an unreadable date are skipped
and listed; the rest of the file is still imported.

Donors are matched by email, or by first and last name when no email is given.
Matching donors have their totals, counts and dates combined.

Examples:
  # Import a single export
  giving import january.csv

  # Import several files in order
  giving import q1.csv q2.csv q3.csv

  # Read from standard input
  cat gifts.tsv | giving import -

  # Import and print the report as JSON
  giving import gifts.csv --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteImport(rootCtx, cfg, storeManager, args); err != nil {
			contract.LogFatal("Cannot import donation files", err)
		}
	},
}
