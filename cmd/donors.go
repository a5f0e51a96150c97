package cmd

import (
	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// donorsCmd lists donors ranked by lifetime giving.
var donorsCmd = &cobra.Command{
	Use:   "donors",
	Short: "List donors ranked by lifetime giving.",
	Long: `Print the donor directory ordered by total amount given, highest first.

Examples:
  # Top 10 donors
  giving donors

  # Top 50 donors as CSV
  giving donors --limit 50 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDonors(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list donors", err)
		}
	},
}
