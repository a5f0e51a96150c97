package cmd

import (
	"fmt"

	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd prints the upload history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past imports.",
	Long: `List every successful import with its date, source, the number of donors
in the file and the number of donors stored afterwards.

Examples:
  giving history
  giving history --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show upload history", err)
		}
	},
}

// clearCmd removes all stored donor data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all donors and upload history.",
	Long: `Delete the stored donors, the upload history and the record of synced documents.
The store itself is kept; use 'giving store clear' to remove it.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  giving export --output-file backup.csv
  giving clear`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClear(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot clear donor data", err)
		}
		fmt.Println("Donor data cleared successfully.")
	},
}
