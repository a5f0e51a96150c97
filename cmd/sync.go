package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/internal/contract"
	"github.com/spf13/cobra"
)

// syncCmd imports new documents from the document center.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import new donor files from the document center.",
	Long: `Import every donor data document that has not been imported yet.

The document center is either a local folder (--source dir, the default) or an
S3 bucket (--source s3). In a folder, files in the "Donor Data" sub-folder and
CSV files at the top level are donor data.

Documents that fail to download or parse are skipped and retried on the next
sync. Imported documents are remembered and never imported twice.

Subcommands:
  status - Show how many documents are waiting

Examples:
  # Sync from ./documents
  giving sync

  # Sync from another folder
  giving sync --source-dir /srv/document-center

  # Sync from S3
  giving sync --source s3 --s3-bucket acme-docs --s3-prefix donor-data/`,
	PreRunE: sourceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSync(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot sync documents", err)
		}
	},
}

// syncStatusCmd reports waiting documents.
var syncStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show how many documents are waiting to be synced.",
	PreRunE: sourceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSyncStatus(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot check sync status", err)
		}
	},
}

// watchCmd keeps syncing a local document folder.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync the document folder whenever a donor file lands in it.",
	Long: `Run a sync, then keep watching the document folder and sync again after
new or changed donor files settle (see --debounce). Stop with Ctrl+C.

Only the dir source can be watched.

Examples:
  giving watch
  giving watch --source-dir /srv/document-center --debounce 5s`,
	PreRunE: sourceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot watch documents", err)
		}
	},
}
