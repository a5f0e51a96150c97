package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteImport prints the parse summary of one file to stderr, followed by the
// first skipped rows (up to the result limit).
func WriteImport(name string, result schema.ParseResult, cfg *contract.Config) error {
	return writeImport(os.Stderr, name, result, cfg.ResultLimit)
}

func writeImport(w io.Writer, name string, result schema.ParseResult, limit int) error {
	icon := "✅"
	switch {
	case !result.Success:
		icon = "❌"
	case len(result.RowErrors) > 0:
		icon = "⚠️ "
	}
	if _, err := fmt.Fprintf(w, "%s %s: %s\n", icon, name, result.Summary()); err != nil {
		return err
	}
	if len(result.RowErrors) == 0 {
		return nil
	}

	shown := result.RowErrors
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Row", "Reason"})
	var data [][]string
	for _, re := range shown {
		data = append(data, []string{strconv.Itoa(re.Row), string(re.Reason)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if hidden := len(result.RowErrors) - len(shown); hidden > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more skipped rows\n", hidden); err != nil {
			return err
		}
	}
	return nil
}

// WriteSync prints the outcome of a document-center sync.
func WriteSync(result schema.SyncResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	}
	return writeSync(os.Stdout, result)
}

func writeSync(w io.Writer, result schema.SyncResult) error {
	var err error
	switch {
	case !result.Success:
		_, err = fmt.Fprintf(w, "❌ Sync failed: %s\n", result.Error)
	case result.ProcessedCount == 0:
		_, err = fmt.Fprintln(w, "No new donor data documents found to sync")
	default:
		_, err = fmt.Fprintf(w, "🔄 Synced %d documents, %d donors added\n", result.ProcessedCount, result.TotalDonorsAdded)
	}
	return err
}
