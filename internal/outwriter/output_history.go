package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteHistory outputs the upload history, dispatching based on the output format configured.
func WriteHistory(history []schema.UploadHistoryEntry, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, history)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryCSV(w, history)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, history, cfg)
		}, "Wrote table")
	}
}

func writeHistoryTable(w io.Writer, history []schema.UploadHistoryEntry, cfg *contract.Config) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No uploads recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Date", "Source", "Donors Added", "Total Donors"})
	var data [][]string
	for i, e := range history {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			e.Date.Local().Format("2006-01-02 15:04:05"),
			contract.TruncateText(e.Source, getMaxNameWidth(cfg)),
			strconv.Itoa(e.RecordsAdded),
			strconv.Itoa(e.TotalRecords),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeHistoryCSV(w io.Writer, history []schema.UploadHistoryEntry) error {
	header := []string{"id", "date", "source", "records_added", "total_records"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range history {
			rec := []string{
				e.ID,
				e.Date.UTC().Format(contract.DateTimeFormat),
				e.Source,
				strconv.Itoa(e.RecordsAdded),
				strconv.Itoa(e.TotalRecords),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
