package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
)

// ExportHeader is the fixed column order of the donor CSV export.
var ExportHeader = []string{
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Total Amount",
	"Donation Count",
	"Average Donation",
	"First Donation",
	"Last Donation",
	"Frequency",
}

// WriteExport writes the full donor collection as CSV, or JSON when configured.
// Parquet export is handled by the store.
func WriteExport(donors []schema.DonorData, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, donors)
		}, fmt.Sprintf("Exported %d donors as JSON", len(donors))); err != nil {
			return fmt.Errorf("error writing JSON export: %w", err)
		}
		return nil
	}
	if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDonorExportCSV(w, donors)
	}, fmt.Sprintf("Exported %d donors as CSV", len(donors))); err != nil {
		return fmt.Errorf("error writing CSV export: %w", err)
	}
	return nil
}

// WriteDonorExportCSV writes donors in the export layout: yyyy-MM-dd dates and
// two-decimal amounts. The file can be imported again.
func WriteDonorExportCSV(w io.Writer, donors []schema.DonorData) error {
	return writeCSVWithHeader(w, ExportHeader, func(cw *csv.Writer) error {
		for _, d := range donors {
			d.Recompute()
			rec := []string{
				d.FirstName,
				d.LastName,
				d.Email,
				d.Phone,
				d.TotalAmount.StringFixed(2),
				strconv.Itoa(d.DonationCount),
				d.AverageDonation.StringFixed(2),
				d.FirstDonation.Format(schema.DateLayout),
				d.LastDonation.Format(schema.DateLayout),
				string(d.DonationFrequency),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
