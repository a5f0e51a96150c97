package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDonors outputs the ranked donor directory, dispatching based on the output format configured.
func WriteDonors(ranked []schema.RankedDonor, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDonorsJSON(w, ranked)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDonorsCSV(w, ranked)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDonorsTable(w, ranked, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeDonorsTable generates and writes the human-readable table.
func writeDonorsTable(w io.Writer, ranked []schema.RankedDonor, cfg *contract.Config, duration time.Duration) error {
	fmtMoney, _ := createFormatters(cfg.Precision)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Name", "Email", "Total", "Gifts", "Average", "Last Gift", "Frequency"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxNameWidth(cfg)
	var data [][]string
	for _, r := range ranked {
		d := r.Donor
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(d.FullName(), nameWidth),
			contract.TruncateText(d.Email, nameWidth),
			fmtMoney(d.TotalAmount),
			strconv.Itoa(d.DonationCount),
			fmtMoney(d.AverageDonation),
			d.LastDonation.Format(schema.DateLayout),
			frequencyLabel(d.DonationFrequency, cfg.UseColors),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d donors\n", len(ranked)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Loaded in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeDonorsCSV writes the ranked directory with a rank column.
func writeDonorsCSV(w io.Writer, ranked []schema.RankedDonor) error {
	header := []string{"rank", "key", "first_name", "last_name", "email", "phone", "total_amount", "donation_count", "average_donation", "first_donation", "last_donation", "frequency"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range ranked {
			d := r.Donor
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Key,
				d.FirstName,
				d.LastName,
				d.Email,
				d.Phone,
				d.TotalAmount.StringFixed(2),
				strconv.Itoa(d.DonationCount),
				d.AverageDonation.StringFixed(2),
				d.FirstDonation.Format(schema.DateLayout),
				d.LastDonation.Format(schema.DateLayout),
				contract.GetPlainLabel(d.DonationFrequency),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDonorsJSON writes the ranked directory with plain labels added.
func writeDonorsJSON(w io.Writer, ranked []schema.RankedDonor) error {
	type JSONDonor struct {
		schema.RankedDonor
		Label string `json:"label"`
	}

	output := make([]JSONDonor, len(ranked))
	for i, r := range ranked {
		output[i] = JSONDonor{RankedDonor: r, Label: contract.GetPlainLabel(r.Donor.DonationFrequency)}
	}
	return writeJSON(w, output)
}
