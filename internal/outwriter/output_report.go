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
	"github.com/shopspring/decimal"
)

// WriteReport outputs the analysis report, dispatching based on the output format configured.
func WriteReport(result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, result, cfg)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTables(w, result, cfg, duration)
		}, "Wrote report")
	}
	return nil
}

// trendPoints selects the series for the configured interval.
func trendPoints(trends schema.TrendSeries, interval schema.TrendInterval) []schema.TrendPoint {
	if interval == schema.YearlyTrend {
		return trends.Yearly
	}
	return trends.Monthly
}

// share returns part/total as a ratio, or zero when total is zero.
func share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).InexactFloat64()
}

// renderTable writes a titled table to w.
func renderTable(w io.Writer, title string, headers []string, data [][]string) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportTables generates and writes the human-readable report.
func writeReportTables(w io.Writer, result schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtMoney, fmtPercent := createFormatters(cfg.Precision)
	s := result.Summary

	if _, err := fmt.Fprintln(w, "📊 Donor Report"); err != nil {
		return err
	}

	summary := [][]string{
		{"Total Donors", strconv.Itoa(s.TotalDonors)},
		{"Total Donations", strconv.Itoa(s.TotalDonations)},
		{"Total Amount", fmtMoney(s.TotalAmount)},
		{"Average Gift", fmtMoney(s.AverageDonation)},
		{"Average Donor Value", fmtMoney(s.AverageDonorValue)},
		{"Largest Donor Total", fmtMoney(s.LargestDonorAmount)},
		{"Repeat Donors", strconv.Itoa(result.Retention.RepeatDonors)},
		{"Retention Rate", fmtPercent(result.Retention.Rate)},
	}
	if err := renderTable(w, "Summary", []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	var frequency [][]string
	for _, b := range result.Segments.ByFrequency {
		frequency = append(frequency, []string{
			frequencyLabel(schema.Frequency(b.Label), cfg.UseColors),
			strconv.Itoa(b.Donors),
			fmtMoney(b.Amount),
			fmtPercent(share(b.Amount, s.TotalAmount)),
		})
	}
	if err := renderTable(w, "By Frequency", []string{"Segment", "Donors", "Amount", "Share"}, frequency); err != nil {
		return err
	}

	var tiers [][]string
	for _, b := range result.Segments.ByTier {
		tiers = append(tiers, []string{b.Label, strconv.Itoa(b.Donors), fmtMoney(b.Amount)})
	}
	if err := renderTable(w, "By Lifetime Amount", []string{"Tier", "Donors", "Amount"}, tiers); err != nil {
		return err
	}

	var trend [][]string
	for _, p := range trendPoints(result.Trends, cfg.TrendInterval) {
		trend = append(trend, []string{p.Period, strconv.Itoa(p.Donations), fmtMoney(p.Amount)})
	}
	if len(trend) > 0 {
		title := "Monthly Trend"
		if cfg.TrendInterval == schema.YearlyTrend {
			title = "Yearly Trend"
		}
		if err := renderTable(w, title, []string{"Period", "Donations", "Amount"}, trend); err != nil {
			return err
		}
	}

	var top [][]string
	for _, r := range result.TopDonors {
		top = append(top, []string{
			strconv.Itoa(r.Rank),
			contract.TruncateText(r.Donor.FullName(), getMaxNameWidth(cfg)),
			fmtMoney(r.Donor.TotalAmount),
			strconv.Itoa(r.Donor.DonationCount),
			frequencyLabel(r.Donor.DonationFrequency, cfg.UseColors),
		})
	}
	if len(top) > 0 {
		if err := renderTable(w, "Top Donors", []string{"Rank", "Name", "Total", "Gifts", "Frequency"}, top); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nInsights"); err != nil {
		return err
	}
	for _, insight := range result.Insights {
		if _, err := fmt.Fprintf(w, "  • %s\n", insight); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nReport generated in %v. Store backend: %s\n", duration, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// writeReportCSV flattens the report into section,label,count,amount,rate rows.
func writeReportCSV(w io.Writer, result schema.AnalysisResult, cfg *contract.Config) error {
	fmtMoney, _ := createFormatters(cfg.Precision)
	rate := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	header := []string{"section", "label", "count", "amount", "rate"}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		s := result.Summary
		rows := [][]string{
			{"summary", "donors", strconv.Itoa(s.TotalDonors), fmtMoney(s.TotalAmount), ""},
			{"summary", "donations", strconv.Itoa(s.TotalDonations), fmtMoney(s.AverageDonation), ""},
			{"summary", "average_donor_value", strconv.Itoa(s.TotalDonors), fmtMoney(s.AverageDonorValue), ""},
			{"retention", "repeat_donors", strconv.Itoa(result.Retention.RepeatDonors), "", rate(result.Retention.Rate)},
		}
		for _, b := range result.Segments.ByFrequency {
			rows = append(rows, []string{"frequency", b.Label, strconv.Itoa(b.Donors), fmtMoney(b.Amount), rate(share(b.Amount, s.TotalAmount))})
		}
		for _, b := range result.Segments.ByTier {
			rows = append(rows, []string{"tier", b.Label, strconv.Itoa(b.Donors), fmtMoney(b.Amount), ""})
		}
		for _, p := range trendPoints(result.Trends, cfg.TrendInterval) {
			rows = append(rows, []string{"trend", p.Period, strconv.Itoa(p.Donations), fmtMoney(p.Amount), ""})
		}
		for _, r := range result.TopDonors {
			rows = append(rows, []string{"top", r.Donor.FullName(), strconv.Itoa(r.Donor.DonationCount), fmtMoney(r.Donor.TotalAmount), ""})
		}
		return cw.WriteAll(rows)
	})
}
