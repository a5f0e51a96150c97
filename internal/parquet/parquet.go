// Package parquet provides data structures and functions for exporting donor
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/parquet-go/parquet-go"
)

// DonorRow represents one donor in the export.
// Columns follow the CSV export order.
type DonorRow struct {
	// FirstName is the donor's given name
	FirstName string `parquet:"first_name,snappy"`

	// LastName is the donor's family name
	LastName string `parquet:"last_name,snappy"`

	// Email is the latest known email (nullable)
	Email *string `parquet:"email,optional,snappy"`

	// Phone is the latest known phone number (nullable)
	Phone *string `parquet:"phone,optional,snappy"`

	// TotalAmount is the lifetime total as a decimal string so cents are exact
	TotalAmount string `parquet:"total_amount,snappy"`

	// DonationCount is the lifetime number of gifts
	DonationCount int32 `parquet:"donation_count,snappy"`

	// AverageDonation is rounded to two decimals
	AverageDonation string `parquet:"average_donation,snappy"`

	// FirstDonation is the date of the earliest gift
	FirstDonation time.Time `parquet:"first_donation,snappy"`

	// LastDonation is the date of the latest gift
	LastDonation time.Time `parquet:"last_donation,snappy"`

	// Frequency is the plain frequency label
	Frequency string `parquet:"frequency,snappy"`
}

// UploadRow represents one entry of the upload history.
type UploadRow struct {
	ID           string    `parquet:"id,snappy"`
	UploadedAt   time.Time `parquet:"uploaded_at,snappy"`
	Source       *string   `parquet:"source,optional,snappy"`
	RecordsAdded int32     `parquet:"records_added,snappy"`
	TotalRecords int32     `parquet:"total_records,snappy"`
}

// writeParquet writes rows of any struct type to a new Parquet file.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteDonorsParquet writes a slice of DonorRow structs to a Parquet file.
func WriteDonorsParquet(data []DonorRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteUploadsParquet writes a slice of UploadRow structs to a Parquet file.
func WriteUploadsParquet(data []UploadRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertDonors converts schema.DonorData to DonorRow for Parquet export.
func ConvertDonors(donors []schema.DonorData) []DonorRow {
	result := make([]DonorRow, len(donors))
	for i, d := range donors {
		d.Recompute()
		result[i] = DonorRow{
			FirstName:       d.FirstName,
			LastName:        d.LastName,
			Email:           optional(d.Email),
			Phone:           optional(d.Phone),
			TotalAmount:     d.TotalAmount.StringFixed(2),
			DonationCount:   int32(d.DonationCount),
			AverageDonation: d.AverageDonation.StringFixed(2),
			FirstDonation:   d.FirstDonation.UTC(),
			LastDonation:    d.LastDonation.UTC(),
			Frequency:       string(d.DonationFrequency),
		}
	}
	return result
}

// ConvertUploads converts schema.UploadHistoryEntry to UploadRow for Parquet export.
func ConvertUploads(entries []schema.UploadHistoryEntry) []UploadRow {
	result := make([]UploadRow, len(entries))
	for i, e := range entries {
		result[i] = UploadRow{
			ID:           e.ID,
			UploadedAt:   e.Date.UTC(),
			Source:       optional(e.Source),
			RecordsAdded: int32(e.RecordsAdded),
			TotalRecords: int32(e.TotalRecords),
		}
	}
	return result
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
