// Package schema holds the data types shared by every layer of giving.
package schema

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DonationRecord is one normalized gift produced by the parser.
type DonationRecord struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Row       int             `json:"row"` // 1-based data row in the source file
}

// Key returns the donor identity key of the record.
func (r DonationRecord) Key() string {
	return IdentityKey(r.Email, r.FirstName, r.LastName)
}

// DonorData is the persisted, per-identity donor entity.
type DonorData struct {
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Email             string          `json:"email,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DonationCount     int             `json:"donation_count"`
	AverageDonation   decimal.Decimal `json:"average_donation"`
	FirstDonation     time.Time       `json:"first_donation"`
	LastDonation      time.Time       `json:"last_donation"`
	DonationFrequency Frequency       `json:"donation_frequency"`
}

// Key returns the donor identity key.
func (d DonorData) Key() string {
	return IdentityKey(d.Email, d.FirstName, d.LastName)
}

// FullName returns "First Last".
func (d DonorData) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// RowError records why a single data row was skipped.
type RowError struct {
	Row    int          `json:"row"`
	Reason RejectReason `json:"reason"`
}

// ParseResult is the outcome of parsing one uploaded file.
// Success is false only on a structural failure; row errors alone never fail the batch.
type ParseResult struct {
	Success   bool             `json:"success"`
	Data      []DonationRecord `json:"data,omitempty"`
	Error     string           `json:"error,omitempty"`
	RowErrors []RowError       `json:"row_errors"`
	TotalRows int              `json:"total_rows"`
}

// Summary returns a human-readable line that tells batch failures apart from row warnings.
func (p ParseResult) Summary() string {
	if !p.Success {
		return "Import failed: " + p.Error
	}
	if len(p.RowErrors) == 0 {
		return fmt.Sprintf("Imported %d of %d rows", len(p.Data), p.TotalRows)
	}
	return fmt.Sprintf("Imported %d of %d rows (%d of %d rows skipped)", len(p.Data), p.TotalRows, len(p.RowErrors), p.TotalRows)
}

// UploadHistoryEntry is one append-only audit record of a successful import.
type UploadHistoryEntry struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Source       string    `json:"source,omitempty"`
	RecordsAdded int       `json:"records_added"`
	TotalRecords int       `json:"total_records"`
}

// ProcessedDocument marks a document-center file as already imported.
type ProcessedDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Document is a donor-data file offered by a document source.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// SyncResult mirrors the outcome of a document-center sync.
type SyncResult struct {
	Success          bool   `json:"success"`
	ProcessedCount   int    `json:"processed_count"`
	TotalDonorsAdded int    `json:"total_donors_added"`
	Error            string `json:"error,omitempty"`
}
