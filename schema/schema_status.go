package schema

import "time"

// StoreStatus represents the status of the donor store.
type StoreStatus struct {
	Backend            string    `json:"backend"`
	Connected          bool      `json:"connected"`
	TotalEntries       int       `json:"total_entries"`
	TotalDonors        int       `json:"total_donors"`
	UploadCount        int       `json:"upload_count"`
	ProcessedDocuments int       `json:"processed_documents"`
	LastEntryTime      time.Time `json:"last_entry_time"`
	OldestEntryTime    time.Time `json:"oldest_entry_time"`
	TableSizeBytes     int64     `json:"table_size_bytes"`
}
