// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"

	"github.com/adminizer/giving/schema"
)

// DonorStore is the durable donor collection plus its audit trail.
// Implementations read and write the collection as one whole blob.
type DonorStore interface {
	// LoadData returns the full donor collection, or an empty one if nothing was saved.
	LoadData(ctx context.Context) ([]schema.DonorData, error)

	// SaveData replaces the full donor collection.
	SaveData(ctx context.Context, donors []schema.DonorData) error

	// MergeNewData combines an incoming batch into an existing collection.
	// It is pure: neither argument is modified.
	MergeNewData(existing, incoming []schema.DonorData) []schema.DonorData

	// SaveUploadHistory appends one entry to the upload history.
	SaveUploadHistory(ctx context.Context, added, total int, source string) error

	// GetUploadHistory returns the upload history, oldest first.
	GetUploadHistory(ctx context.Context) ([]schema.UploadHistoryEntry, error)

	// CommitImport writes the merged collection and its history entry in one transaction.
	CommitImport(ctx context.Context, donors []schema.DonorData, entry schema.UploadHistoryEntry) error

	// ClearData removes donors, history and processed-document marks.
	ClearData(ctx context.Context) error

	// --- Document center bookkeeping ---

	// IsDocumentProcessed reports whether a document was already imported.
	IsDocumentProcessed(ctx context.Context, id string) (bool, error)

	// MarkDocumentProcessed records a document as imported.
	MarkDocumentProcessed(ctx context.Context, doc schema.ProcessedDocument) error

	// GetProcessedDocuments lists every document marked as imported.
	GetProcessedDocuments(ctx context.Context) ([]schema.ProcessedDocument, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the active donor store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetDonorStore() DonorStore
}

// DocumentSource lists and opens donor-data documents from a document center.
type DocumentSource interface {
	// ListDocuments returns donor-data documents, oldest first.
	ListDocuments(ctx context.Context) ([]schema.Document, error)

	// Open returns the document body. The caller closes it.
	Open(ctx context.Context, doc schema.Document) (io.ReadCloser, error)

	// Name identifies the source in logs and history entries.
	Name() string
}
