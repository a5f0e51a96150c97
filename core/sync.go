package core

import (
	"context"
	"fmt"

	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
)

// Syncer imports donor-data documents from a document source that were not imported yet.
type Syncer struct {
	source   contract.DocumentSource
	importer *Importer
}

// NewSyncer creates a syncer feeding documents through the importer.
func NewSyncer(source contract.DocumentSource, importer *Importer) *Syncer {
	return &Syncer{source: source, importer: importer}
}

// pending lists documents not yet marked processed, oldest first.
func (s *Syncer) pending(ctx context.Context) ([]schema.Document, error) {
	if s.importer.store == nil {
		return nil, ErrNoStore
	}
	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents from %s: %w", s.source.Name(), err)
	}

	var out []schema.Document
	for _, doc := range docs {
		done, err := s.importer.store.IsDocumentProcessed(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		if !done {
			out = append(out, doc)
		}
	}
	return out, nil
}

// UnprocessedCount returns the number of documents waiting to be imported.
func (s *Syncer) UnprocessedCount(ctx context.Context) (int, error) {
	docs, err := s.pending(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// HasUnprocessed reports whether any document is waiting to be imported.
func (s *Syncer) HasUnprocessed(ctx context.Context) (bool, error) {
	n, err := s.UnprocessedCount(ctx)
	return n > 0, err
}

// Sync imports every pending document. Documents that fail to download or
// parse are logged and skipped, and stay pending for the next sync.
// Only a failure to list documents fails the whole sync.
func (s *Syncer) Sync(ctx context.Context) schema.SyncResult {
	docs, err := s.pending(ctx)
	if err != nil {
		return schema.SyncResult{Success: false, Error: err.Error()}
	}

	result := schema.SyncResult{Success: true}
	for _, doc := range docs {
		added, err := s.syncDocument(ctx, doc)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping document %s", doc.Name), err)
			continue
		}
		result.ProcessedCount++
		result.TotalDonorsAdded += added
		contract.LogInfo("✅ Processed %s: %d donors added", doc.Name, added)
	}
	return result
}

// syncDocument imports one document and marks it processed.
func (s *Syncer) syncDocument(ctx context.Context, doc schema.Document) (int, error) {
	body, err := s.source.Open(ctx, doc)
	if err != nil {
		return 0, fmt.Errorf("failed to download: %w", err)
	}
	defer func() { _ = body.Close() }()

	outcome, err := s.importer.ImportFile(ctx, ingest.File{
		Name:        doc.Name,
		ContentType: doc.ContentType,
		Body:        body,
	})
	if err != nil {
		return 0, err
	}

	// The donors are already saved; a failed mark only means a later re-import
	// double-counts this document.
	if err := s.importer.store.MarkDocumentProcessed(ctx, schema.ProcessedDocument{ID: doc.ID, Name: doc.Name}); err != nil {
		contract.LogWarn(fmt.Sprintf("failed to mark %s as processed", doc.Name), err)
	}
	return outcome.BatchDonors, nil
}
