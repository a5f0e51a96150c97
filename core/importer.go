package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adminizer/giving/core/agg"
	"github.com/adminizer/giving/core/algo"
	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
)

// Errors returned by the importer.
var (
	ErrImportInFlight = errors.New("another import is already in progress")
	ErrParseFailed    = errors.New("file could not be imported")
	ErrNoStore        = errors.New("donor store is not initialized")
)

// ImportOutcome is what one successful import produced.
type ImportOutcome struct {
	Parse       schema.ParseResult
	BatchDonors int // distinct donors in the file
	TotalDonors int // donors in the store after the merge
	Analysis    schema.AnalysisResult
}

// Importer runs parse, aggregate, merge, persist and re-analyze against one store.
// Only one import or clear runs at a time per importer.
type Importer struct {
	mu    sync.Mutex
	store contract.DonorStore
	opts  algo.Options
}

// NewImporter creates an importer bound to a donor store.
func NewImporter(store contract.DonorStore, opts algo.Options) *Importer {
	return &Importer{store: store, opts: opts}
}

// ImportFile imports one uploaded file. A structural parse failure returns
// ErrParseFailed with the parse result in the outcome and leaves the store untouched.
func (im *Importer) ImportFile(ctx context.Context, file ingest.File) (ImportOutcome, error) {
	if im.store == nil {
		return ImportOutcome{}, ErrNoStore
	}
	if !im.mu.TryLock() {
		return ImportOutcome{}, ErrImportInFlight
	}
	defer im.mu.Unlock()

	result := ingest.ParseFile(file)
	outcome := ImportOutcome{Parse: result}
	if !result.Success {
		return outcome, fmt.Errorf("%w: %s", ErrParseFailed, result.Error)
	}

	batch := agg.AggregateDonors(result.Data)
	existing, err := im.store.LoadData(ctx)
	if err != nil {
		return outcome, fmt.Errorf("failed to load donors: %w", err)
	}
	merged := im.store.MergeNewData(existing, batch)

	entry := schema.UploadHistoryEntry{
		Source:       file.Name,
		RecordsAdded: len(batch),
		TotalRecords: len(merged),
	}
	if err := im.store.CommitImport(ctx, merged, entry); err != nil {
		return outcome, fmt.Errorf("failed to save donors: %w", err)
	}

	outcome.BatchDonors = len(batch)
	outcome.TotalDonors = len(merged)
	outcome.Analysis = algo.AnalyzeData(merged, im.opts)
	return outcome, nil
}

// Donors returns the stored donor collection.
func (im *Importer) Donors(ctx context.Context) ([]schema.DonorData, error) {
	if im.store == nil {
		return nil, ErrNoStore
	}
	donors, err := im.store.LoadData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load donors: %w", err)
	}
	return donors, nil
}

// Report loads the stored donors and analyzes them.
func (im *Importer) Report(ctx context.Context) (schema.AnalysisResult, error) {
	donors, err := im.Donors(ctx)
	if err != nil {
		return schema.AnalysisResult{}, err
	}
	return algo.AnalyzeData(donors, im.opts), nil
}

// History returns the upload history, oldest first.
func (im *Importer) History(ctx context.Context) ([]schema.UploadHistoryEntry, error) {
	if im.store == nil {
		return nil, ErrNoStore
	}
	history, err := im.store.GetUploadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load upload history: %w", err)
	}
	return history, nil
}

// Clear removes donors, history and processed-document marks.
func (im *Importer) Clear(ctx context.Context) error {
	if im.store == nil {
		return ErrNoStore
	}
	if !im.mu.TryLock() {
		return ErrImportInFlight
	}
	defer im.mu.Unlock()

	if err := im.store.ClearData(ctx); err != nil {
		return fmt.Errorf("failed to clear donor data: %w", err)
	}
	return nil
}
