package iocache

import (
	"context"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetDonorStore implements the StoreManager interface.
func (m *MockStoreManager) GetDonorStore() contract.DonorStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.DonorStore)
	return store
}

// MockDonorStore is a mock implementation of DonorStore for testing.
// MergeNewData is not mocked; it runs the real merge.
type MockDonorStore struct {
	mock.Mock
}

var _ contract.DonorStore = &MockDonorStore{} // Compile-time check

// LoadData implements the DonorStore interface.
func (m *MockDonorStore) LoadData(ctx context.Context) ([]schema.DonorData, error) {
	args := m.Called(ctx)
	donors, _ := args.Get(0).([]schema.DonorData)
	return donors, args.Error(1)
}

// SaveData implements the DonorStore interface.
func (m *MockDonorStore) SaveData(ctx context.Context, donors []schema.DonorData) error {
	args := m.Called(ctx, donors)
	return args.Error(0)
}

// MergeNewData implements the DonorStore interface.
func (m *MockDonorStore) MergeNewData(existing, incoming []schema.DonorData) []schema.DonorData {
	return MergeDonors(existing, incoming)
}

// SaveUploadHistory implements the DonorStore interface.
func (m *MockDonorStore) SaveUploadHistory(ctx context.Context, added, total int, source string) error {
	args := m.Called(ctx, added, total, source)
	return args.Error(0)
}

// GetUploadHistory implements the DonorStore interface.
func (m *MockDonorStore) GetUploadHistory(ctx context.Context) ([]schema.UploadHistoryEntry, error) {
	args := m.Called(ctx)
	history, _ := args.Get(0).([]schema.UploadHistoryEntry)
	return history, args.Error(1)
}

// CommitImport implements the DonorStore interface.
func (m *MockDonorStore) CommitImport(ctx context.Context, donors []schema.DonorData, entry schema.UploadHistoryEntry) error {
	args := m.Called(ctx, donors, entry)
	return args.Error(0)
}

// ClearData implements the DonorStore interface.
func (m *MockDonorStore) ClearData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// IsDocumentProcessed implements the DonorStore interface.
func (m *MockDonorStore) IsDocumentProcessed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MarkDocumentProcessed implements the DonorStore interface.
func (m *MockDonorStore) MarkDocumentProcessed(ctx context.Context, doc schema.ProcessedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// GetProcessedDocuments implements the DonorStore interface.
func (m *MockDonorStore) GetProcessedDocuments(ctx context.Context) ([]schema.ProcessedDocument, error) {
	args := m.Called(ctx)
	docs, _ := args.Get(0).([]schema.ProcessedDocument)
	return docs, args.Error(1)
}

// GetStatus implements the DonorStore interface.
func (m *MockDonorStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the DonorStore interface.
func (m *MockDonorStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
