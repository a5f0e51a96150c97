package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/adminizer/giving/core/algo"
	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/internal/iocache"
	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/require"
)

const januaryCSV = `First Name,Last Name,Email,Amount,Date
Jane,Doe,jane@x.com,100,2024-01-05
John,Smith,,200,2024-01-20
`

const februaryCSV = `First Name,Last Name,Email,Amount,Date
Jane,Doe,JANE@x.com,50,2024-02-10
John,Smith,,300,2024-02-11
Ana,Lee,ana@x.com,25,2024-02-12
`

func csvInput(name, body string) ingest.File {
	return ingest.File{Name: name, ContentType: "text/csv", Body: bytes.NewReader([]byte(body))}
}

// newTestStore opens a SQLite store in a temp dir.
func newTestStore(t *testing.T) *iocache.DonorStoreImpl {
	t.Helper()
	store, err := iocache.NewDonorStore("giving_test", schema.SQLiteBackend, filepath.Join(t.TempDir(), "giving.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestImporter(t *testing.T) (*Importer, *iocache.DonorStoreImpl) {
	store := newTestStore(t)
	return NewImporter(store, algo.DefaultOptions()), store
}

// storeManager hands out a fixed store.
type storeManager struct {
	store contract.DonorStore
}

func (m storeManager) GetDonorStore() contract.DonorStore { return m.store }

// fakeSource is an in-memory document center.
type fakeSource struct {
	docs    []schema.Document
	bodies  map[string]string
	listErr error
	opened  []string
}

var _ contract.DocumentSource = &fakeSource{} // Compile-time check

func (f *fakeSource) ListDocuments(context.Context) ([]schema.Document, error) {
	return f.docs, f.listErr
}

func (f *fakeSource) Open(_ context.Context, doc schema.Document) (io.ReadCloser, error) {
	f.opened = append(f.opened, doc.ID)
	body, ok := f.bodies[doc.ID]
	if !ok {
		return nil, errors.New("download failed")
	}
	return io.NopCloser(bytes.NewReader([]byte(body))), nil
}

func (f *fakeSource) Name() string { return "fake" }
