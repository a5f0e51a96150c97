package iocache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adminizer/giving/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStore_NoneBackend(t *testing.T) {
	err := MigrateStore(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Step down to version 1, roll back fully, then up again
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 2))
}

func TestMigrateStore_TableUsableByStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	store, err := NewDonorStore(donorTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.SaveUploadHistory(context.Background(), 1, 1, "a.csv"))
	history, err := store.GetUploadHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMigrateStore_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateStore(schema.SQLiteBackend, ":memory:", -1))
}
