//go:build integration

// Package integration contains integration tests for giving.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
// Database tests: go test -tags database ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGivingImportVerification imports two exports into a SQLite store and
// verifies the merged donors against totals computed by hand from the fixtures.
func TestGivingImportVerification(t *testing.T) {
	dir := t.TempDir()
	jan, feb := writeExports(t, dir)
	store := filepath.Join(dir, "giving.db")
	base := []string{"--store-backend", "sqlite", "--store-db-connect", store}

	_, err := runGiving(t, dir, append(base, "import", jan)...)
	require.NoError(t, err)
	_, err = runGiving(t, dir, append(base, "import", feb)...)
	require.NoError(t, err)

	exportFile := filepath.Join(dir, "donors.json")
	_, err = runGiving(t, dir, append(base, "export", "--output", "json", "--output-file", exportFile)...)
	require.NoError(t, err)

	raw, err := os.ReadFile(exportFile)
	require.NoError(t, err)
	var donors []schema.DonorData
	require.NoError(t, json.Unmarshal(raw, &donors))

	byName := make(map[string]schema.DonorData, len(donors))
	for _, d := range donors {
		byName[d.FullName()] = d
	}
	require.Len(t, byName, 3)

	expected := map[string]struct {
		total string
		count int
	}{
		"Jane Doe":   {"150", 2},
		"John Smith": {"500", 2},
		"Ana Lee":    {"25", 1},
	}
	for name, want := range expected {
		t.Run(name, func(t *testing.T) {
			got, ok := byName[name]
			require.True(t, ok, "donor %s missing from export", name)
			assert.True(t, decimal.RequireFromString(want.total).Equal(got.TotalAmount),
				"total for %s: want %s, got %s", name, want.total, got.TotalAmount)
			assert.Equal(t, want.count, got.DonationCount)
		})
	}
}

// TestGivingCSVExportReimport verifies that a CSV export imports into a fresh
// store with the same totals.
func TestGivingCSVExportReimport(t *testing.T) {
	dir := t.TempDir()
	jan, feb := writeExports(t, dir)
	first := []string{"--store-backend", "sqlite", "--store-db-connect", filepath.Join(dir, "first.db")}
	second := []string{"--store-backend", "sqlite", "--store-db-connect", filepath.Join(dir, "second.db")}

	_, err := runGiving(t, dir, append(first, "import", jan, feb)...)
	require.NoError(t, err)

	exportFile := filepath.Join(dir, "donors.csv")
	_, err = runGiving(t, dir, append(first, "export", "--output-file", exportFile)...)
	require.NoError(t, err)

	f, err := os.Open(exportFile)
	require.NoError(t, err)
	rows, err := csv.NewReader(f).ReadAll()
	_ = f.Close()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "First Name", rows[0][0])

	_, err = runGiving(t, dir, append(second, "import", exportFile)...)
	require.NoError(t, err)

	reportFile := filepath.Join(dir, "report.json")
	_, err = runGiving(t, dir, append(second, "report", "--output", "json", "--output-file", reportFile)...)
	require.NoError(t, err)

	raw, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	var report schema.AnalysisResult
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, 3, report.Summary.TotalDonors)
	assert.Equal(t, 5, report.Summary.TotalDonations)
	assert.True(t, decimal.NewFromInt(675).Equal(report.Summary.TotalAmount))
}

// TestGivingSyncVerification syncs a document folder twice and verifies that
// documents are imported only once.
func TestGivingSyncVerification(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "documents", schema.DonorDataCategory)
	require.NoError(t, os.MkdirAll(docs, 0o755))
	writeExports(t, docs)
	base := []string{"--store-backend", "sqlite", "--store-db-connect", filepath.Join(dir, "giving.db")}

	_, err := runGiving(t, dir, append(base, "sync", "--source-dir", "documents")...)
	require.NoError(t, err)
	_, err = runGiving(t, dir, append(base, "sync", "--source-dir", "documents")...)
	require.NoError(t, err)

	status, err := runGiving(t, dir, append(base, "sync", "status", "--source-dir", "documents")...)
	require.NoError(t, err)
	assert.Contains(t, status, "0 documents waiting to be synced")

	historyFile := filepath.Join(dir, "history.json")
	_, err = runGiving(t, dir, append(base, "history", "--output", "json", "--output-file", historyFile)...)
	require.NoError(t, err)

	raw, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	var history []schema.UploadHistoryEntry
	require.NoError(t, json.Unmarshal(raw, &history))
	assert.Len(t, history, 2)
}
