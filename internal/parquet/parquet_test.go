package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDonors() []schema.DonorData {
	jane := schema.DonorData{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@x.com",
		TotalAmount:   decimal.RequireFromString("150"),
		DonationCount: 2,
		FirstDonation: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		LastDonation:  time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	john := schema.DonorData{
		FirstName:     "John",
		LastName:      "Smith",
		Phone:         "555-0100",
		TotalAmount:   decimal.RequireFromString("100"),
		DonationCount: 3,
		FirstDonation: time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC),
		LastDonation:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	return []schema.DonorData{jane, john}
}

// readAll reads every row of a Parquet file written with type T.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestDonorRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(DonorRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"first_name",
		"last_name",
		"email",
		"phone",
		"total_amount",
		"donation_count",
		"average_donation",
		"first_donation",
		"last_donation",
		"frequency",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertDonors(t *testing.T) {
	rows := ConvertDonors(sampleDonors())
	require.Len(t, rows, 2)

	assert.Equal(t, "150.00", rows[0].TotalAmount)
	assert.Equal(t, "75.00", rows[0].AverageDonation)
	assert.Equal(t, "occasional", rows[0].Frequency)
	require.NotNil(t, rows[0].Email)
	assert.Equal(t, "jane@x.com", *rows[0].Email)
	assert.Nil(t, rows[0].Phone, "empty phone is null")

	assert.Equal(t, "33.33", rows[1].AverageDonation, "average is derived, not trusted")
	assert.Nil(t, rows[1].Email)
}

func TestWriteDonorsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "donors.parquet")
	data := ConvertDonors(sampleDonors())

	require.NoError(t, WriteDonorsParquet(data, outputPath), "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData := readAll[DonorRow](t, outputPath)
	require.Len(t, readData, len(data), "Should read all records")
	for i := range data {
		assert.Equal(t, data[i].FirstName, readData[i].FirstName)
		assert.Equal(t, data[i].LastName, readData[i].LastName)
		assert.Equal(t, data[i].TotalAmount, readData[i].TotalAmount)
		assert.Equal(t, data[i].DonationCount, readData[i].DonationCount)
		assert.Equal(t, data[i].Frequency, readData[i].Frequency)
		assert.WithinDuration(t, data[i].FirstDonation, readData[i].FirstDonation, time.Nanosecond)
		assert.WithinDuration(t, data[i].LastDonation, readData[i].LastDonation, time.Nanosecond)

		if data[i].Email == nil {
			assert.Nil(t, readData[i].Email, "Email should be nil")
		} else {
			require.NotNil(t, readData[i].Email, "Email should not be nil")
			assert.Equal(t, *data[i].Email, *readData[i].Email)
		}
	}
}

func TestWriteUploadsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "uploads.parquet")
	data := ConvertUploads([]schema.UploadHistoryEntry{
		{ID: "a", Date: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Source: "may.csv", RecordsAdded: 3, TotalRecords: 3},
		{ID: "b", Date: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), RecordsAdded: 1, TotalRecords: 4},
	})

	require.NoError(t, WriteUploadsParquet(data, outputPath))

	readData := readAll[UploadRow](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, "a", readData[0].ID)
	require.NotNil(t, readData[0].Source)
	assert.Equal(t, "may.csv", *readData[0].Source)
	assert.Nil(t, readData[1].Source)
	assert.Equal(t, int32(4), readData[1].TotalRecords)
}

func TestWriteDonorsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteDonorsParquet([]DonorRow{}, outputPath), "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Parquet file should have metadata even when empty")
	assert.Empty(t, readAll[DonorRow](t, outputPath))
}

func TestWriteDonorsParquet_InvalidPath(t *testing.T) {
	err := WriteDonorsParquet(ConvertDonors(sampleDonors()), filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err, "Should fail when the directory does not exist")
}
