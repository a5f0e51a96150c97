package ingest

import (
	"bytes"
	_ "embed"
	"errors"
	"strings"
	"testing"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/basic_import.csv
var basicImportCSV []byte

//go:embed testdata/malformed_row.csv
var malformedRowCSV []byte

//go:embed testdata/semicolon_fullname.csv
var semicolonFullNameCSV []byte

func csvFile(name string, body []byte) File {
	return File{Name: name, ContentType: "text/csv", Body: bytes.NewReader(body)}
}

func TestParseFile_BasicImport(t *testing.T) {
	result := ParseFile(csvFile("gifts.csv", basicImportCSV))

	require.True(t, result.Success)
	require.Len(t, result.Data, 2)
	assert.Empty(t, result.RowErrors)
	assert.Equal(t, 2, result.TotalRows)

	first := result.Data[0]
	assert.Equal(t, "Jane", first.FirstName)
	assert.Equal(t, "Doe", first.LastName)
	assert.Equal(t, "jane@x.com", first.Email)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "2024-01-05", first.Date.Format(schema.DateLayout))
	assert.Equal(t, 1, first.Row)
	assert.Equal(t, 2, result.Data[1].Row)
}

func TestParseFile_MalformedRowTolerance(t *testing.T) {
	result := ParseFile(csvFile("gifts.csv", malformedRowCSV))

	require.True(t, result.Success)
	assert.Len(t, result.Data, 4)
	assert.Equal(t, []schema.RowError{{Row: 3, Reason: schema.InvalidAmount}}, result.RowErrors)
	assert.Equal(t, "Imported 4 of 5 rows (1 of 5 rows skipped)", result.Summary())

	dev := result.Data[2]
	assert.Equal(t, "Dev", dev.FirstName)
	assert.True(t, dev.Amount.Equal(decimal.RequireFromString("1250")))
	assert.Equal(t, "2024-03-04", dev.Date.Format(schema.DateLayout))

	eli := result.Data[3]
	assert.Equal(t, "2024-03-05", eli.Date.Format(schema.DateLayout))
}

func TestParseFile_SemicolonAndFullName(t *testing.T) {
	result := ParseFile(csvFile("export.csv", semicolonFullNameCSV))

	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Maria", result.Data[0].FirstName)
	assert.Equal(t, "Garcia Lopez", result.Data[0].LastName)
	assert.Equal(t, "maria@example.org", result.Data[0].Email)
	assert.True(t, result.Data[0].Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, []schema.RowError{{Row: 2, Reason: schema.MissingName}}, result.RowErrors)
}

func TestParseFile_TabDelimitedWithBOM(t *testing.T) {
	body := "\xef\xbb\xbfFirst\tLast\tDonation\tDonation Date\nAna\tLee\t10\t2024-01-01\n"
	result := ParseFile(File{Name: "gifts.tsv", Body: strings.NewReader(body)})

	require.True(t, result.Success, result.Error)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Ana", result.Data[0].FirstName)
}

func TestParseFile_SkipsDelimiterOnlyRows(t *testing.T) {
	body := "First Name,Last Name,Amount,Date\n,,,\nAna,Lee,5,2024-01-01\n"
	result := ParseFile(csvFile("gifts.csv", []byte(body)))

	require.True(t, result.Success)
	assert.Len(t, result.Data, 1)
	assert.Equal(t, []schema.RowError{{Row: 1, Reason: schema.EmptyRow}}, result.RowErrors)
}

func TestParseFile_BlankLinesKeepFileRowNumbers(t *testing.T) {
	body := "Name,Amount,Date\nAna Lee,5,2024-01-01\n\nBo Li,abc,2024-01-02\n"
	result := ParseFile(csvFile("gifts.csv", []byte(body)))

	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 1, result.Data[0].Row)
	assert.Equal(t, []schema.RowError{{Row: 3, Reason: schema.InvalidAmount}}, result.RowErrors)
	assert.Equal(t, 2, result.TotalRows)
}

func TestParseFile_SummaryCountOutOfRange(t *testing.T) {
	header := "First Name,Last Name,Email,Phone,Total Amount,Donation Count,Average Donation,First Donation,Last Donation,Frequency\n"
	tests := []struct {
		name  string
		count string
	}{
		{"max int64", "9223372036854775807"},
		{"above cap", "100001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := header +
				"Jane,Doe,jane@x.com,,150.00,2,75.00,2024-01-05,2024-02-10,occasional\n" +
				"Huge,Count,,,10.00," + tt.count + ",0.00,2024-01-05,2024-02-10,frequent\n"

			var result schema.ParseResult
			require.NotPanics(t, func() {
				result = ParseFile(csvFile("export.csv", []byte(body)))
			})
			require.True(t, result.Success)
			assert.Len(t, result.Data, 2)
			assert.Equal(t, []schema.RowError{{Row: 2, Reason: schema.InvalidAmount}}, result.RowErrors)
		})
	}
}

func TestParse_StructuralFailures(t *testing.T) {
	tests := []struct {
		name     string
		file     File
		expected error
	}{
		{"unsupported format", File{Name: "gifts.xlsx", Body: strings.NewReader("x")}, ErrUnsupportedFormat},
		{"unsupported content type", File{Name: "upload", ContentType: "image/png", Body: strings.NewReader("x")}, ErrUnsupportedFormat},
		{"nil body", File{Name: "gifts.csv"}, ErrUnreadable},
		{"read error", File{Name: "gifts.csv", Body: failingReader{}}, ErrUnreadable},
		{"empty file", csvFile("gifts.csv", nil), ErrNoHeader},
		{"blank lines only", csvFile("gifts.csv", []byte("\n \n")), ErrNoHeader},
		{"no usable columns", csvFile("gifts.csv", []byte("Foo,Bar\n1,2\n")), ErrNoColumns},
		{"missing date column", csvFile("gifts.csv", []byte("Name,Amount\nAna Lee,5\n")), ErrNoColumns},
		{"header only", csvFile("gifts.csv", []byte("Name,Amount,Date\n")), ErrNoValidRows},
		{"every row rejected", csvFile("gifts.csv", []byte("Name,Amount,Date\nAna Lee,(5.00),2024-01-01\n")), ErrNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.file)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.False(t, result.Success)
			assert.Empty(t, result.Data)
			assert.NotEmpty(t, result.Error)
			assert.NotNil(t, result.RowErrors)
			assert.True(t, strings.HasPrefix(result.Summary(), "Import failed: "))
		})
	}
}

func TestParseFile_AllRowsRejectedKeepsRowErrors(t *testing.T) {
	result := ParseFile(csvFile("gifts.csv", []byte("Name,Amount,Date\nAna Lee,abc,2024-01-01\nBo Li,5,someday\n")))

	assert.False(t, result.Success)
	assert.Equal(t, ErrNoValidRows.Error(), result.Error)
	assert.Equal(t, []schema.RowError{
		{Row: 1, Reason: schema.InvalidAmount},
		{Row: 2, Reason: schema.InvalidDate},
	}, result.RowErrors)
	assert.Equal(t, 2, result.TotalRows)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	assert.Equal(t, ';', DetectDelimiter("a;b;c"))
	assert.Equal(t, '\t', DetectDelimiter("a\tb\tc"))
	assert.Equal(t, '|', DetectDelimiter("a|b|c"))
	assert.Equal(t, ',', DetectDelimiter("single"))
	assert.Equal(t, ';', DetectDelimiter(`"Last, First";Amount;Date`))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("gifts.CSV", ""))
	assert.True(t, IsSupported("gifts.txt", "application/pdf"))
	assert.True(t, IsSupported("", "text/csv; charset=utf-8"))
	assert.True(t, IsSupported("-", ""))
	assert.False(t, IsSupported("gifts.pdf", "text/csv"))
	assert.False(t, IsSupported("blob", "application/json"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}
