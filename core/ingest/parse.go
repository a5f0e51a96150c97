package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/adminizer/giving/schema"
)

// Structural failures. Any of these fails the whole batch.
var (
	ErrUnreadable        = errors.New("file could not be read")
	ErrUnsupportedFormat = errors.New("unsupported file format, expected CSV")
	ErrNoHeader          = errors.New("no header row found")
	ErrNoColumns         = errors.New("no recognizable donor columns, need a name, an amount and a date")
	ErrNoValidRows       = errors.New("no valid donation rows found")
)

// File is an uploaded donation file.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// delimiterCandidates are tried in order; ties keep the earlier candidate.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

var supportedExtensions = map[string]struct{}{
	".csv": {},
	".tsv": {},
	".txt": {},
}

var supportedContentTypes = map[string]struct{}{
	"text/csv":                   {},
	"text/plain":                 {},
	"text/tab-separated-values":  {},
	"application/csv":            {},
	"application/vnd.ms-excel":   {},
	"application/octet-stream":   {},
	"binary/octet-stream":        {},
	"text/comma-separated-values": {},
}

// IsSupported reports whether the declared name and content type look like delimited text.
func IsSupported(name, contentType string) bool {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		_, ok := supportedExtensions[ext]
		return ok
	}
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := supportedContentTypes[strings.ToLower(mediaType)]
	return ok
}

// DetectDelimiter picks the most frequent candidate delimiter outside quotes
// in the header line, defaulting to a comma.
func DetectDelimiter(line string) rune {
	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}
	best, bestCount := ',', 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// firstLine returns the first non-blank line of data.
func firstLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// ParseFile reads the whole file and returns the parse result. Structural
// failures are reported through Success and Error.
func ParseFile(f File) schema.ParseResult {
	result, _ := Parse(f)
	return result
}

// Parse is ParseFile that also returns the structural failure as an error
// wrapping one of the Err* sentinels.
func Parse(f File) (schema.ParseResult, error) {
	rowErrors := []schema.RowError{}
	fail := func(err error, totalRows int) (schema.ParseResult, error) {
		return schema.ParseResult{
			Success:   false,
			Error:     err.Error(),
			RowErrors: rowErrors,
			TotalRows: totalRows,
		}, err
	}

	if !IsSupported(f.Name, f.ContentType) {
		return fail(fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Name), 0)
	}
	if f.Body == nil {
		return fail(ErrUnreadable, 0)
	}

	data, err := io.ReadAll(f.Body)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrUnreadable, err), 0)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	line := firstLine(data)
	if line == "" {
		return fail(ErrNoHeader, 0)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(line)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fail(ErrNoHeader, 0)
	}
	cols := ResolveColumns(header)
	if !cols.Usable() {
		return fail(ErrNoColumns, 0)
	}

	// Row numbers follow the line position after the header. Blank lines are
	// skipped by the reader and not counted in TotalRows.
	headerLine, _ := reader.FieldPos(0)
	var records []schema.DonationRecord
	totalRows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		totalRows++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rowErrors = append(rowErrors, schema.RowError{Row: pe.StartLine - headerLine, Reason: schema.MalformedRow})
				continue
			}
			return fail(fmt.Errorf("%w: %v", ErrUnreadable, err), totalRows)
		}
		line, _ := reader.FieldPos(0)
		rowNum := line - headerLine

		if cols.IsSummary() {
			expanded, reason := NormalizeSummaryRow(row, cols, rowNum)
			if reason != schema.Accepted {
				rowErrors = append(rowErrors, schema.RowError{Row: rowNum, Reason: reason})
				continue
			}
			records = append(records, expanded...)
			continue
		}

		rec, reason := NormalizeRow(row, cols, rowNum)
		if reason != schema.Accepted {
			rowErrors = append(rowErrors, schema.RowError{Row: rowNum, Reason: reason})
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return fail(ErrNoValidRows, totalRows)
	}

	return schema.ParseResult{
		Success:   true,
		Data:      records,
		RowErrors: rowErrors,
		TotalRows: totalRows,
	}, nil
}
