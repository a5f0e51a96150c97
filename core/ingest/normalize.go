package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

// DateLayouts lists accepted date formats in the order they are tried.
var DateLayouts = []string{
	"2006-01-02",      // ISO
	"1/2/2006",        // US, padded or not
	"January 2, 2006", // long form
	"Jan 2, 2006",
	time.RFC3339,
}

// amountRe accepts what is left of an amount once currency markers and
// thousands separators are stripped: an optional sign and a plain decimal.
var amountRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// MaxSummaryDonationCount caps the Donation Count of one export row. Rows
// above it are rejected since each counted gift is expanded into a record.
const MaxSummaryDonationCount = 100_000

// currencyCodes are ISO codes tolerated as a prefix or suffix of an amount.
var currencyCodes = []string{"USD", "CAD", "AUD", "NZD", "EUR", "GBP", "JPY", "CHF"}

// currencySymbols are stripped anywhere in an amount.
const currencySymbols = "$€£¥"

// ParseAmount parses a money cell. Parenthesized and negative values are
// rejected: refunds and adjustments are not part of the donation model.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(s, "(") || strings.HasSuffix(s, ")") {
		return decimal.Zero, false
	}

	upper := strings.ToUpper(s)
	for _, code := range currencyCodes {
		upper = strings.TrimPrefix(upper, code)
		upper = strings.TrimSuffix(upper, code)
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(currencySymbols, r):
			return -1
		case r == ',' || unicode.IsSpace(r):
			return -1
		default:
			return r
		}
	}, upper)

	if !amountRe.MatchString(s) {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseDate tries each of DateLayouts and returns the calendar date at UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// SplitFullName splits on the first whitespace boundary.
func SplitFullName(full string) (string, string) {
	full = strings.TrimSpace(full)
	idx := strings.IndexFunc(full, unicode.IsSpace)
	if idx < 0 {
		return full, ""
	}
	return full[:idx], strings.TrimSpace(full[idx:])
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// resolveName prefers separate first/last columns and falls back to the full-name column.
func resolveName(row []string, cols Columns) (string, string) {
	first := cols.Cell(row, FieldFirstName)
	last := cols.Cell(row, FieldLastName)
	if first != "" || last != "" {
		return first, last
	}
	return SplitFullName(cols.Cell(row, FieldFullName))
}

// NormalizeRow converts one raw row into a donation record or a rejection reason.
// It has no side effects.
func NormalizeRow(row []string, cols Columns, rowNum int) (schema.DonationRecord, schema.RejectReason) {
	if isEmptyRow(row) {
		return schema.DonationRecord{}, schema.EmptyRow
	}

	first, last := resolveName(row, cols)
	if first == "" || last == "" {
		return schema.DonationRecord{}, schema.MissingName
	}

	amount, ok := ParseAmount(cols.Cell(row, FieldAmount))
	if !ok {
		return schema.DonationRecord{}, schema.InvalidAmount
	}

	date, ok := ParseDate(cols.Cell(row, FieldDate))
	if !ok {
		return schema.DonationRecord{}, schema.InvalidDate
	}

	return schema.DonationRecord{
		FirstName: first,
		LastName:  last,
		Email:     cols.Cell(row, FieldEmail),
		Phone:     cols.Cell(row, FieldPhone),
		Amount:    amount,
		Date:      date,
		Row:       rowNum,
	}, schema.Accepted
}

// NormalizeSummaryRow expands one row of a donor export back into gifts:
// the first gift carries the whole total on the first-donation date, the
// remaining count-1 gifts are zero-amount on the last-donation date. Aggregating
// the result reproduces the exported donor.
func NormalizeSummaryRow(row []string, cols Columns, rowNum int) ([]schema.DonationRecord, schema.RejectReason) {
	if isEmptyRow(row) {
		return nil, schema.EmptyRow
	}

	first, last := resolveName(row, cols)
	if first == "" || last == "" {
		return nil, schema.MissingName
	}

	total, ok := ParseAmount(cols.Cell(row, FieldTotalAmount))
	if !ok {
		return nil, schema.InvalidAmount
	}
	count, err := strconv.Atoi(cols.Cell(row, FieldDonationCount))
	if err != nil || count < 1 || count > MaxSummaryDonationCount {
		return nil, schema.InvalidAmount
	}

	firstDate, ok := ParseDate(cols.Cell(row, FieldFirstDonation))
	if !ok {
		return nil, schema.InvalidDate
	}
	lastDate, ok := ParseDate(cols.Cell(row, FieldLastDonation))
	if !ok || lastDate.Before(firstDate) {
		return nil, schema.InvalidDate
	}

	base := schema.DonationRecord{
		FirstName: first,
		LastName:  last,
		Email:     cols.Cell(row, FieldEmail),
		Phone:     cols.Cell(row, FieldPhone),
		Row:       rowNum,
	}
	records := make([]schema.DonationRecord, 0, count)
	head := base
	head.Amount = total
	head.Date = firstDate
	records = append(records, head)
	for i := 1; i < count; i++ {
		gift := base
		gift.Amount = decimal.Zero
		gift.Date = lastDate
		records = append(records, gift)
	}
	return records, schema.Accepted
}
