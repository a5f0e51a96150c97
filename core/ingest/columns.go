// Package ingest turns uploaded tabular files into normalized donation records.
package ingest

import (
	"strings"
	"unicode"
)

// Field is a canonical column of a donation file.
type Field int

// Canonical fields recognized in headers.
const (
	FieldFirstName Field = iota
	FieldLastName
	FieldFullName
	FieldEmail
	FieldPhone
	FieldAmount
	FieldDate
	// Columns of our own donor export.
	FieldTotalAmount
	FieldDonationCount
	FieldFirstDonation
	FieldLastDonation
)

// headerAliases maps folded header names to canonical fields.
var headerAliases = map[string]Field{
	"firstname":      FieldFirstName,
	"first":          FieldFirstName,
	"givenname":      FieldFirstName,
	"donorfirstname": FieldFirstName,

	"lastname":      FieldLastName,
	"last":          FieldLastName,
	"surname":       FieldLastName,
	"familyname":    FieldLastName,
	"donorlastname": FieldLastName,

	"name":      FieldFullName,
	"fullname":  FieldFullName,
	"donorname": FieldFullName,
	"donor":     FieldFullName,

	"email":        FieldEmail,
	"emailaddress": FieldEmail,
	"donoremail":   FieldEmail,

	"phone":       FieldPhone,
	"phonenumber": FieldPhone,
	"telephone":   FieldPhone,
	"mobile":      FieldPhone,
	"donorphone":  FieldPhone,

	"amount":         FieldAmount,
	"giftamount":     FieldAmount,
	"donationamount": FieldAmount,
	"gift":           FieldAmount,
	"donation":       FieldAmount,
	"contribution":   FieldAmount,

	"date":            FieldDate,
	"giftdate":        FieldDate,
	"donationdate":    FieldDate,
	"transactiondate": FieldDate,
	"receiveddate":    FieldDate,

	"totalamount":   FieldTotalAmount,
	"donationcount": FieldDonationCount,
	"firstdonation": FieldFirstDonation,
	"lastdonation":  FieldLastDonation,
}

// Columns maps canonical fields to column indexes of one file.
type Columns map[Field]int

// FoldHeader lower-cases a header and drops everything but letters and digits,
// so "Gift Amount", "gift_amount" and "GIFT-AMOUNT" compare equal.
func FoldHeader(h string) string {
	var b strings.Builder
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ResolveColumns maps a header row to canonical fields. The first occurrence of
// a field wins; unrecognized headers are ignored.
func ResolveColumns(headers []string) Columns {
	cols := make(Columns)
	for i, h := range headers {
		field, ok := headerAliases[FoldHeader(h)]
		if !ok {
			continue
		}
		if _, seen := cols[field]; seen {
			continue
		}
		cols[field] = i
	}
	return cols
}

// Has reports whether the field was found in the header.
func (c Columns) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// IsSummary reports whether the header is our own donor export layout.
func (c Columns) IsSummary() bool {
	return c.Has(FieldDonationCount) && c.Has(FieldTotalAmount) && c.Has(FieldFirstDonation) && c.Has(FieldLastDonation)
}

// Usable reports whether the header carries enough to build records:
// some name column plus an amount and a date (or the export layout).
func (c Columns) Usable() bool {
	hasName := c.Has(FieldFullName) || c.Has(FieldFirstName) || c.Has(FieldLastName)
	if !hasName {
		return false
	}
	if c.IsSummary() {
		return true
	}
	return c.Has(FieldAmount) && c.Has(FieldDate)
}

// Cell returns the trimmed value of a field in a row, or "" when absent.
func (c Columns) Cell(row []string, f Field) string {
	i, ok := c[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
