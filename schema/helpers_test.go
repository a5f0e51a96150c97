package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		first    string
		last     string
		expected string
	}{
		{"email wins", "Jane@X.com", "Jane", "Doe", "email:jane@x.com"},
		{"email trimmed", "  jane@x.com ", "Jane", "Doe", "email:jane@x.com"},
		{"name fallback", "", "Jane", "Doe", "name:jane\x1fdoe"},
		{"name case insensitive", "", "  JANE ", "doe", "name:jane\x1fdoe"},
		{"invalid email falls back", "not-an-email", "John", "Smith", "name:john\x1fsmith"},
		{"undotted domain falls back", "john@localhost", "John", "Smith", "name:john\x1fsmith"},
	}

	assert.NotEqual(t, IdentityKey("", "Mary Ann", "Smith"), IdentityKey("", "Mary", "Ann Smith"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IdentityKey(tt.email, tt.first, tt.last))
		})
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("Jane <jane@x.com>"))
	assert.False(t, ValidEmail("jane@"))
	assert.False(t, ValidEmail("jane@x"))
}

func TestFrequencyFor_Boundaries(t *testing.T) {
	assert.Equal(t, OneTime, FrequencyFor(0))
	assert.Equal(t, OneTime, FrequencyFor(1))
	assert.Equal(t, Occasional, FrequencyFor(2))
	assert.Equal(t, Occasional, FrequencyFor(3))
	assert.Equal(t, Frequent, FrequencyFor(4))
	assert.Equal(t, Frequent, FrequencyFor(40))
}

func TestAverageOf(t *testing.T) {
	assert.True(t, AverageOf(decimal.NewFromInt(150), 2).Equal(decimal.NewFromInt(75)))
	assert.True(t, AverageOf(decimal.NewFromInt(100), 3).Equal(decimal.RequireFromString("33.33")))
	assert.True(t, AverageOf(decimal.NewFromInt(100), 0).IsZero())
}

func TestCombineDonors(t *testing.T) {
	earlier := DonorData{
		FirstName:     "John",
		LastName:      "Smith",
		Phone:         "555-0100",
		TotalAmount:   decimal.NewFromInt(200),
		DonationCount: 1,
		FirstDonation: day("2024-03-01"),
		LastDonation:  day("2024-03-01"),
	}
	earlier.Recompute()
	later := DonorData{
		FirstName:     "John",
		LastName:      "Smith",
		Email:         "",
		Phone:         "555-0199",
		TotalAmount:   decimal.NewFromInt(300),
		DonationCount: 1,
		FirstDonation: day("2023-12-24"),
		LastDonation:  day("2023-12-24"),
	}
	later.Recompute()

	got := CombineDonors(earlier, later)

	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2, got.DonationCount)
	assert.True(t, got.AverageDonation.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, Occasional, got.DonationFrequency)
	assert.Equal(t, day("2023-12-24"), got.FirstDonation)
	assert.Equal(t, day("2024-03-01"), got.LastDonation)
	assert.Equal(t, "555-0199", got.Phone, "latest non-empty contact value wins")
	assert.Equal(t, "", got.Email)
}

func TestCombineDonors_KeepsContactWhenIncomingEmpty(t *testing.T) {
	earlier := DonorData{FirstName: "Ana", LastName: "Lee", Email: "ana@x.org", Phone: "1", DonationCount: 1, TotalAmount: decimal.NewFromInt(5)}
	later := DonorData{FirstName: "Ana", LastName: "Lee", Email: "ana@x.org", DonationCount: 1, TotalAmount: decimal.NewFromInt(5)}

	got := CombineDonors(earlier, later)
	assert.Equal(t, "1", got.Phone)
}

func TestParseResultSummary(t *testing.T) {
	failed := ParseResult{Success: false, Error: "no header row found"}
	assert.Equal(t, "Import failed: no header row found", failed.Summary())

	partial := ParseResult{
		Success:   true,
		Data:      make([]DonationRecord, 47),
		RowErrors: make([]RowError, 3),
		TotalRows: 50,
	}
	assert.Equal(t, "Imported 47 of 50 rows (3 of 50 rows skipped)", partial.Summary())

	clean := ParseResult{Success: true, Data: make([]DonationRecord, 2), TotalRows: 2}
	assert.Equal(t, "Imported 2 of 2 rows", clean.Summary())
}
