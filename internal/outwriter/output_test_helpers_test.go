package outwriter

import (
	"time"

	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse(schema.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDonor(first, last, email, total string, count int, from, to string) schema.DonorData {
	d := schema.DonorData{
		FirstName:     first,
		LastName:      last,
		Email:         email,
		TotalAmount:   decimal.RequireFromString(total),
		DonationCount: count,
		FirstDonation: day(from),
		LastDonation:  day(to),
	}
	d.Recompute()
	return d
}

func testDonors() []schema.DonorData {
	jane := testDonor("Jane", "Doe", "jane@x.com", "150", 2, "2024-01-05", "2024-02-10")
	jane.Phone = "555-0100"
	return []schema.DonorData{
		jane,
		testDonor("John", "Smith", "", "500", 2, "2023-12-24", "2024-03-01"),
		testDonor("Ana", "Lee", "", "20", 1, "2024-06-01", "2024-06-01"),
		testDonor("Bo", "Li", "bo@li.org", "1200", 5, "2022-01-01", "2024-01-01"),
	}
}

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		ResultLimit:   10,
		Precision:     1,
		Output:        output,
		Width:         120,
		StoreBackend:  schema.SQLiteBackend,
		TrendInterval: schema.MonthlyTrend,
	}
}
