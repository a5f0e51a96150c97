package schema

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// nameKeySep joins first and last name in a name key. It cannot occur in a
// trimmed name cell, so "Mary Ann"/"Smith" and "Mary"/"Ann Smith" stay apart.
const nameKeySep = "\x1f"

// IdentityKey returns the donor identity key: a valid email wins,
// otherwise the case-insensitive trimmed first and last name.
func IdentityKey(email, firstName, lastName string) string {
	if e := strings.TrimSpace(email); ValidEmail(e) {
		return "email:" + strings.ToLower(e)
	}
	first := strings.ToLower(strings.TrimSpace(firstName))
	last := strings.ToLower(strings.TrimSpace(lastName))
	return "name:" + first + nameKeySep + last
}

// ValidEmail reports whether s is a single bare address with a dotted domain.
func ValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// FrequencyFor maps a lifetime donation count to its frequency label.
func FrequencyFor(count int) Frequency {
	switch {
	case count >= FrequentMinCount:
		return Frequent
	case count >= OccasionalMinCount:
		return Occasional
	default:
		return OneTime
	}
}

// AverageOf returns total/count rounded to cents, or zero when count is not positive.
func AverageOf(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 2)
}

// Recompute refreshes the derived fields from TotalAmount and DonationCount.
func (d *DonorData) Recompute() {
	d.AverageDonation = AverageOf(d.TotalAmount, d.DonationCount)
	d.DonationFrequency = FrequencyFor(d.DonationCount)
}

// DonorFromRecord starts a donor entity from its first gift.
func DonorFromRecord(r DonationRecord) DonorData {
	d := DonorData{
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		Email:         strings.TrimSpace(r.Email),
		Phone:         strings.TrimSpace(r.Phone),
		TotalAmount:   r.Amount,
		DonationCount: 1,
		FirstDonation: r.Date,
		LastDonation:  r.Date,
	}
	d.Recompute()
	return d
}

// CombineDonors folds later into earlier: sums and counts add, dates widen to
// min/max, and non-empty contact values from later win.
func CombineDonors(earlier, later DonorData) DonorData {
	out := earlier
	out.TotalAmount = earlier.TotalAmount.Add(later.TotalAmount)
	out.DonationCount = earlier.DonationCount + later.DonationCount
	if out.FirstDonation.IsZero() || (!later.FirstDonation.IsZero() && later.FirstDonation.Before(out.FirstDonation)) {
		out.FirstDonation = later.FirstDonation
	}
	if later.LastDonation.After(out.LastDonation) {
		out.LastDonation = later.LastDonation
	}
	out.FirstName = latestNonEmpty(earlier.FirstName, later.FirstName)
	out.LastName = latestNonEmpty(earlier.LastName, later.LastName)
	out.Email = latestNonEmpty(earlier.Email, later.Email)
	out.Phone = latestNonEmpty(earlier.Phone, later.Phone)
	out.Recompute()
	return out
}

func latestNonEmpty(current, incoming string) string {
	if v := strings.TrimSpace(incoming); v != "" {
		return v
	}
	return current
}

// CloneDonors returns a shallow copy of the slice so callers can reorder it freely.
func CloneDonors(donors []DonorData) []DonorData {
	if donors == nil {
		return nil
	}
	out := make([]DonorData, len(donors))
	copy(out, donors)
	return out
}
