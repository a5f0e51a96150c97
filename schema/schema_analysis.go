package schema

import (
	"github.com/shopspring/decimal"
)

// AnalysisResult is the full analytics report over a donor collection.
// It is rebuilt from scratch on every analysis.
type AnalysisResult struct {
	Summary   SummaryStats  `json:"summary"`
	Segments  Segmentation  `json:"segments"`
	Trends    TrendSeries   `json:"trends"`
	Retention RetentionInfo `json:"retention"`
	TopDonors []RankedDonor `json:"top_donors"`
	Insights  []string      `json:"insights"`
}

// SummaryStats holds collection-wide totals.
type SummaryStats struct {
	TotalDonors        int             `json:"total_donors"`
	TotalDonations     int             `json:"total_donations"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	AverageDonation    decimal.Decimal `json:"average_donation"`     // per gift
	AverageDonorValue  decimal.Decimal `json:"average_donor_value"`  // per donor
	LargestDonorAmount decimal.Decimal `json:"largest_donor_amount"` // lifetime total of the top donor
}

// Bucket is a count and sum for one segment.
type Bucket struct {
	Label  string          `json:"label"`
	Donors int             `json:"donors"`
	Amount decimal.Decimal `json:"amount"`
}

// Segmentation groups donors by frequency and by lifetime amount tier.
type Segmentation struct {
	ByFrequency []Bucket `json:"by_frequency"`
	ByTier      []Bucket `json:"by_tier"`
}

// TrendPoint is one period of a trend series.
type TrendPoint struct {
	Period    string          `json:"period"`
	Donations int             `json:"donations"`
	Amount    decimal.Decimal `json:"amount"`
}

// TrendSeries holds the monthly and yearly series in chronological order.
type TrendSeries struct {
	Monthly []TrendPoint `json:"monthly"`
	Yearly  []TrendPoint `json:"yearly"`
}

// RetentionInfo is the repeat-donor ratio.
type RetentionInfo struct {
	RepeatDonors int     `json:"repeat_donors"`
	TotalDonors  int     `json:"total_donors"`
	Rate         float64 `json:"rate"`
}

// RankedDonor is one entry of the top-donor ranking.
type RankedDonor struct {
	Rank  int       `json:"rank"`
	Key   string    `json:"key"`
	Donor DonorData `json:"donor"`
}
