package algo

import (
	"fmt"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

// AnalyzeData builds the full report over donors. It is pure and total:
// an empty collection yields zeroed blocks, and donors is never modified.
func AnalyzeData(donors []schema.DonorData, opts Options) schema.AnalysisResult {
	opts = opts.normalized()

	summary := summarize(donors)
	segments := schema.Segmentation{
		ByFrequency: segmentByFrequency(donors),
		ByTier:      segmentByTier(donors, opts.TierBreakpoints),
	}
	retention := retentionOf(donors)
	top := RankDonors(donors, opts.TopLimit)

	return schema.AnalysisResult{
		Summary:   summary,
		Segments:  segments,
		Trends:    BuildTrends(donors),
		Retention: retention,
		TopDonors: top,
		Insights:  buildInsights(summary, segments, retention, top),
	}
}

func summarize(donors []schema.DonorData) schema.SummaryStats {
	stats := schema.SummaryStats{
		TotalDonors:        len(donors),
		TotalAmount:        decimal.Zero,
		LargestDonorAmount: decimal.Zero,
	}
	for _, d := range donors {
		stats.TotalDonations += d.DonationCount
		stats.TotalAmount = stats.TotalAmount.Add(d.TotalAmount)
		if d.TotalAmount.GreaterThan(stats.LargestDonorAmount) {
			stats.LargestDonorAmount = d.TotalAmount
		}
	}
	stats.AverageDonation = schema.AverageOf(stats.TotalAmount, stats.TotalDonations)
	stats.AverageDonorValue = schema.AverageOf(stats.TotalAmount, stats.TotalDonors)
	return stats
}

// segmentByFrequency always returns the three labels in fixed order.
func segmentByFrequency(donors []schema.DonorData) []schema.Bucket {
	buckets := make([]schema.Bucket, len(schema.AllFrequencies))
	index := make(map[schema.Frequency]int, len(schema.AllFrequencies))
	for i, f := range schema.AllFrequencies {
		buckets[i] = schema.Bucket{Label: string(f), Amount: decimal.Zero}
		index[f] = i
	}
	for _, d := range donors {
		// Derived from the count, not the stored label.
		i := index[schema.FrequencyFor(d.DonationCount)]
		buckets[i].Donors++
		buckets[i].Amount = buckets[i].Amount.Add(d.TotalAmount)
	}
	return buckets
}

// segmentByTier buckets donors by lifetime amount. Tier i holds amounts in
// [breakpoints[i-1], breakpoints[i]); the last tier is open-ended.
func segmentByTier(donors []schema.DonorData, breakpoints []decimal.Decimal) []schema.Bucket {
	buckets := make([]schema.Bucket, len(breakpoints)+1)
	for i := range buckets {
		buckets[i] = schema.Bucket{Label: TierLabel(breakpoints, i), Amount: decimal.Zero}
	}
	for _, d := range donors {
		i := tierIndex(breakpoints, d.TotalAmount)
		buckets[i].Donors++
		buckets[i].Amount = buckets[i].Amount.Add(d.TotalAmount)
	}
	return buckets
}

func tierIndex(breakpoints []decimal.Decimal, amount decimal.Decimal) int {
	for i, b := range breakpoints {
		if amount.LessThan(b) {
			return i
		}
	}
	return len(breakpoints)
}

// TierLabel names tier i for the given ascending breakpoints.
func TierLabel(breakpoints []decimal.Decimal, i int) string {
	switch {
	case len(breakpoints) == 0:
		return "all"
	case i == 0:
		return fmt.Sprintf("under %s", breakpoints[0])
	case i >= len(breakpoints):
		return fmt.Sprintf("%s+", breakpoints[len(breakpoints)-1])
	default:
		return fmt.Sprintf("%s-%s", breakpoints[i-1], breakpoints[i])
	}
}

func retentionOf(donors []schema.DonorData) schema.RetentionInfo {
	info := schema.RetentionInfo{TotalDonors: len(donors)}
	for _, d := range donors {
		if d.DonationCount > 1 {
			info.RepeatDonors++
		}
	}
	if info.TotalDonors > 0 {
		info.Rate = float64(info.RepeatDonors) / float64(info.TotalDonors)
	}
	return info
}
