package algo

import (
	"fmt"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

// NoDataInsight is the only insight for an empty collection.
const NoDataInsight = "No donor data yet. Import a donation file to see insights."

var hundred = decimal.NewFromInt(100)

// buildInsights renders plain-language statements from the computed blocks.
func buildInsights(summary schema.SummaryStats, segments schema.Segmentation, retention schema.RetentionInfo, top []schema.RankedDonor) []string {
	if summary.TotalDonors == 0 {
		return []string{NoDataInsight}
	}

	insights := []string{
		fmt.Sprintf("%d donors gave %d donations totaling $%s (average gift $%s).",
			summary.TotalDonors, summary.TotalDonations, summary.TotalAmount.StringFixed(2), summary.AverageDonation.StringFixed(2)),
		fmt.Sprintf("Retention: %d of %d donors (%.1f%%) gave more than once.",
			retention.RepeatDonors, retention.TotalDonors, retention.Rate*100),
	}

	for _, b := range segments.ByFrequency {
		if b.Label != string(schema.Frequent) {
			continue
		}
		insights = append(insights, fmt.Sprintf("Frequent givers (%d+ gifts) are %s%% of donors and %s%% of total giving.",
			schema.FrequentMinCount, percent(decimal.NewFromInt(int64(b.Donors)), decimal.NewFromInt(int64(summary.TotalDonors))),
			percent(b.Amount, summary.TotalAmount)))
	}

	if len(top) > 0 {
		lead := top[0].Donor
		insights = append(insights, fmt.Sprintf("Largest donor: %s with $%s across %d gifts.",
			lead.FullName(), lead.TotalAmount.StringFixed(2), lead.DonationCount))

		topSum := decimal.Zero
		for _, r := range top {
			topSum = topSum.Add(r.Donor.TotalAmount)
		}
		insights = append(insights, fmt.Sprintf("The top %d donors account for %s%% of total giving.",
			len(top), percent(topSum, summary.TotalAmount)))
	}
	return insights
}

// percent returns part/whole as a percentage with one decimal, "0.0" when whole is zero.
func percent(part, whole decimal.Decimal) string {
	if whole.IsZero() {
		return "0.0"
	}
	return part.Mul(hundred).DivRound(whole, 1).StringFixed(1)
}
