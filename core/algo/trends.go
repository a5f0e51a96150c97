package algo

import (
	"sort"
	"time"

	"github.com/adminizer/giving/schema"
	"github.com/shopspring/decimal"
)

const (
	monthLayout = "2006-01"
	yearLayout  = "2006"
)

// Gift is one interpolated donation used for trend bucketing.
type Gift struct {
	Date   time.Time
	Amount decimal.Decimal
}

// GiftSchedule spreads a donor's DonationCount gifts evenly over
// FirstDonation..LastDonation. Each gift carries the average truncated to
// cents and the last gift carries the remainder, so the amounts sum to
// TotalAmount exactly.
func GiftSchedule(d schema.DonorData) []Gift {
	n := d.DonationCount
	if n <= 0 || d.FirstDonation.IsZero() {
		return nil
	}
	first, last := d.FirstDonation, d.LastDonation
	if last.Before(first) {
		last = first
	}
	spanDays := int(last.Sub(first).Hours() / 24)

	per := d.TotalAmount.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	gifts := make([]Gift, n)
	for i := 0; i < n; i++ {
		date := first
		if n > 1 {
			date = first.AddDate(0, 0, spanDays*i/(n-1))
		}
		gifts[i] = Gift{Date: date, Amount: per}
	}
	gifts[n-1].Date = last
	gifts[n-1].Amount = d.TotalAmount.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))
	return gifts
}

// BuildTrends buckets every donor's gift schedule by month and by year.
func BuildTrends(donors []schema.DonorData) schema.TrendSeries {
	monthly := make(map[string]*schema.TrendPoint)
	yearly := make(map[string]*schema.TrendPoint)
	for _, d := range donors {
		for _, g := range GiftSchedule(d) {
			addToBucket(monthly, g.Date.Format(monthLayout), g.Amount)
			addToBucket(yearly, g.Date.Format(yearLayout), g.Amount)
		}
	}
	return schema.TrendSeries{
		Monthly: flattenTrend(monthly),
		Yearly:  flattenTrend(yearly),
	}
}

func addToBucket(buckets map[string]*schema.TrendPoint, period string, amount decimal.Decimal) {
	p, ok := buckets[period]
	if !ok {
		p = &schema.TrendPoint{Period: period, Amount: decimal.Zero}
		buckets[period] = p
	}
	p.Donations++
	p.Amount = p.Amount.Add(amount)
}

// flattenTrend returns the points in chronological order; period layouts sort lexically.
func flattenTrend(buckets map[string]*schema.TrendPoint) []schema.TrendPoint {
	points := make([]schema.TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}
