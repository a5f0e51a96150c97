// Package algo has the pure analytics over a donor collection.
package algo

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultTopLimit is the default size of the top-donor ranking.
const DefaultTopLimit = 10

// DefaultTierBreakpoints are the default lifetime-amount tier boundaries.
var DefaultTierBreakpoints = []decimal.Decimal{
	decimal.NewFromInt(100),
	decimal.NewFromInt(500),
	decimal.NewFromInt(1000),
	decimal.NewFromInt(5000),
}

// Options tunes AnalyzeData.
type Options struct {
	// TierBreakpoints are ascending lower bounds of every tier after the first.
	TierBreakpoints []decimal.Decimal
	// TopLimit caps the top-donor ranking.
	TopLimit int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		TierBreakpoints: append([]decimal.Decimal(nil), DefaultTierBreakpoints...),
		TopLimit:        DefaultTopLimit,
	}
}

// normalized returns a copy with sorted, de-duplicated positive breakpoints
// and a positive limit, falling back to defaults where unset.
func (o Options) normalized() Options {
	out := Options{TopLimit: o.TopLimit}
	if out.TopLimit <= 0 {
		out.TopLimit = DefaultTopLimit
	}

	src := o.TierBreakpoints
	if src == nil {
		src = DefaultTierBreakpoints
	}
	points := make([]decimal.Decimal, 0, len(src))
	for _, b := range src {
		if b.IsPositive() {
			points = append(points, b)
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].LessThan(points[j]) })

	for i, b := range points {
		if i > 0 && b.Equal(points[i-1]) {
			continue
		}
		out.TierBreakpoints = append(out.TierBreakpoints, b)
	}
	return out
}
