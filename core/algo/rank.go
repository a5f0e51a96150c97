package algo

import (
	"sort"

	"github.com/adminizer/giving/schema"
)

// RankDonors returns up to limit donors ordered by TotalAmount descending,
// ties broken by identity key ascending. A non-positive limit returns all.
// The input slice is not reordered.
func RankDonors(donors []schema.DonorData, limit int) []schema.RankedDonor {
	type keyed struct {
		key   string
		donor schema.DonorData
	}
	sorted := make([]keyed, len(donors))
	for i, d := range donors {
		sorted[i] = keyed{key: d.Key(), donor: d}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].donor.TotalAmount.Cmp(sorted[j].donor.TotalAmount); c != 0 {
			return c > 0
		}
		return sorted[i].key < sorted[j].key
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	ranked := make([]schema.RankedDonor, len(sorted))
	for i, k := range sorted {
		ranked[i] = schema.RankedDonor{Rank: i + 1, Key: k.key, Donor: k.donor}
	}
	return ranked
}
