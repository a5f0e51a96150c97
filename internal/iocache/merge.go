package iocache

import (
	"github.com/adminizer/giving/schema"
)

// MergeDonors folds an incoming batch into an existing collection. Donors
// with the same identity key are combined: amounts and counts add, dates widen
// and non-empty incoming contact values win. Unmatched donors are appended.
// Neither argument is modified. Merging the same batch twice counts it twice.
func MergeDonors(existing, incoming []schema.DonorData) []schema.DonorData {
	merged := make([]schema.DonorData, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, d := range existing {
		key := d.Key()
		if i, ok := index[key]; ok {
			merged[i] = schema.CombineDonors(merged[i], d)
			continue
		}
		d.Recompute()
		index[key] = len(merged)
		merged = append(merged, d)
	}

	for _, d := range incoming {
		key := d.Key()
		if i, ok := index[key]; ok {
			merged[i] = schema.CombineDonors(merged[i], d)
			continue
		}
		d.Recompute()
		index[key] = len(merged)
		merged = append(merged, d)
	}
	return merged
}
