// Package agg has intra-batch aggregation of donation records into donors.
package agg

import (
	"sort"

	"github.com/adminizer/giving/schema"
)

// AggregateDonors groups a batch of records by donor identity key and folds
// each group into one DonorData. Cross-batch merging is the store's job.
// The result is sorted by identity key and does not depend on input order.
func AggregateDonors(records []schema.DonationRecord) []schema.DonorData {
	if len(records) == 0 {
		return []schema.DonorData{}
	}

	ordered := chronological(records)
	groups := make(map[string]*schema.DonorData, len(ordered))
	for _, r := range ordered {
		key := r.Key()
		donor, ok := groups[key]
		if !ok {
			d := schema.DonorFromRecord(r)
			groups[key] = &d
			continue
		}
		*donor = schema.CombineDonors(*donor, schema.DonorFromRecord(r))
	}

	return sortedByKey(groups)
}

// chronological returns a copy of records ordered by date, then source row,
// so the latest non-empty contact value wins when groups are folded.
func chronological(records []schema.DonationRecord) []schema.DonationRecord {
	ordered := make([]schema.DonationRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].Row < ordered[j].Row
	})
	return ordered
}

// sortedByKey flattens the groups in ascending identity key order.
func sortedByKey(groups map[string]*schema.DonorData) []schema.DonorData {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	donors := make([]schema.DonorData, 0, len(keys))
	for _, k := range keys {
		donors = append(donors, *groups[k])
	}
	return donors
}

// IndexByKey maps identity keys to positions in donors.
func IndexByKey(donors []schema.DonorData) map[string]int {
	index := make(map[string]int, len(donors))
	for i, d := range donors {
		index[d.Key()] = i
	}
	return index
}

// CountRecords sums DonationCount over donors.
func CountRecords(donors []schema.DonorData) int {
	total := 0
	for _, d := range donors {
		total += d.DonationCount
	}
	return total
}
