// Package analytics turns stored result records into per-coin counts and
// percentages for the community dashboard.
package analytics

import (
	"sort"
	"strconv"
	"time"

	"memematch-service/internal/domain"
)

// PeriodCutoff resolves a filter period against now. ok is false when the
// period is "all" or does not parse as a non-negative day count, in which
// case no time restriction applies.
func PeriodCutoff(period string, now time.Time) (time.Time, bool) {
	if period == "" || period == "all" {
		return time.Time{}, false
	}
	days, err := strconv.Atoi(period)
	if err != nil || days < 0 {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// Matches reports whether a record passes every filter field.
func Matches(r domain.ResultRecord, f domain.ResultFilter, now time.Time) bool {
	if cutoff, ok := PeriodCutoff(f.Period, now); ok && r.Timestamp.Before(cutoff) {
		return false
	}
	if f.Animal != "" && f.Animal != "all" && r.AnimalRestriction != f.Animal {
		return false
	}
	if f.Chain != "" && f.Chain != "all" && r.ChainRestriction != f.Chain {
		return false
	}
	return true
}

// Aggregate buckets the matching records by winning coin, sorted by count
// descending; ties keep the order in which each coin was first seen. Input
// records are never mutated, and the same inputs always produce the same
// summary.
func Aggregate(records []domain.ResultRecord, filter domain.ResultFilter, now time.Time) domain.Summary {
	filter = filter.Normalize()

	counts := make(map[domain.Coin]int)
	var order []domain.Coin
	total := 0
	for _, r := range records {
		if !Matches(r, filter, now) {
			continue
		}
		if _, seen := counts[r.Match]; !seen {
			order = append(order, r.Match)
		}
		counts[r.Match]++
		total++
	}

	buckets := make([]domain.Bucket, 0, len(order))
	for _, coin := range order {
		count := counts[coin]
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		buckets = append(buckets, domain.Bucket{Match: coin, Count: count, Percentage: pct})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	return domain.Summary{
		Results: buckets,
		Total:   total,
		Period:  filter.Period,
		Filters: domain.FilterEcho{Animal: filter.Animal, Blockchain: filter.Chain},
	}
}
