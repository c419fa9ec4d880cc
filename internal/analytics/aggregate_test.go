package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"memematch-service/internal/domain"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func record(match domain.Coin, age time.Duration) domain.ResultRecord {
	return domain.ResultRecord{Match: match, Timestamp: now.Add(-age)}
}

func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(nil, domain.ResultFilter{}, now)
	require.Equal(t, 0, summary.Total)
	require.Empty(t, summary.Results)
	require.Equal(t, "all", summary.Period)
}

func TestAggregateCountsAndPercentages(t *testing.T) {
	records := []domain.ResultRecord{
		record(domain.Pepe, time.Hour),
		record(domain.Pepe, 2*time.Hour),
		record(domain.Bonk, 3*time.Hour),
	}
	summary := Aggregate(records, domain.ResultFilter{}, now)

	require.Equal(t, 3, summary.Total)
	require.Len(t, summary.Results, 2)
	require.Equal(t, domain.Pepe, summary.Results[0].Match)
	require.Equal(t, 2, summary.Results[0].Count)
	require.InDelta(t, 66.67, summary.Results[0].Percentage, 0.01)
	require.Equal(t, domain.Bonk, summary.Results[1].Match)
	require.Equal(t, 1, summary.Results[1].Count)
	require.InDelta(t, 33.33, summary.Results[1].Percentage, 0.01)
}

func TestAggregatePercentagesSumTo100(t *testing.T) {
	records := []domain.ResultRecord{
		record(domain.Pepe, time.Hour),
		record(domain.Bonk, time.Hour),
		record(domain.Turbo, time.Hour),
		record(domain.Pepe, time.Hour),
		record(domain.Toshi, time.Hour),
		record(domain.Toshi, time.Hour),
		record(domain.Toshi, time.Hour),
	}
	summary := Aggregate(records, domain.ResultFilter{}, now)

	sum := 0.0
	for _, b := range summary.Results {
		sum += b.Percentage
	}
	require.True(t, math.Abs(sum-100) < 0.01, "percentages sum to %f", sum)
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	records := []domain.ResultRecord{
		record(domain.Brett, time.Hour),
		record(domain.Dogecoin, time.Hour),
		record(domain.Dogecoin, time.Hour),
		record(domain.Brett, time.Hour),
	}
	summary := Aggregate(records, domain.ResultFilter{}, now)
	require.Equal(t, domain.Brett, summary.Results[0].Match)
	require.Equal(t, domain.Dogecoin, summary.Results[1].Match)
}

func TestAggregatePeriodBoundary(t *testing.T) {
	records := []domain.ResultRecord{
		record(domain.Pepe, 6*24*time.Hour),          // inside 7 days
		{Match: domain.Bonk, Timestamp: now.AddDate(0, 0, -7)}, // exactly on the boundary
		record(domain.Turbo, 8*24*time.Hour),         // outside
	}
	summary := Aggregate(records, domain.ResultFilter{Period: "7"}, now)

	require.Equal(t, 2, summary.Total)
	for _, b := range summary.Results {
		require.NotEqual(t, domain.Turbo, b.Match)
	}
}

func TestAggregateMalformedPeriodMeansAll(t *testing.T) {
	records := []domain.ResultRecord{
		record(domain.Pepe, 365*24*time.Hour),
	}
	summary := Aggregate(records, domain.ResultFilter{Period: "soon"}, now)
	require.Equal(t, 1, summary.Total)
}

func TestAggregateFacetFiltersAnd(t *testing.T) {
	records := []domain.ResultRecord{
		{Match: domain.Pepe, Timestamp: now, AnimalRestriction: "Frog", ChainRestriction: "Ethereum"},
		{Match: domain.Bonk, Timestamp: now, AnimalRestriction: "Dog", ChainRestriction: "Solana"},
		{Match: domain.Pepe, Timestamp: now, AnimalRestriction: "Frog", ChainRestriction: "Solana"},
	}

	summary := Aggregate(records, domain.ResultFilter{Animal: "Frog", Chain: "Solana"}, now)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, domain.Pepe, summary.Results[0].Match)
	require.Equal(t, domain.FilterEcho{Animal: "Frog", Blockchain: "Solana"}, summary.Filters)
}

func TestAggregateDoesNotMutateRecords(t *testing.T) {
	records := []domain.ResultRecord{record(domain.Pepe, time.Hour)}
	before := records[0]
	_ = Aggregate(records, domain.ResultFilter{Period: "1", Animal: "Frog"}, now)
	require.Equal(t, before, records[0])
}
