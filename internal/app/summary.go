package app

import (
	"context"
	"time"

	"memematch-service/internal/analytics"
	"memematch-service/internal/domain"
)

// SummaryRepository serves aggregated summaries (cached or direct).
type SummaryRepository interface {
	GetSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error)
}

// SummaryLoader computes a summary straight from the result store. Cache
// layers wrap it on a miss.
type SummaryLoader struct {
	store ResultStore
	now   func() time.Time
}

func NewSummaryLoader(store ResultStore) *SummaryLoader {
	return &SummaryLoader{store: store, now: time.Now}
}

func (l *SummaryLoader) LoadSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error) {
	records, err := l.store.QueryResults(ctx, filter)
	if err != nil {
		return domain.Summary{}, err
	}
	return analytics.Aggregate(records, filter, l.now()), nil
}

// AnalyticsService answers dashboard queries through a summary repository.
type AnalyticsService struct {
	summaries SummaryRepository
}

func NewAnalyticsService(summaries SummaryRepository) *AnalyticsService {
	return &AnalyticsService{summaries: summaries}
}

// GlobalResults returns the aggregated community results for a filter.
func (s *AnalyticsService) GlobalResults(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error) {
	return s.summaries.GetSummary(ctx, filter.Normalize())
}
