package memory

import (
	"context"
	"testing"
	"time"

	"memematch-service/internal/domain"
)

func TestSummaryRepositoryCaches(t *testing.T) {
	loader := &countingLoader{summary: domain.Summary{Total: 3, Period: "all"}}
	repo := NewSummaryRepository(loader, time.Minute)

	filter := domain.ResultFilter{Period: "7", Animal: "Dog"}
	if _, err := repo.GetSummary(context.Background(), filter); err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	summary, err := repo.GetSummary(context.Background(), filter)
	if err != nil {
		t.Fatalf("get summary 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if summary.Total != 3 {
		t.Fatalf("expected cached summary, got %+v", summary)
	}
}

func TestSummaryRepositoryKeysByFilter(t *testing.T) {
	loader := &countingLoader{}
	repo := NewSummaryRepository(loader, time.Minute)

	_, _ = repo.GetSummary(context.Background(), domain.ResultFilter{Animal: "Dog"})
	_, _ = repo.GetSummary(context.Background(), domain.ResultFilter{Animal: "Cat"})
	if loader.calls != 2 {
		t.Fatalf("expected separate cache entries per filter, loader calls %d", loader.calls)
	}

	// Empty fields normalize to "all", so these share one entry.
	_, _ = repo.GetSummary(context.Background(), domain.ResultFilter{})
	_, _ = repo.GetSummary(context.Background(), domain.ResultFilter{Period: "all", Animal: "all", Chain: "all"})
	if loader.calls != 3 {
		t.Fatalf("expected normalized filters to share an entry, loader calls %d", loader.calls)
	}
}

type countingLoader struct {
	summary domain.Summary
	calls   int
}

func (l *countingLoader) LoadSummary(_ context.Context, _ domain.ResultFilter) (domain.Summary, error) {
	l.calls++
	return l.summary, nil
}
