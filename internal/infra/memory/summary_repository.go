package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"memematch-service/internal/domain"
)

// SummaryLoader computes a summary from the backing result store.
type SummaryLoader interface {
	LoadSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error)
}

// SummaryRepository caches aggregated summaries with TTL to avoid
// recomputing on every dashboard refresh.
type SummaryRepository struct {
	loader SummaryLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedSummary
}

type cachedSummary struct {
	summary   domain.Summary
	expiresAt time.Time
}

func NewSummaryRepository(loader SummaryLoader, ttl time.Duration) *SummaryRepository {
	return &SummaryRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedSummary),
	}
}

func (r *SummaryRepository) GetSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error) {
	key := filter.Key()
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.summary, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.summary, nil
		}
		r.mu.RUnlock()

		summary, err := r.loader.LoadSummary(ctx, filter)
		if err != nil {
			return domain.Summary{}, err
		}

		r.mu.Lock()
		r.cache[key] = cachedSummary{
			summary:   summary,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return summary, nil
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return result.(domain.Summary), nil
}

func (r *SummaryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
