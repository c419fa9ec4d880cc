package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"memematch-service/internal/domain"
)

// SummaryLoader computes a summary from the backing result store.
type SummaryLoader interface {
	LoadSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error)
}

// SummaryRepository caches aggregated summaries in Redis (one JSON value
// per normalized filter) and falls back to the loader on a miss. Dashboard
// clients re-query on every broadcast notification, so cache hits carry
// most of the read load.
type SummaryRepository struct {
	client *redis.Client
	loader SummaryLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewSummaryRepository(client *redis.Client, loader SummaryLoader, ttl time.Duration) *SummaryRepository {
	return &SummaryRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SummaryRepository) GetSummary(ctx context.Context, filter domain.ResultFilter) (domain.Summary, error) {
	key := r.key(filter)

	if summary, ok := r.lookup(ctx, key); ok {
		return summary, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if summary, ok := r.lookup(ctx, key); ok {
			return summary, nil
		}

		summary, err := r.loader.LoadSummary(ctx, filter)
		if err != nil {
			return domain.Summary{}, err
		}

		if data, err := json.Marshal(summary); err == nil {
			// best-effort: a failed cache write only costs a recompute
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return summary, nil
	})
	if err != nil {
		return domain.Summary{}, err
	}
	return result.(domain.Summary), nil
}

func (r *SummaryRepository) lookup(ctx context.Context, key string) (domain.Summary, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return domain.Summary{}, false
	}
	var summary domain.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return domain.Summary{}, false
	}
	return summary, true
}

func (r *SummaryRepository) key(filter domain.ResultFilter) string {
	return "analytics:summary:" + filter.Key()
}

func (r *SummaryRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
