// Package relay fans out newly submitted quiz results to connected
// dashboard listeners and keeps a bounded in-memory history for late
// joiners. It has no persistence: durable storage is the result store's
// job, and a restart empties the cache.
package relay

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"memematch-service/internal/domain"
)

// DefaultMaxResults caps the cached history.
const DefaultMaxResults = 1000

// Event names published for every submission. Both carry the same payload;
// the dashboard chart listens on the committed name while the stats widget
// listens on the new-result name.
const (
	EventResultCommitted = "quizResult"
	EventNewResult       = "newResult"
)

// Event is one fan-out notification.
type Event struct {
	Name   string
	Result domain.RelayResult
}

// Submission is the client-supplied portion of a result. It is accepted
// as-is; the relay does not validate the match against the coin set.
type Submission struct {
	Match             string       `json:"memecoin_match"`
	Scores            domain.Tally `json:"scores,omitempty"`
	AnimalRestriction string       `json:"animal_restriction,omitempty"`
	ChainRestriction  string       `json:"blockchain_restriction,omitempty"`
}

// Relay owns the bounded result cache and the connected listener set. Both
// are read-then-write on every submission, so a single mutex serializes
// them.
type Relay struct {
	max   int
	now   func() time.Time
	newID func() string

	mu          sync.Mutex
	cache       []domain.RelayResult
	subscribers map[chan Event]struct{}
}

// New returns a relay capped at max cached results; max <= 0 uses the
// default of 1000.
func New(max int) *Relay {
	if max <= 0 {
		max = DefaultMaxResults
	}
	return &Relay{
		max:         max,
		now:         time.Now,
		newID:       uuid.NewString,
		subscribers: make(map[chan Event]struct{}),
	}
}

// newWithClock is test-only for deterministic timestamps and ids.
func newWithClock(max int, now func() time.Time, newID func() string) *Relay {
	r := New(max)
	r.now = now
	r.newID = newID
	return r
}

// Submit stamps the submission with a server timestamp and synthetic id,
// appends it to the cache (evicting the oldest entries beyond the cap), and
// broadcasts it to every subscriber, the submitter included.
func (r *Relay) Submit(sub Submission) domain.RelayResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := domain.RelayResult{
		ID:                r.newID(),
		Match:             sub.Match,
		Scores:            sub.Scores,
		Timestamp:         r.now(),
		AnimalRestriction: sub.AnimalRestriction,
		ChainRestriction:  sub.ChainRestriction,
	}

	r.cache = append(r.cache, result)
	if len(r.cache) > r.max {
		r.cache = append([]domain.RelayResult(nil), r.cache[len(r.cache)-r.max:]...)
	}

	for ch := range r.subscribers {
		r.send(ch, Event{Name: EventResultCommitted, Result: result})
		r.send(ch, Event{Name: EventNewResult, Result: result})
	}
	return result
}

// send delivers without blocking on slow listeners: if the buffer is full
// the oldest pending event is dropped in favor of the new one.
func (r *Relay) send(ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- ev
	}
}

// Subscribe registers a listener and returns the cache snapshot at
// subscription time together with the event channel. The caller must invoke
// cancel on every disconnect path to avoid leaking the listener entry.
func (r *Relay) Subscribe() ([]domain.RelayResult, <-chan Event, func()) {
	ch := make(chan Event, 32)

	r.mu.Lock()
	r.subscribers[ch] = struct{}{}
	snapshot := append([]domain.RelayResult(nil), r.cache...)
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subscribers[ch]; ok {
			delete(r.subscribers, ch)
			close(ch)
		}
		r.mu.Unlock()
	}
	return snapshot, ch, cancel
}

// Stats reports totals over the current cache: overall count, count within
// the last 24 hours, and the most frequent match (nil on an empty cache).
// Ties go to the match first seen in the cache.
func (r *Relay) Stats() domain.RelayStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stats := domain.RelayStats{
		TotalResults: len(r.cache),
		Timestamp:    now,
	}

	dayAgo := now.Add(-24 * time.Hour)
	counts := make(map[string]int)
	var order []string
	for _, result := range r.cache {
		if result.Timestamp.After(dayAgo) {
			stats.RecentCount++
		}
		if _, seen := counts[result.Match]; !seen {
			order = append(order, result.Match)
		}
		counts[result.Match]++
	}

	if len(order) > 0 {
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		popular := order[0]
		stats.PopularMemecoin = &popular
	}
	return stats
}

// Len returns the current cache length.
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}
