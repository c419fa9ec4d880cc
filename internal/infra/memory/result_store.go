package memory

import (
	"context"
	"sync"
	"time"

	"memematch-service/internal/analytics"
	"memematch-service/internal/domain"
)

// ResultStore is an in-memory implementation of app.ResultStore, used when
// Postgres is not configured and in tests.
type ResultStore struct {
	now func() time.Time

	mu        sync.RWMutex
	users     map[string]time.Time
	results   []domain.ResultRecord
	donations []domain.Donation
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		now:   time.Now,
		users: make(map[string]time.Time),
	}
}

// NewResultStoreWithClock is test-only for deterministic timestamps.
func NewResultStoreWithClock(now func() time.Time) *ResultStore {
	s := NewResultStore()
	s.now = now
	return s
}

// EnsureUser registers the wallet once; repeated calls are no-ops.
func (s *ResultStore) EnsureUser(_ context.Context, walletAddress string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[walletAddress]; !ok {
		s.users[walletAddress] = s.now()
	}
	return nil
}

// InsertResult stores the record with a store-assigned timestamp.
func (s *ResultStore) InsertResult(_ context.Context, record domain.ResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Timestamp = s.now()
	record.Scores = record.Scores.Clone()
	s.results = append(s.results, record)
	return nil
}

// QueryResults returns copies of the records matching the filter.
func (s *ResultStore) QueryResults(_ context.Context, filter domain.ResultFilter) ([]domain.ResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var out []domain.ResultRecord
	for _, r := range s.results {
		if analytics.Matches(r, filter.Normalize(), now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *ResultStore) InsertDonation(_ context.Context, donation domain.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	donation.CreatedAt = s.now()
	s.donations = append(s.donations, donation)
	return nil
}

// Donations returns a copy of the stored donations (test helper).
func (s *ResultStore) Donations() []domain.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Donation(nil), s.donations...)
}

// HasUser reports whether the wallet has been registered (test helper).
func (s *ResultStore) HasUser(walletAddress string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[walletAddress]
	return ok
}
