package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"memematch-service/internal/domain"
	"memematch-service/internal/relay"
)

// ResultStore abstracts the durable result store (Postgres, in-memory).
type ResultStore interface {
	// EnsureUser upserts the owning user row; duplicates are not an error.
	EnsureUser(ctx context.Context, walletAddress string) error
	// InsertResult persists one completed quiz result with a server timestamp.
	InsertResult(ctx context.Context, record domain.ResultRecord) error
	// QueryResults returns the records matching the filter.
	QueryResults(ctx context.Context, filter domain.ResultFilter) ([]domain.ResultRecord, error)
	// InsertDonation persists one donation row.
	InsertDonation(ctx context.Context, donation domain.Donation) error
}

// Broadcaster fans a saved result out to connected dashboard listeners.
type Broadcaster interface {
	Submit(sub relay.Submission) domain.RelayResult
}

// ResultSubmission is the write-path input for one completed quiz.
type ResultSubmission struct {
	WalletAddress     string
	Match             domain.Coin
	Scores            domain.Tally
	AnimalRestriction string
	ChainRestriction  string
}

// ResultService owns the quiz result write path: durable save first, then
// best-effort broadcast. The two are independent; a broadcast problem never
// fails a save.
type ResultService struct {
	store       ResultStore
	broadcaster Broadcaster
	log         zerolog.Logger
}

func NewResultService(store ResultStore, broadcaster Broadcaster, log zerolog.Logger) *ResultService {
	return &ResultService{
		store:       store,
		broadcaster: broadcaster,
		log:         log.With().Str("component", "results").Logger(),
	}
}

// Save upserts the owning user, inserts the result record, and notifies the
// relay. A user-upsert failure is logged and swallowed; a result-insert
// failure is surfaced to the caller.
func (s *ResultService) Save(ctx context.Context, sub ResultSubmission) error {
	if sub.WalletAddress == "" {
		return domain.ErrWalletRequired
	}
	if !sub.Match.Known() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCoin, sub.Match)
	}

	if err := s.store.EnsureUser(ctx, sub.WalletAddress); err != nil {
		s.log.Warn().Err(err).Str("wallet", sub.WalletAddress).Msg("user upsert failed")
	}

	record := domain.ResultRecord{
		UserAddress:       sub.WalletAddress,
		Match:             sub.Match,
		Scores:            sub.Scores,
		AnimalRestriction: sub.AnimalRestriction,
		ChainRestriction:  sub.ChainRestriction,
	}
	if err := s.store.InsertResult(ctx, record); err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.Submit(relay.Submission{
			Match:             string(sub.Match),
			Scores:            sub.Scores,
			AnimalRestriction: sub.AnimalRestriction,
			ChainRestriction:  sub.ChainRestriction,
		})
	}
	return nil
}
