package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"memematch-service/internal/analytics"
	"memematch-service/internal/domain"
)

// ResultStore persists users, quiz results, and donations in Postgres.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

// EnsureUser upserts the owning user row keyed by wallet address; an
// existing row is left untouched.
func (s *ResultStore) EnsureUser(ctx context.Context, walletAddress string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (wallet_address, created_at) VALUES ($1, now())
		 ON CONFLICT (wallet_address) DO NOTHING`,
		walletAddress)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// InsertResult writes one result row; the timestamp is assigned by the
// database, not the caller.
func (s *ResultStore) InsertResult(ctx context.Context, record domain.ResultRecord) error {
	scores, err := json.Marshal(record.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO quiz_results
		   (user_address, memecoin_match, scores, "timestamp", animal_restriction, blockchain_restriction)
		 VALUES ($1, $2, $3::jsonb, now(), NULLIF($4, ''), NULLIF($5, ''))`,
		record.UserAddress, string(record.Match), scores,
		record.AnimalRestriction, record.ChainRestriction)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

// QueryResults pushes the filter into SQL and returns the lightweight
// per-record fields aggregation needs (scores are not hydrated).
func (s *ResultStore) QueryResults(ctx context.Context, filter domain.ResultFilter) ([]domain.ResultRecord, error) {
	filter = filter.Normalize()

	query := `SELECT memecoin_match, "timestamp",
	                 COALESCE(animal_restriction, ''), COALESCE(blockchain_restriction, '')
	          FROM quiz_results`
	var args []interface{}
	var conds []string

	if cutoff, ok := analytics.PeriodCutoff(filter.Period, time.Now()); ok {
		args = append(args, cutoff)
		conds = append(conds, `"timestamp" >= $`+strconv.Itoa(len(args)))
	}
	if filter.Animal != "all" {
		args = append(args, filter.Animal)
		conds = append(conds, `animal_restriction = $`+strconv.Itoa(len(args)))
	}
	if filter.Chain != "all" {
		args = append(args, filter.Chain)
		conds = append(conds, `blockchain_restriction = $`+strconv.Itoa(len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []domain.ResultRecord
	for rows.Next() {
		var record domain.ResultRecord
		var match string
		if err := rows.Scan(&match, &record.Timestamp, &record.AnimalRestriction, &record.ChainRestriction); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		record.Match = domain.Coin(match)
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read quiz results: %w", err)
	}
	return out, nil
}

func (s *ResultStore) InsertDonation(ctx context.Context, donation domain.Donation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO donations
		   (user_address, amount, currency, to_address, dev_donation, tx_hash, created_at)
		 VALUES ($1, $2::numeric, $3, $4, $5::numeric, NULLIF($6, ''), now())`,
		donation.UserAddress, donation.Amount, donation.Currency,
		donation.ToAddress, donation.DevDonation, donation.TxHash)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}
