package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"review-sentiment-orchestrator/internal/domain"
)

// ErrNotFound reports a missing review. A review from a failed execution
// is indistinguishable from one that was never submitted.
var ErrNotFound = errors.New("review not found")

// StoreError marks a persistence failure. It is fatal to the workflow
// execution; no partial record exists when it is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("review store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

type ReviewStore struct {
	db *sql.DB
}

func NewReviewStore(dsn string) (*ReviewStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &ReviewStore{db: db}, nil
}

func (s *ReviewStore) Close() error {
	return s.db.Close()
}

func (s *ReviewStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the reviews table and its sentiment index. The
// secondary index is owned by the store; the workflow never maintains it.
func (s *ReviewStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reviews (
			review_id        TEXT PRIMARY KEY,
			customer_message TEXT NOT NULL,
			sentiment        TEXT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return &StoreError{Op: "ensure schema", Err: err}
	}
	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS reviews_sentiment_idx
		ON reviews (sentiment, created_at)
	`)
	if err != nil {
		return &StoreError{Op: "ensure schema", Err: err}
	}
	return nil
}

// PutReview is a single atomic insert keyed by review_id. IDs are freshly
// generated per execution, so a put is always an insert, never an
// overwrite; there is no conflict branch.
func (s *ReviewStore) PutReview(ctx context.Context, rec domain.ReviewRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (review_id, customer_message, sentiment)
		VALUES ($1, $2, $3)
	`, rec.ReviewID, rec.CustomerMessage, rec.Sentiment)
	if err != nil {
		return &StoreError{Op: "put", Err: err}
	}
	return nil
}

func (s *ReviewStore) GetReview(ctx context.Context, reviewID string) (domain.ReviewRecord, error) {
	var rec domain.ReviewRecord
	row := s.db.QueryRowContext(ctx, `
		SELECT review_id, customer_message, sentiment, created_at
		FROM reviews
		WHERE review_id = $1
	`, reviewID)
	if err := row.Scan(&rec.ReviewID, &rec.CustomerMessage, &rec.Sentiment, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ReviewRecord{}, ErrNotFound
		}
		return domain.ReviewRecord{}, &StoreError{Op: "get", Err: err}
	}
	return rec, nil
}

// ListReviewsBySentiment returns records in index order: created_at
// ascending within the requested sentiment.
func (s *ReviewStore) ListReviewsBySentiment(ctx context.Context, sentiment domain.Sentiment) ([]domain.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT review_id, customer_message, sentiment, created_at
		FROM reviews
		WHERE sentiment = $1
		ORDER BY created_at ASC
	`, sentiment)
	if err != nil {
		return nil, &StoreError{Op: "list by sentiment", Err: err}
	}
	defer rows.Close()

	records := make([]domain.ReviewRecord, 0)
	for rows.Next() {
		var rec domain.ReviewRecord
		if err := rows.Scan(&rec.ReviewID, &rec.CustomerMessage, &rec.Sentiment, &rec.CreatedAt); err != nil {
			return nil, &StoreError{Op: "list by sentiment", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list by sentiment", Err: err}
	}
	return records, nil
}

func (s *ReviewStore) CountReviews(ctx context.Context) (int64, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`)
	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return count, nil
}
