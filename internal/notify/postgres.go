package notify

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

// PostgresSink appends completions to the block_completions ledger. The
// table holds one row per session, so a redelivery counts as delivered.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS block_completions (
				session_id     TEXT PRIMARY KEY,
				block_id       TEXT NOT NULL,
				first_purchase TEXT NOT NULL,
				completed_at   TIMESTAMPTZ NOT NULL
			)
		`)
		return err
	})
}

func (s *PostgresSink) Deliver(ctx context.Context, c Completion) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO block_completions (session_id, block_id, first_purchase, completed_at)
			VALUES ($1, $2, $3, $4)
		`, c.SessionID, c.BlockID, c.Data.FirstPurchase, c.At)

		if err == nil || isUniqueViolation(err) {
			return nil
		}
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
