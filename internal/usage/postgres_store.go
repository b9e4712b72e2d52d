package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schema = `
	CREATE TABLE IF NOT EXISTS usage_logs (
		id                BIGSERIAL PRIMARY KEY,
		request_id        TEXT NOT NULL,
		endpoint          TEXT NOT NULL,
		model             TEXT NOT NULL DEFAULT '',
		prompt_tokens     INTEGER NOT NULL DEFAULT 0,
		completion_tokens INTEGER NOT NULL DEFAULT 0,
		total_tokens      INTEGER NOT NULL DEFAULT 0,
		status_code       INTEGER NOT NULL DEFAULT 0,
		error_kind        TEXT NOT NULL DEFAULT '',
		latency_ms        BIGINT NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS usage_logs_created_at_idx ON usage_logs (created_at);
`

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the usage table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate usage schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) LogUsage(ctx context.Context, log *Log) error {
	query := `
		INSERT INTO usage_logs (request_id, endpoint, model, prompt_tokens, completion_tokens, total_tokens, status_code, error_kind, latency_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text, created_at
	`
	err := s.db.QueryRow(ctx, query,
		log.RequestID, log.Endpoint, log.Model,
		log.PromptTokens, log.CompletionTokens, log.TotalTokens,
		log.StatusCode, log.ErrorKind, log.LatencyMs,
	).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to log usage: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetUsage(ctx context.Context, from, to time.Time) ([]*Log, error) {
	query := `
		SELECT id::text, request_id, endpoint, model, prompt_tokens, completion_tokens, total_tokens, status_code, error_kind, latency_ms, created_at
		FROM usage_logs
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage logs: %w", err)
	}
	defer rows.Close()

	var logs []*Log
	for rows.Next() {
		var l Log
		err := rows.Scan(
			&l.ID, &l.RequestID, &l.Endpoint, &l.Model,
			&l.PromptTokens, &l.CompletionTokens, &l.TotalTokens,
			&l.StatusCode, &l.ErrorKind, &l.LatencyMs, &l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage log: %w", err)
		}
		logs = append(logs, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating usage logs: %w", err)
	}

	return logs, nil
}

func (s *PostgresStore) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_tokens), 0)
		FROM usage_logs
		WHERE created_at BETWEEN $1 AND $2
	`
	var sum Summary
	err := s.db.QueryRow(ctx, query, from, to).Scan(&sum.Requests, &sum.TotalTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize usage: %w", err)
	}

	return &sum, nil
}
