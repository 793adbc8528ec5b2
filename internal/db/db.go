// Package db persists ranking runs to PostgreSQL.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-ranker/internal/types"
)

// schema creates the ranking tables; every statement is idempotent
const schema = `
CREATE TABLE IF NOT EXISTS ranking_runs (
	id          UUID PRIMARY KEY,
	job_title   TEXT NOT NULL DEFAULT '',
	job         JSONB NOT NULL,
	skipped     JSONB NOT NULL DEFAULT '[]',
	pool_size   INTEGER NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS candidate_results (
	run_id           UUID NOT NULL REFERENCES ranking_runs(id) ON DELETE CASCADE,
	rank_position    INTEGER NOT NULL,
	resume_id        TEXT NOT NULL DEFAULT '',
	filename         TEXT NOT NULL DEFAULT '',
	raw_score        INTEGER NOT NULL,
	score            INTEGER NOT NULL,
	comparative_rank TEXT NOT NULL DEFAULT '',
	result           JSONB NOT NULL,
	PRIMARY KEY (run_id, rank_position)
);

CREATE INDEX IF NOT EXISTS idx_ranking_runs_created_at ON ranking_runs (created_at DESC);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema creates the ranking tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRankingRun stores a run and its calibrated results in one transaction.
func (db *DB) SaveRankingRun(ctx context.Context, run *types.RankingRun) error {
	if run == nil || run.ID == uuid.Nil {
		return fmt.Errorf("ranking run must have an ID")
	}

	jobJSON, err := json.Marshal(run.Job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	skippedJSON, err := json.Marshal(nonNilSkipped(run.Skipped))
	if err != nil {
		return fmt.Errorf("failed to marshal skipped resumes: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO ranking_runs (id, job_title, job, skipped, pool_size, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Job.Title, jobJSON, skippedJSON, len(run.Results), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ranking run: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range run.Results {
		result := &run.Results[i]
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result %d: %w", i, err)
		}
		batch.Queue(
			`INSERT INTO candidate_results
			 (run_id, rank_position, resume_id, filename, raw_score, score, comparative_rank, result)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			run.ID, rankPosition(result, i), result.ResumeID, result.Filename,
			result.RawScore, result.Score, result.ComparativeRank, resultJSON,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert candidate results: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ranking run: %w", err)
	}
	return nil
}

// GetRankingRun retrieves a run with its results ordered by rank. Returns nil, nil when
// no run has the ID.
func (db *DB) GetRankingRun(ctx context.Context, id uuid.UUID) (*types.RankingRun, error) {
	var (
		jobJSON, skippedJSON []byte
		createdAt            time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT job, skipped, created_at FROM ranking_runs WHERE id = $1`,
		id,
	).Scan(&jobJSON, &skippedJSON, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking run: %w", err)
	}

	run := &types.RankingRun{ID: id, CreatedAt: createdAt.UTC()}
	if err := json.Unmarshal(jobJSON, &run.Job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if err := json.Unmarshal(skippedJSON, &run.Skipped); err != nil {
		return nil, fmt.Errorf("failed to decode skipped resumes: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT result FROM candidate_results WHERE run_id = $1 ORDER BY rank_position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate results: %w", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.CandidateResult, error) {
		var raw []byte
		var result types.CandidateResult
		if err := row.Scan(&raw); err != nil {
			return result, err
		}
		err := json.Unmarshal(raw, &result)
		return result, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate results: %w", err)
	}
	run.Results = results
	return run, nil
}

// ListRankingRuns returns the most recent runs, newest first
func (db *DB) ListRankingRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_title, pool_size, created_at
		 FROM ranking_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranking runs: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[RunSummary])
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking runs: %w", err)
	}
	return summaries, nil
}

// rankPosition falls back to slice order for uncalibrated results
func rankPosition(result *types.CandidateResult, idx int) int {
	if result.RankPosition > 0 {
		return result.RankPosition
	}
	return idx + 1
}

func nonNilSkipped(skipped []types.SkippedResume) []types.SkippedResume {
	if skipped == nil {
		return []types.SkippedResume{}
	}
	return skipped
}
