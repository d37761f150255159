package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps runs in a single table with the results as a JSONB
// document. Schema expected:
//
//	CREATE TABLE IF NOT EXISTS pipeline_runs (
//	    run_id          TEXT PRIMARY KEY,
//	    finished_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    rejected_count  INT NOT NULL,
//	    duplicate_count INT NOT NULL,
//	    results         JSONB NOT NULL
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates and verifies a pgxpool connection.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	payload, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("marshaling results for run %s: %w", run.RunID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO pipeline_runs (run_id, rejected_count, duplicate_count, results)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id) DO UPDATE
		 SET rejected_count = EXCLUDED.rejected_count,
		     duplicate_count = EXCLUDED.duplicate_count,
		     results = EXCLUDED.results`,
		run.RunID, run.RejectedCount, run.DuplicateCount, payload,
	)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", run.RunID, err)
	}
	return nil
}

func (s *PostgresStore) LoadRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{RunID: runID}

	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT finished_at::text, rejected_count, duplicate_count, results
		 FROM pipeline_runs WHERE run_id = $1`,
		runID,
	).Scan(&run.FinishedAt, &run.RejectedCount, &run.DuplicateCount, &payload)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	if err := json.Unmarshal(payload, &run.Results); err != nil {
		return nil, fmt.Errorf("decoding results for run %s: %w", runID, err)
	}

	return run, nil
}
