// Package store persists pipeline results. The core only promises an
// in-memory contract; any implementation that can round-trip a job and its
// score satisfies it.
package store

import (
	"context"

	"github.com/sednabcn/job-search-automation/internal/match"
)

// Run is the persisted unit: one pipeline execution with its statistics.
type Run struct {
	RunID          string          `json:"run_id"`
	FinishedAt     string          `json:"finished_at"`
	RejectedCount  int             `json:"rejected_count"`
	DuplicateCount int             `json:"duplicate_count"`
	Results        []*match.Result `json:"results"`
}

// Store saves and reloads pipeline runs.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	LoadRun(ctx context.Context, runID string) (*Run, error)
}
