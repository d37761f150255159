package store

import (
	"context"
	"os"
	"testing"

	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/match"
)

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run := &Run{
		RunID:          "run-1",
		FinishedAt:     "2024-05-01T10:00:00Z",
		RejectedCount:  2,
		DuplicateCount: 1,
		Results: []*match.Result{
			{
				Job: &jobs.NormalizedJob{
					Platform:        jobs.PlatformLinkedIn,
					Title:           "Senior Go Engineer",
					Company:         "Acme",
					Salary:          &jobs.Salary{Min: 60000, Max: 70000, Currency: "GBP"},
					Skills:          []string{"go"},
					SourcePlatforms: []jobs.Platform{jobs.PlatformLinkedIn},
				},
				Score: match.Breakdown{Total: 90, Tier: match.TierExcellent},
			},
		},
	}

	ctx := context.Background()

	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := st.LoadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded.RunID != run.RunID || loaded.RejectedCount != 2 || loaded.DuplicateCount != 1 {
		t.Fatalf("run statistics did not survive the round-trip: %+v", loaded)
	}
	if len(loaded.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(loaded.Results))
	}

	job := loaded.Results[0].Job
	if job.Company != "Acme" || job.Salary == nil || job.Salary.Min != 60000 {
		t.Fatalf("job did not survive the round-trip: %+v", job)
	}
	if loaded.Results[0].Score.Tier != match.TierExcellent {
		t.Fatalf("score did not survive the round-trip: %+v", loaded.Results[0].Score)
	}
}

func TestFileStoreOverwritesExistingRun(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()

	if err := st.SaveRun(ctx, &Run{RunID: "run-1", RejectedCount: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.SaveRun(ctx, &Run{RunID: "run-1", RejectedCount: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := st.LoadRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.RejectedCount != 5 {
		t.Fatalf("expected the second save to win, got %+v", loaded)
	}
}

func TestFileStoreLoadMissingRun(t *testing.T) {
	t.Parallel()

	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := st.LoadRun(context.Background(), "nope"); !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}
