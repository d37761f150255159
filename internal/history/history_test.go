package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sednabcn/job-search-automation/internal/fingerprint"
	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/match"
)

func sampleJob(company, title string) *jobs.NormalizedJob {
	return &jobs.NormalizedJob{
		Company:  company,
		Title:    title,
		Location: jobs.Location{Region: "london"},
		URL:      "https://example.com/" + title,
	}
}

func TestAddAndSeen(t *testing.T) {
	t.Parallel()

	h := New()
	job := sampleJob("Acme", "Engineer")
	now := time.Now()

	if !h.Add(job, now) {
		t.Fatalf("expected a first add to succeed")
	}
	if h.Add(job, now) {
		t.Fatalf("expected a repeat add to be a no-op")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", h.Len())
	}
	if !h.Seen(fingerprint.New(job)) {
		t.Fatalf("expected the job to be seen")
	}
	if h.Items[0].Status != StatusNew {
		t.Fatalf("expected status new, got %q", h.Items[0].Status)
	}

	// The same opportunity found under a suffixed company name is still seen.
	if !h.Seen(fingerprint.New(sampleJob("Acme Ltd", "Engineer"))) {
		t.Fatalf("expected the suffixed variant to be seen")
	}
}

func TestMarkStatus(t *testing.T) {
	t.Parallel()

	h := New()
	job := sampleJob("Acme", "Engineer")
	h.Add(job, time.Now())

	key := fingerprint.New(job)
	if !h.MarkStatus(key, StatusApplied) {
		t.Fatalf("expected a known entry to be updated")
	}
	if h.Items[0].Status != StatusApplied {
		t.Fatalf("expected status applied, got %q", h.Items[0].Status)
	}

	if h.MarkStatus(fingerprint.Key("missing"), StatusReviewed) {
		t.Fatalf("expected an unknown key to report false")
	}
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.json")

	h := New()
	seenAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	h.Add(sampleJob("Acme", "Engineer"), seenAt)
	h.Add(sampleJob("Globex", "Analyst"), seenAt)
	h.MarkStatus(fingerprint.New(sampleJob("Globex", "Analyst")), StatusNotInterested)

	if err := h.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := FromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", loaded.Len())
	}
	if !loaded.Seen(fingerprint.New(sampleJob("Acme", "Engineer"))) {
		t.Fatalf("expected the loaded history to recognize the job")
	}
	if loaded.Items[1].Status != StatusNotInterested {
		t.Fatalf("expected the status to survive the round-trip, got %q", loaded.Items[1].Status)
	}
	if !loaded.Items[0].FirstSeen.Equal(seenAt) {
		t.Fatalf("expected first-seen to survive the round-trip, got %v", loaded.Items[0].FirstSeen)
	}
}

func TestFromFileMissing(t *testing.T) {
	t.Parallel()

	h, err := FromFile(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("a missing file must yield an empty history, got %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("expected an empty history, got %d entries", h.Len())
	}
}

func TestExcludeSeen(t *testing.T) {
	t.Parallel()

	known := sampleJob("Acme", "Engineer")
	fresh := sampleJob("Globex", "Analyst")

	h := New()
	h.Add(known, time.Now())

	results := []*match.Result{
		{Job: known},
		{Job: fresh},
	}

	kept, dropped := h.ExcludeSeen(results)

	if dropped != 1 {
		t.Fatalf("expected 1 dropped result, got %d", dropped)
	}
	if len(kept) != 1 || kept[0].Job.Company != "Globex" {
		t.Fatalf("unexpected surviving results: %v", kept)
	}
}
