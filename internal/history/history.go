// Package history tracks jobs discovered in previous runs so repeat
// discoveries can be recognized and excluded. The file format round-trips
// through JSON, one entry per fingerprint.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sednabcn/job-search-automation/internal/fingerprint"
	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/match"
)

// Status is the review lifecycle of a discovered job.
type Status string

const (
	StatusNew           Status = "new"
	StatusReviewed      Status = "reviewed"
	StatusApplied       Status = "applied"
	StatusNotInterested Status = "not_interested"
)

// Entry records one previously discovered job.
type Entry struct {
	Fingerprint string    `json:"fingerprint"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	URL         string    `json:"url,omitempty"`
	FirstSeen   time.Time `json:"first_seen"`
	Status      Status    `json:"status"`
}

// History is the full seen-job record, ordered by first discovery.
type History struct {
	Items []*Entry `json:"items"`

	index map[string]*Entry
}

func New() *History {
	return &History{index: make(map[string]*Entry)}
}

// FromFile loads a history file. A missing or empty file yields an empty
// history rather than an error, so first runs need no setup.
func FromFile(path string) (*History, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("opening history file %q: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return New(), nil
	}

	history := New()
	if err := json.NewDecoder(file).Decode(history); err != nil {
		return nil, fmt.Errorf("decoding history file %q: %w", path, err)
	}

	for _, entry := range history.Items {
		history.index[entry.Fingerprint] = entry
	}

	return history, nil
}

func (h *History) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

func (h *History) Len() int {
	return len(h.Items)
}

func (h *History) Seen(key fingerprint.Key) bool {
	_, ok := h.index[string(key)]
	return ok
}

// Add records a job with StatusNew. Returns false when the job was already
// known; known entries are left untouched.
func (h *History) Add(job *jobs.NormalizedJob, seenAt time.Time) bool {
	key := string(fingerprint.New(job))
	if _, ok := h.index[key]; ok {
		return false
	}

	entry := &Entry{
		Fingerprint: key,
		Title:       job.Title,
		Company:     job.Company,
		URL:         job.URL,
		FirstSeen:   seenAt.UTC(),
		Status:      StatusNew,
	}

	h.Items = append(h.Items, entry)
	h.index[key] = entry

	return true
}

// MarkStatus advances the lifecycle of a known entry.
func (h *History) MarkStatus(key fingerprint.Key, status Status) bool {
	entry, ok := h.index[string(key)]
	if !ok {
		return false
	}
	entry.Status = status
	return true
}

// ExcludeSeen splits ranked results into unseen ones and the count of
// previously discovered ones that were dropped.
func (h *History) ExcludeSeen(results []*match.Result) ([]*match.Result, int) {
	kept := make([]*match.Result, 0, len(results))
	dropped := 0

	for _, result := range results {
		if h.Seen(fingerprint.New(result.Job)) {
			dropped++
			continue
		}
		kept = append(kept, result)
	}

	return kept, dropped
}
