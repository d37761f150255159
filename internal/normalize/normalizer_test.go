package normalize

import (
	"errors"
	"testing"

	"github.com/sednabcn/job-search-automation/internal/jobs"
)

func TestNormalizeFullRecord(t *testing.T) {
	n := New(Config{Vocabulary: []string{"go", "python", "kubernetes"}})

	raw := jobs.RawRecord{
		Platform: jobs.PlatformLinkedIn,
		Fields: map[string]any{
			"id":          "123",
			"title":       " Senior Go Engineer ",
			"company":     "Acme Inc",
			"location":    "London, UK",
			"description": "<p>We build <b>Go</b> services.</p><p>Python is a plus.</p>",
			"salary":      "£60,000 - £70,000",
			"posted_date": "2024-05-01",
			"url":         "example.com/jobs/123",
		},
	}

	job, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Title != "Senior Go Engineer" {
		t.Fatalf("unexpected title: %q", job.Title)
	}
	if job.Company != "Acme Inc" {
		t.Fatalf("unexpected company: %q", job.Company)
	}
	if job.ExternalID != "123" {
		t.Fatalf("unexpected external id: %q", job.ExternalID)
	}
	if job.URL != "https://example.com/jobs/123" {
		t.Fatalf("expected scheme to be added, got %q", job.URL)
	}
	if job.Location.Region != "london" {
		t.Fatalf("unexpected region: %q", job.Location.Region)
	}
	if job.Location.IsRemote {
		t.Fatalf("did not expect an on-site posting to be remote")
	}
	if job.Salary == nil || job.Salary.Min != 60000 || job.Salary.Max != 70000 {
		t.Fatalf("unexpected salary: %+v", job.Salary)
	}
	if job.PostedAt == nil || job.PostedAt.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("unexpected posted date: %v", job.PostedAt)
	}
	if len(job.Skills) != 2 || job.Skills[0] != "go" || job.Skills[1] != "python" {
		t.Fatalf("unexpected skills: %v", job.Skills)
	}
	if len(job.SourcePlatforms) != 1 || job.SourcePlatforms[0] != jobs.PlatformLinkedIn {
		t.Fatalf("unexpected source platforms: %v", job.SourcePlatforms)
	}
}

func TestNormalizeResolvesAliases(t *testing.T) {
	n := New(Config{})

	raw := jobs.RawRecord{
		Platform: jobs.PlatformIndeed,
		Fields: map[string]any{
			"job_title":    "Engineer",
			"employerName": "Globex",
			"salary_range": "£45k",
			"link":         "https://example.com/x",
		},
	}

	job, err := n.Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Title != "Engineer" || job.Company != "Globex" {
		t.Fatalf("aliases not resolved: title %q company %q", job.Title, job.Company)
	}
	if job.Salary == nil || job.Salary.Min != 45000 {
		t.Fatalf("salary alias not resolved: %+v", job.Salary)
	}
	if job.URL != "https://example.com/x" {
		t.Fatalf("url alias not resolved: %q", job.URL)
	}
}

func TestNormalizeRejections(t *testing.T) {
	n := New(Config{})

	cases := []struct {
		name   string
		fields map[string]any
	}{
		{
			name:   "missing title",
			fields: map[string]any{"company": "Acme"},
		},
		{
			name:   "blank title",
			fields: map[string]any{"title": "   ", "company": "Acme"},
		},
		{
			name:   "missing company",
			fields: map[string]any{"title": "Engineer"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := n.Normalize(jobs.RawRecord{Platform: jobs.PlatformReed, Fields: tc.fields})
			if err == nil {
				t.Fatalf("expected a rejection")
			}

			var rejection *RejectionError
			if !errors.As(err, &rejection) {
				t.Fatalf("expected a RejectionError, got %T: %v", err, err)
			}
		})
	}
}

func TestNormalizeRemoteDetection(t *testing.T) {
	n := New(Config{})

	t.Run("marker in location", func(t *testing.T) {
		job, err := n.Normalize(jobs.RawRecord{
			Platform: jobs.PlatformReed,
			Fields: map[string]any{
				"title":    "Engineer",
				"company":  "Acme",
				"location": "Remote, UK",
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !job.Location.IsRemote {
			t.Fatalf("expected remote detection from location text")
		}
		if job.Location.Region != "remote" {
			t.Fatalf("unexpected region: %q", job.Location.Region)
		}
	})

	t.Run("explicit flag wins over markers", func(t *testing.T) {
		job, err := n.Normalize(jobs.RawRecord{
			Platform: jobs.PlatformReed,
			Fields: map[string]any{
				"title":    "Engineer",
				"company":  "Acme",
				"location": "Remote",
				"remote":   false,
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if job.Location.IsRemote {
			t.Fatalf("expected explicit remote=false to win")
		}
		if job.Location.Region != "" {
			t.Fatalf("a non-remote posting with no real location should have no region, got %q", job.Location.Region)
		}
	})

	t.Run("marker in title", func(t *testing.T) {
		job, err := n.Normalize(jobs.RawRecord{
			Platform: jobs.PlatformReed,
			Fields: map[string]any{
				"title":   "Engineer (Remote)",
				"company": "Acme",
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !job.Location.IsRemote {
			t.Fatalf("expected remote detection from title")
		}
	})
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	got := CollapseWhitespace(StripHTML("<p>first</p><p>second</p>"))
	if got != "first second" {
		t.Fatalf("expected block boundaries to become spaces, got %q", got)
	}

	plain := "no markup here"
	if StripHTML(plain) != plain {
		t.Fatalf("plain text must pass through untouched")
	}
}
