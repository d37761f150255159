// Package normalize turns loosely-typed collector records into canonical
// NormalizedJob values. It is the only place where external data shapes are
// interpreted; everything downstream works on the canonical schema.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/sednabcn/job-search-automation/internal/jobs"
)

// RejectionError marks a record that cannot become a NormalizedJob. The
// pipeline counts rejections and moves on; it never aborts on them.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("record rejected: %s", e.Reason)
}

// Config carries the caller-supplied vocabulary used for skill extraction.
type Config struct {
	Vocabulary []string
}

type Normalizer struct {
	vocab []string

	// now is injectable so relative posted-date parsing stays testable.
	now func() time.Time
}

func New(cfg Config) *Normalizer {
	vocab := make([]string, 0, len(cfg.Vocabulary))
	for _, token := range cfg.Vocabulary {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			vocab = append(vocab, token)
		}
	}

	return &Normalizer{
		vocab: vocab,
		now:   time.Now,
	}
}

// looseRecord is the intermediate shape decoded from a collector record.
// Collectors disagree on field names; aliases are resolved after decoding.
type looseRecord struct {
	ID          string `mapstructure:"id"`
	Title       string `mapstructure:"title"`
	Company     string `mapstructure:"company"`
	Location    string `mapstructure:"location"`
	Description string `mapstructure:"description"`
	Salary      string `mapstructure:"salary"`
	PostedDate  string `mapstructure:"posted_date"`
	URL         string `mapstructure:"url"`
	Remote      *bool  `mapstructure:"remote"`
}

// aliases maps canonical field names to alternative keys seen in collector
// output across the supported platforms.
var aliases = map[string][]string{
	"id":          {"job_id", "external_id", "jobId"},
	"title":       {"job_title", "position", "name"},
	"company":     {"company_name", "employer", "employerName"},
	"location":    {"location_text", "place", "locationName"},
	"description": {"job_description", "summary", "snippet"},
	"salary":      {"salary_text", "salary_range", "pay", "compensation"},
	"posted_date": {"posted", "posted_at", "date", "date_posted", "created_at"},
	"url":         {"link", "job_url", "jobUrl", "apply_url"},
	"remote":      {"is_remote", "isRemote"},
}

// Normalize maps one raw record into the canonical schema. A *RejectionError
// is returned when the record lacks a usable title or company.
func (n *Normalizer) Normalize(raw jobs.RawRecord) (*jobs.NormalizedJob, error) {
	loose, err := decodeLoose(raw.Fields)
	if err != nil {
		return nil, &RejectionError{Reason: fmt.Sprintf("unparseable record shape: %v", err)}
	}

	title := strings.TrimSpace(loose.Title)
	company := strings.TrimSpace(loose.Company)

	if title == "" {
		return nil, &RejectionError{Reason: "missing title"}
	}
	if company == "" {
		return nil, &RejectionError{Reason: "missing company"}
	}

	description := CollapseWhitespace(StripHTML(loose.Description))

	job := &jobs.NormalizedJob{
		Platform:        raw.Platform,
		ExternalID:      strings.TrimSpace(loose.ID),
		Title:           title,
		Company:         company,
		Description:     description,
		Salary:          ParseSalary(loose.Salary),
		URL:             canonicalURL(loose.URL),
		Skills:          ExtractSkills(description, n.vocab),
		SourcePlatforms: []jobs.Platform{raw.Platform},
	}

	job.Location = n.location(loose, title, description)

	if posted := n.parsePostedDate(loose.PostedDate); posted != nil {
		job.PostedAt = posted
	}

	return job, nil
}

func (n *Normalizer) location(loose *looseRecord, title, description string) jobs.Location {
	raw := strings.TrimSpace(loose.Location)

	location := jobs.Location{RawText: raw}

	switch {
	case loose.Remote != nil:
		location.IsRemote = *loose.Remote
	default:
		location.IsRemote = looksRemote(raw) || looksRemote(title) || looksRemote(description)
	}

	location.Region = region(raw, location.IsRemote)

	return location
}

// remoteMarkers are scanned when a collector supplies no explicit remote flag.
var remoteMarkers = []string{"remote", "work from home", "wfh"}

func looksRemote(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range remoteMarkers {
		if containsToken(lower, marker) {
			return true
		}
	}
	return false
}

// region reduces a free-form location to a coarse key: the first
// comma-separated segment, lowercased. A fully remote posting with no
// location text maps to "remote".
func region(raw string, isRemote bool) string {
	segment := raw
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		segment = raw[:idx]
	}
	segment = strings.ToLower(strings.TrimSpace(segment))

	if segment == "" || segment == "remote" {
		if isRemote {
			return "remote"
		}
		return ""
	}

	return segment
}

func canonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return raw
}

func decodeLoose(fields map[string]any) (*looseRecord, error) {
	resolved := make(map[string]any, len(fields))
	for key, value := range fields {
		resolved[strings.ToLower(key)] = value
	}

	for canonical, alts := range aliases {
		if _, ok := resolved[canonical]; ok {
			continue
		}
		for _, alt := range alts {
			if value, ok := fields[alt]; ok {
				resolved[canonical] = value
				break
			}
		}
	}

	var loose looseRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &loose,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(resolved); err != nil {
		return nil, err
	}

	return &loose, nil
}
