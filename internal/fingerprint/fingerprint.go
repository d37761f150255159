// Package fingerprint derives the cross-platform identity key of a job.
// Two normalized jobs with equal keys are treated as the same real-world
// opportunity regardless of the platform that discovered them.
package fingerprint

import (
	"fmt"
	"strings"

	"github.com/sednabcn/job-search-automation/internal/jobs"
)

// Key is a normalized identity value. It is derived, never stored back onto
// the job, so recomputing it is always safe.
type Key string

// legalSuffixes are trailing company-name words that vary by platform and
// carry no identity ("Acme" vs "Acme Inc" vs "Acme Ltd").
var legalSuffixes = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"ltd":          true,
	"limited":      true,
	"llc":          true,
	"llp":          true,
	"plc":          true,
	"corp":         true,
	"corporation":  true,
	"co":           true,
	"gmbh":         true,
	"sa":           true,
}

// New computes the identity key from normalized company, title and coarse
// region. Seniority words in the title are preserved, so "Engineer" and
// "Senior Engineer" stay distinct. A job with no region falls back to
// company+title alone; for common titles at multi-site companies this can
// merge postings from different locations — an accepted trade-off, not a bug.
func New(job *jobs.NormalizedJob) Key {
	company := normalizeCompany(job.Company)
	title := normalizeText(job.Title)
	region := strings.TrimSpace(job.Location.Region)

	if region == "" {
		return Key(company + "|" + title)
	}
	return Key(company + "|" + title + "|" + region)
}

// Bucket is a coarse salary/posted-date descriptor. It is used only as a
// deterministic tie-breaker when ordering members of a dedup group, never as
// part of the identity key.
func Bucket(job *jobs.NormalizedJob) string {
	salary := "s?"
	if job.Salary != nil {
		salary = fmt.Sprintf("s%d", job.Salary.Min/25000)
	}

	posted := "w?"
	if job.PostedAt != nil {
		year, week := job.PostedAt.UTC().ISOWeek()
		posted = fmt.Sprintf("w%d-%02d", year, week)
	}

	return salary + "/" + posted
}

func normalizeCompany(name string) string {
	words := strings.Fields(normalizeText(name))

	for len(words) > 1 && legalSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}

	return strings.Join(words, " ")
}

// normalizeText lowercases and replaces punctuation with spaces, collapsing
// the result to single-spaced words.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r > 127:
			// Non-ASCII letters are identity-relevant; keep them.
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
