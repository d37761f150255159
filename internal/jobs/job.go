package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

const (
	JobURLField     = "URL"
	JobCompanyField = "Company"
)

// Location is the structured location of a posting.
type Location struct {
	RawText  string `json:"raw_text,omitempty"`
	IsRemote bool   `json:"is_remote,omitempty"`
	Region   string `json:"region,omitempty"`
}

// Salary is an annualized salary range. A nil *Salary means the posting did
// not carry a parseable figure; the scorer treats that as unknown, never zero.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency,omitempty"`
}

// NormalizedJob is the canonical job record produced by the normalizer. It is
// created once per run and never mutated; the deduplicator builds new merged
// records instead of editing group members.
type NormalizedJob struct {
	Platform        Platform   `json:"platform"`
	ExternalID      string     `json:"external_id,omitempty"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        Location   `json:"location"`
	Description     string     `json:"description,omitempty"`
	Salary          *Salary    `json:"salary,omitempty"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
	URL             string     `json:"url,omitempty"`
	Skills          []string   `json:"skills,omitempty"`
	SourcePlatforms []Platform `json:"source_platforms"`
}

// HasSkill reports whether the job carries the given lower-cased skill token.
func (j *NormalizedJob) HasSkill(skill string) bool {
	for _, s := range j.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

func (j *NormalizedJob) GetStringField(name string) string {
	switch name {
	case JobURLField:
		return j.URL
	case JobCompanyField:
		return j.Company
	default:
		return ""
	}
}

// Jobs is an ordered collection of normalized jobs.
type Jobs struct {
	Items []*NormalizedJob
}

func (v *Jobs) Len() int {
	return len(v.Items)
}

func (v *Jobs) FindByURL(url string) *NormalizedJob {
	for _, job := range v.Items {
		if job.URL == url {
			return job
		}
	}
	return nil
}

// Exclude removes jobs whose named string field matches one of the targets,
// returning the URLs of the removed jobs. Order of the remaining items is
// preserved.
func (v *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(targets))
	for _, target := range targets {
		drop[target] = true
	}

	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if drop[job.GetStringField(name)] {
			excluded = append(excluded, job.URL)
			continue
		}
		kept = append(kept, job)
	}
	v.Items = kept

	return excluded
}

// ReportByCompany groups jobs under "Company" keys for human review.
func (v *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range v.Items {
		entry := map[string]string{
			"title":     job.Title,
			"url":       job.URL,
			"location":  job.Location.RawText,
			"platforms": fmt.Sprintf("%v", job.SourcePlatforms),
		}
		if job.Salary != nil {
			entry["salary"] = fmt.Sprintf("%d-%d %s", job.Salary.Min, job.Salary.Max, job.Salary.Currency)
		}
		report[job.Company] = append(report[job.Company], entry)
	}
	return report
}

// CountByPlatform tallies jobs per contributing platform.
func (v *Jobs) CountByPlatform() map[Platform]int {
	counts := make(map[Platform]int)
	for _, job := range v.Items {
		for _, platform := range job.SourcePlatforms {
			counts[platform]++
		}
	}
	return counts
}

// Companies returns the distinct company names in the collection, sorted.
func (v *Jobs) Companies() []string {
	seen := make(map[string]bool)
	for _, job := range v.Items {
		seen[job.Company] = true
	}

	companies := make([]string, 0, len(seen))
	for company := range seen {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	return companies
}

func (v *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
