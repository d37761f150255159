// Package dedupe collapses normalized jobs that share a fingerprint into a
// single merged record that keeps provenance from every contributing
// platform.
package dedupe

import (
	"sort"
	"time"

	"github.com/sednabcn/job-search-automation/internal/fingerprint"
	"github.com/sednabcn/job-search-automation/internal/jobs"
)

// Deduplicate groups jobs by fingerprint and merges each group into one
// record. Output order is the first-seen order of each fingerprint; ranking
// happens later and elsewhere. The second return value is the number of
// groups that actually had duplicates collapsed.
//
// Inputs are never mutated: a merged record is a fresh value, so running
// Deduplicate over its own output is a no-op.
func Deduplicate(input []*jobs.NormalizedJob) ([]*jobs.NormalizedJob, int) {
	groups := make(map[fingerprint.Key][]*jobs.NormalizedJob)
	order := make([]fingerprint.Key, 0, len(input))

	for _, job := range input {
		key := fingerprint.New(job)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], job)
	}

	merged := make([]*jobs.NormalizedJob, 0, len(order))
	collapsed := 0

	for _, key := range order {
		group := groups[key]
		if len(group) > 1 {
			collapsed++
		}
		merged = append(merged, merge(group))
	}

	return merged, collapsed
}

// merge builds the surviving record for one dedup group:
//   - base record: the member with the longest description (ties broken by
//     the coarse salary/date bucket, then encounter order, so merges are
//     deterministic);
//   - skills: union across all members;
//   - salary, posted_at: earliest non-absent value in encounter order, with
//     the earliest posting date preferred as the most reliable first-listing
//     signal;
//   - source_platforms: every contributing platform in encounter order,
//     deduplicated.
func merge(group []*jobs.NormalizedJob) *jobs.NormalizedJob {
	if len(group) == 1 {
		return group[0]
	}

	base := group[0]
	for _, job := range group[1:] {
		if better(job, base) {
			base = job
		}
	}

	out := *base

	out.Skills = unionSkills(group)
	out.Salary = firstSalary(group)
	out.PostedAt = earliestPostedAt(group)
	out.SourcePlatforms = collectPlatforms(group)

	return &out
}

func better(candidate, current *jobs.NormalizedJob) bool {
	if len(candidate.Description) != len(current.Description) {
		return len(candidate.Description) > len(current.Description)
	}
	return fingerprint.Bucket(candidate) < fingerprint.Bucket(current)
}

func unionSkills(group []*jobs.NormalizedJob) []string {
	seen := make(map[string]bool)
	for _, job := range group {
		for _, skill := range job.Skills {
			seen[skill] = true
		}
	}

	if len(seen) == 0 {
		return nil
	}

	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

func firstSalary(group []*jobs.NormalizedJob) *jobs.Salary {
	for _, job := range group {
		if job.Salary != nil {
			salary := *job.Salary
			return &salary
		}
	}
	return nil
}

func earliestPostedAt(group []*jobs.NormalizedJob) *time.Time {
	var earliest *time.Time
	for _, job := range group {
		if job.PostedAt == nil {
			continue
		}
		if earliest == nil || job.PostedAt.Before(*earliest) {
			ts := *job.PostedAt
			earliest = &ts
		}
	}
	return earliest
}

func collectPlatforms(group []*jobs.NormalizedJob) []jobs.Platform {
	seen := make(map[jobs.Platform]bool)
	platforms := make([]jobs.Platform, 0, len(group))

	for _, job := range group {
		for _, platform := range job.SourcePlatforms {
			if seen[platform] {
				continue
			}
			seen[platform] = true
			platforms = append(platforms, platform)
		}
	}

	return platforms
}
