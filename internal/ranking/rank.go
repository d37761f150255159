// Package ranking applies the minimum-score threshold and orders surviving
// matches deterministically.
package ranking

import (
	"sort"
	"strings"

	"github.com/sednabcn/job-search-automation/internal/match"
)

// Rank drops results below minScore and sorts the rest by total score,
// descending. Ties go to the more recently posted job, then to the
// lexicographically smaller company name, so equal inputs always produce
// identical output ordering.
func Rank(results []*match.Result, minScore float64) []*match.Result {
	ranked := make([]*match.Result, 0, len(results))
	for _, result := range results {
		if result.Score.Total >= minScore {
			ranked = append(ranked, result)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		if a.Score.Total != b.Score.Total {
			return a.Score.Total > b.Score.Total
		}

		switch {
		case a.Job.PostedAt != nil && b.Job.PostedAt != nil:
			if !a.Job.PostedAt.Equal(*b.Job.PostedAt) {
				return a.Job.PostedAt.After(*b.Job.PostedAt)
			}
		case a.Job.PostedAt != nil:
			// A known posting date outranks an unknown one at equal score.
			return true
		case b.Job.PostedAt != nil:
			return false
		}

		return strings.ToLower(a.Job.Company) < strings.ToLower(b.Job.Company)
	})

	return ranked
}
