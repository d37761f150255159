package ai

import (
	"context"

	"github.com/sednabcn/job-search-automation/internal/match"
)

// FitAssessment is an advisory second opinion on a ranked match. It never
// feeds back into scoring or ranking order.
type FitAssessment struct {
	Fit    bool
	Score  float64
	Reason string
	Raw    string
}

// Reviewer evaluates a ranked match against the user's profile.
type Reviewer interface {
	Evaluate(ctx context.Context, profile *match.Profile, result *match.Result) (*FitAssessment, error)
}
