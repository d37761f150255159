package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/match"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testInputs(t *testing.T) (*match.Profile, *match.Result) {
	t.Helper()

	profile, err := match.NewProfile(match.ProfileParams{
		RequiredSkills: []string{"go"},
		Locations:      []string{"london"},
		RemoteOK:       true,
		TargetLevel:    "senior",
		Weights: match.Weights{
			Skills:     0.5,
			Salary:     0.1,
			Location:   0.1,
			Company:    0.1,
			Experience: 0.1,
			Recency:    0.1,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := &match.Result{
		Job: &jobs.NormalizedJob{
			Title:   "Senior Go Engineer",
			Company: "Acme",
			URL:     "https://example.com/1",
			Skills:  []string{"go"},
		},
		Score: match.Breakdown{Total: 88, Tier: match.TierStrong},
	}

	return profile, result
}

func TestMatcherEvaluate(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.9, "reason": "Matches the stack"}`}
	matcher := NewMatcher(stub, zap.NewNop(), 0.5, 0)

	profile, result := testInputs(t)

	assessment, err := matcher.Evaluate(context.Background(), profile, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit {
		t.Fatalf("expected fit to be true")
	}
	if assessment.Score != 0.9 {
		t.Fatalf("expected score 0.9, got %v", assessment.Score)
	}
	if assessment.Reason != "Matches the stack" {
		t.Fatalf("unexpected reason: %q", assessment.Reason)
	}
	if assessment.Raw == "" {
		t.Fatalf("expected the raw response to be preserved")
	}

	if stub.lastPrompt == "" {
		t.Fatalf("expected a prompt to be sent")
	}
	if !strings.Contains(stub.lastPrompt, "Senior Go Engineer") {
		t.Fatalf("expected the job to be embedded in the prompt")
	}
	if !strings.Contains(stub.lastPrompt, `"target_level": "senior"`) {
		t.Fatalf("expected the profile to be embedded in the prompt")
	}
}

func TestMatcherScoreThresholdFlipsFit(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": true, "score": 0.4, "reason": "Borderline"}`}
	matcher := NewMatcher(stub, zap.NewNop(), 0.5, 0)

	profile, result := testInputs(t)

	assessment, err := matcher.Evaluate(context.Background(), profile, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Fit {
		t.Fatalf("expected fit to be overridden by the score threshold")
	}
	if assessment.Score != 0.4 {
		t.Fatalf("expected the score itself to be untouched, got %v", assessment.Score)
	}
}

func TestMatcherParsesFencedResponse(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"fit\": false, \"score\": 0.2, \"reason\": \"Wrong domain\"}\n```"}
	matcher := NewMatcher(stub, zap.NewNop(), 0, 0)

	profile, result := testInputs(t)

	assessment, err := matcher.Evaluate(context.Background(), profile, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Fit {
		t.Fatalf("expected fit to be false")
	}
	if assessment.Reason != "Wrong domain" {
		t.Fatalf("unexpected reason: %q", assessment.Reason)
	}
}

func TestMatcherCoercesStringValues(t *testing.T) {
	stub := &stubGenerator{response: `{"fit": "true", "score": "0.75", "reason": "Stringly typed"}`}
	matcher := NewMatcher(stub, zap.NewNop(), 0, 0)

	profile, result := testInputs(t)

	assessment, err := matcher.Evaluate(context.Background(), profile, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !assessment.Fit || assessment.Score != 0.75 {
		t.Fatalf("expected coerced values, got %+v", assessment)
	}
}

func TestMatcherPropagatesGeneratorError(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	matcher := NewMatcher(&stubGenerator{err: wantErr}, zap.NewNop(), 0, 0)

	profile, result := testInputs(t)

	if _, err := matcher.Evaluate(context.Background(), profile, result); !errors.Is(err, wantErr) {
		t.Fatalf("expected the generator error, got %v", err)
	}
}

func TestMatcherRejectsUnparseableResponse(t *testing.T) {
	matcher := NewMatcher(&stubGenerator{response: "sorry, I cannot help"}, zap.NewNop(), 0, 0)

	profile, result := testInputs(t)

	if _, err := matcher.Evaluate(context.Background(), profile, result); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestMatcherRequiresInputs(t *testing.T) {
	matcher := NewMatcher(&stubGenerator{response: "{}"}, zap.NewNop(), 0, 0)

	profile, result := testInputs(t)

	if _, err := matcher.Evaluate(context.Background(), nil, result); err == nil {
		t.Fatalf("expected an error for a nil profile")
	}
	if _, err := matcher.Evaluate(context.Background(), profile, nil); err == nil {
		t.Fatalf("expected an error for a nil result")
	}
}
