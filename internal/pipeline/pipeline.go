// Package pipeline sequences normalization, deduplication, scoring and
// ranking over one batch of collector records. It is the only surface the
// outer layers talk to: collectors feed it, storage and reporting consume
// its result.
package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sednabcn/job-search-automation/internal/dedupe"
	"github.com/sednabcn/job-search-automation/internal/jobs"
	"github.com/sednabcn/job-search-automation/internal/logger"
	"github.com/sednabcn/job-search-automation/internal/match"
	"github.com/sednabcn/job-search-automation/internal/normalize"
	"github.com/sednabcn/job-search-automation/internal/ranking"
)

// StageStats describes what one stage did to the batch.
type StageStats struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

// Result is the outcome of one run: ranked matches plus the data-quality
// statistics the caller needs for reporting.
type Result struct {
	RunID          string
	Results        []*match.Result
	RejectedCount  int
	DuplicateCount int
	Stages         []StageStats
}

// Matches returns the ranked jobs as a collection for reporting helpers.
func (r *Result) Matches() *jobs.Jobs {
	items := make([]*jobs.NormalizedJob, 0, len(r.Results))
	for _, result := range r.Results {
		items = append(items, result.Job)
	}
	return &jobs.Jobs{Items: items}
}

// Pipeline wires the stages together. All state is per-call; a Pipeline can
// be reused across runs and goroutines.
type Pipeline struct {
	normalizer *normalize.Normalizer
	scorer     *match.Scorer
	profile    *match.Profile
	minScore   float64
	logger     *zap.Logger
}

func New(normalizer *normalize.Normalizer, profile *match.Profile, minScore float64, log *zap.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		scorer:     match.NewScorer(),
		profile:    profile,
		minScore:   minScore,
		logger:     logger.WithFields(log),
	}
}

// Run executes the full batch transformation. An empty batch is valid and
// yields an empty, zero-statistics result. Rejected records are counted and
// dropped, never fatal.
func (p *Pipeline) Run(raws []jobs.RawRecord) *Result {
	result := &Result{RunID: uuid.NewString()}

	normalized := make([]*jobs.NormalizedJob, 0, len(raws))
	for _, raw := range raws {
		job, err := p.normalizer.Normalize(raw)
		if err != nil {
			result.RejectedCount++
			p.logger.Debug("record rejected",
				append(logger.JobFields(string(raw.Platform), ""), zap.Error(err))...,
			)
			continue
		}
		normalized = append(normalized, job)
	}
	p.stage(result, "normalize", len(raws), len(normalized))

	deduped, collapsed := dedupe.Deduplicate(normalized)
	result.DuplicateCount = collapsed
	p.stage(result, "dedupe", len(normalized), len(deduped))

	scored := make([]*match.Result, 0, len(deduped))
	for _, job := range deduped {
		scored = append(scored, &match.Result{
			Job:   job,
			Score: p.scorer.Score(job, p.profile),
		})
	}
	p.stage(result, "score", len(deduped), len(scored))

	result.Results = ranking.Rank(scored, p.minScore)
	p.stage(result, "rank", len(scored), len(result.Results))

	p.logger.Info("pipeline run finished",
		zap.String(logger.FieldRunID, result.RunID),
		zap.Int("matches", len(result.Results)),
		zap.Int("rejected", result.RejectedCount),
		zap.Int("duplicate_groups", result.DuplicateCount),
	)

	return result
}

func (p *Pipeline) stage(result *Result, name string, initial, left int) {
	stats := StageStats{
		Name:    name,
		Initial: initial,
		Dropped: initial - left,
		Left:    left,
	}
	result.Stages = append(result.Stages, stats)

	p.logger.Info("pipeline stage",
		zap.String("name", stats.Name),
		zap.Int("initial", stats.Initial),
		zap.Int("dropped", stats.Dropped),
		zap.Int("left", stats.Left),
	)
}
