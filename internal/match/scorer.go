package match

import (
	"time"

	"github.com/sednabcn/job-search-automation/internal/jobs"
)

// Named policy constants. These encode deliberate product choices — absence
// of a signal is neutral or forgiven, never a penalty — so they can be tuned
// without re-deriving intent from the arithmetic.
const (
	// absentSalaryScore forgives postings that omit salary entirely.
	absentSalaryScore = 100.0
	// neutralCompanyScore applies when the company is simply not on the
	// preferred list.
	neutralCompanyScore = 50.0
	// onsiteFallbackScore applies to on-site jobs outside the preferred
	// regions when the profile accepts remote work.
	onsiteFallbackScore = 50.0
	// unknownLevelScore applies when the title carries no seniority signal.
	unknownLevelScore = 50.0
	// absentRecencyScore applies when the posting date is unknown.
	absentRecencyScore = 50.0

	// recencyFullDays and recencyZeroDays bound the linear recency decay.
	recencyFullDays = 3.0
	recencyZeroDays = 30.0
)

// Tier buckets a total score for human consumption.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierStrong    Tier = "strong"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Breakdown holds the weighted contribution of every factor. Each sub-score
// lies in [0, weight*100] and Total is their sum, so Total is always within
// [0, 100] for a valid profile.
type Breakdown struct {
	Skills     float64 `json:"skills_score"`
	Salary     float64 `json:"salary_score"`
	Location   float64 `json:"location_score"`
	Company    float64 `json:"company_score"`
	Experience float64 `json:"experience_score"`
	Recency    float64 `json:"recency_score"`
	Total      float64 `json:"total_score"`
	Tier       Tier    `json:"recommendation"`
}

// Result pairs a deduplicated job with its score; it is the unit that flows
// out of the pipeline.
type Result struct {
	Job   *jobs.NormalizedJob `json:"job"`
	Score Breakdown           `json:"score"`
}

// Scorer computes breakdowns for (job, profile) pairs. It holds no mutable
// state; the clock is injectable so recency scoring stays testable.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score computes the weighted multi-factor breakdown. The profile is trusted
// here: weight validation happened at construction and is never repeated on
// this path.
func (s *Scorer) Score(job *jobs.NormalizedJob, profile *Profile) Breakdown {
	w := profile.Weights

	b := Breakdown{
		Skills:     skillsScore(job, profile) * w.Skills,
		Salary:     salaryScore(job, profile) * w.Salary,
		Location:   locationScore(job, profile) * w.Location,
		Company:    companyScore(job, profile) * w.Company,
		Experience: experienceScore(job, profile) * w.Experience,
		Recency:    s.recencyScore(job) * w.Recency,
	}

	b.Total = b.Skills + b.Salary + b.Location + b.Company + b.Experience + b.Recency
	b.Tier = tierFor(b.Total)

	return b
}

func tierFor(total float64) Tier {
	switch {
	case total >= 90:
		return TierExcellent
	case total >= 80:
		return TierStrong
	case total >= 70:
		return TierGood
	case total >= 60:
		return TierFair
	default:
		return TierPoor
	}
}

// skillsScore is weighted coverage of the profile's skill sets by the job's
// extracted skills, with required skills counting double relative to
// preferred ones.
func skillsScore(job *jobs.NormalizedJob, profile *Profile) float64 {
	possible := 2*len(profile.RequiredSkills) + len(profile.PreferredSkills)
	if possible == 0 {
		return 0
	}

	matched := 0
	for _, skill := range job.Skills {
		if profile.RequiredSkills[skill] {
			matched += 2
		} else if profile.PreferredSkills[skill] {
			matched++
		}
	}

	return float64(matched) / float64(possible) * 100
}

// salaryScore gives full marks at or above the floor and to postings with no
// parseable salary, then falls off linearly with the gap below the floor.
func salaryScore(job *jobs.NormalizedJob, profile *Profile) float64 {
	if job.Salary == nil || profile.SalaryFloor <= 0 {
		return absentSalaryScore
	}

	min := job.Salary.Min
	if min >= profile.SalaryFloor {
		return 100
	}

	score := float64(min) / float64(profile.SalaryFloor) * 100
	if score < 0 {
		return 0
	}
	return score
}

func locationScore(job *jobs.NormalizedJob, profile *Profile) float64 {
	if job.Location.IsRemote && profile.RemoteOK {
		return 100
	}
	if job.Location.Region != "" && profile.Locations[job.Location.Region] {
		return 100
	}
	if profile.RemoteOK {
		return onsiteFallbackScore
	}
	return 0
}

func companyScore(job *jobs.NormalizedJob, profile *Profile) float64 {
	if profile.PreferredCompanies[normalizeCompanyName(job.Company)] {
		return 100
	}
	return neutralCompanyScore
}

func experienceScore(job *jobs.NormalizedJob, profile *Profile) float64 {
	level := DetectLevel(job.Title)
	if level == LevelUnknown {
		return unknownLevelScore
	}

	distance := int(level) - int(profile.TargetLevel)
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return 100
	case 1:
		return 50
	default:
		return 0
	}
}

func (s *Scorer) recencyScore(job *jobs.NormalizedJob) float64 {
	if job.PostedAt == nil {
		return absentRecencyScore
	}

	ageDays := s.now().UTC().Sub(job.PostedAt.UTC()).Hours() / 24

	switch {
	case ageDays <= recencyFullDays:
		return 100
	case ageDays >= recencyZeroDays:
		return 0
	default:
		return (recencyZeroDays - ageDays) / (recencyZeroDays - recencyFullDays) * 100
	}
}
