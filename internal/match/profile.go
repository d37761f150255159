// Package match scores deduplicated jobs against a user match profile.
package match

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// weightTolerance is the accepted float64 noise when checking that the six
// factor weights sum to 1.0.
const weightTolerance = 1e-6

var validate = validator.New()

// Weights distributes scoring influence across the six factors. The vector
// must sum to 1.0; that is validated once at profile construction so the
// scoring hot path never re-checks it.
type Weights struct {
	Skills     float64 `mapstructure:"skills" json:"skills" validate:"gte=0,lte=1"`
	Salary     float64 `mapstructure:"salary" json:"salary" validate:"gte=0,lte=1"`
	Location   float64 `mapstructure:"location" json:"location" validate:"gte=0,lte=1"`
	Company    float64 `mapstructure:"company" json:"company" validate:"gte=0,lte=1"`
	Experience float64 `mapstructure:"experience" json:"experience" validate:"gte=0,lte=1"`
	Recency    float64 `mapstructure:"recency" json:"recency" validate:"gte=0,lte=1"`
}

func (w Weights) sum() float64 {
	return w.Skills + w.Salary + w.Location + w.Company + w.Experience + w.Recency
}

// ProfileParams is the caller-supplied raw profile, typically unmarshalled
// from the configuration file.
type ProfileParams struct {
	RequiredSkills     []string `mapstructure:"required-skills"`
	PreferredSkills    []string `mapstructure:"preferred-skills"`
	Locations          []string `mapstructure:"locations"`
	RemoteOK           bool     `mapstructure:"remote-ok"`
	SalaryFloor        int      `mapstructure:"salary-floor" validate:"gte=0"`
	PreferredCompanies []string `mapstructure:"preferred-companies"`
	TargetLevel        string   `mapstructure:"target-level"`
	Weights            Weights  `mapstructure:"weights"`
}

// Profile is a validated, immutable match profile. Lookup sets are
// pre-lowered so scoring does no case folding per job.
type Profile struct {
	RequiredSkills     map[string]bool
	PreferredSkills    map[string]bool
	Locations          map[string]bool
	RemoteOK           bool
	SalaryFloor        int
	PreferredCompanies map[string]bool
	TargetLevel        Level
	Weights            Weights
}

// NewProfile validates params and builds a Profile. This is the one fatal
// boundary of the system: an invalid profile makes every downstream score
// meaningless, so construction fails instead of degrading.
func NewProfile(params ProfileParams) (*Profile, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid match profile: %w", err)
	}

	if diff := math.Abs(params.Weights.sum() - 1.0); diff > weightTolerance {
		return nil, fmt.Errorf("factor weights must sum to 1.0, got %.4f", params.Weights.sum())
	}

	if params.Weights.Skills > 0 && len(params.RequiredSkills) == 0 {
		return nil, fmt.Errorf("required-skills must not be empty when the skills weight is %.2f", params.Weights.Skills)
	}

	level, err := ParseLevel(params.TargetLevel)
	if err != nil {
		return nil, err
	}

	return &Profile{
		RequiredSkills:     toSet(params.RequiredSkills),
		PreferredSkills:    toSet(params.PreferredSkills),
		Locations:          toSet(params.Locations),
		RemoteOK:           params.RemoteOK,
		SalaryFloor:        params.SalaryFloor,
		PreferredCompanies: toSet(params.PreferredCompanies),
		TargetLevel:        level,
		Weights:            params.Weights,
	}, nil
}

func normalizeCompanyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			set[value] = true
		}
	}
	return set
}
