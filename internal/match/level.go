package match

import (
	"fmt"
	"strings"
)

// Level is a seniority step on a fixed ordinal scale. Adjacency on this
// scale drives the experience sub-score.
type Level int

const (
	LevelUnknown Level = iota - 1
	LevelIntern
	LevelEntry
	LevelMid
	LevelSenior
	LevelStaff
	LevelLead
)

var levelNames = map[Level]string{
	LevelIntern: "intern",
	LevelEntry:  "entry",
	LevelMid:    "mid",
	LevelSenior: "senior",
	LevelStaff:  "staff",
	LevelLead:   "lead",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLevel maps a configured target level to the ordinal scale.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intern", "internship":
		return LevelIntern, nil
	case "entry", "junior", "graduate":
		return LevelEntry, nil
	case "mid", "middle", "intermediate", "":
		return LevelMid, nil
	case "senior":
		return LevelSenior, nil
	case "staff":
		return LevelStaff, nil
	case "lead", "principal":
		return LevelLead, nil
	default:
		return LevelUnknown, fmt.Errorf("unknown target level %q", s)
	}
}

// levelKeywords are scanned against a job title in order; the first hit
// wins, so "Senior Staff Engineer" resolves to staff before senior.
var levelKeywords = []struct {
	token string
	level Level
}{
	{"internship", LevelIntern},
	{"intern", LevelIntern},
	{"graduate", LevelEntry},
	{"junior", LevelEntry},
	{"entry level", LevelEntry},
	{"entry-level", LevelEntry},
	{"principal", LevelLead},
	{"lead", LevelLead},
	{"head of", LevelLead},
	{"staff", LevelStaff},
	{"senior", LevelSenior},
	{"sr.", LevelSenior},
	{"sr ", LevelSenior},
	{"mid-level", LevelMid},
	{"mid level", LevelMid},
}

// DetectLevel infers the seniority of a job from its title. Titles without a
// seniority keyword return LevelUnknown rather than a guess.
func DetectLevel(title string) Level {
	lower := strings.ToLower(title)
	for _, kw := range levelKeywords {
		if strings.Contains(lower, kw.token) {
			return kw.level
		}
	}
	return LevelUnknown
}
