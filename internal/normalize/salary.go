package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sednabcn/job-search-automation/internal/jobs"
)

// hoursPerYear converts an hourly rate to an annual figure (40h * 52 weeks).
const hoursPerYear = 2080

var (
	rangePattern  = regexp.MustCompile(`([£$€]?)\s*(\d[\d,]*(?:\.\d+)?)\s*([kK])?\s*(?:-|–|—|\bto\b)\s*[£$€]?\s*(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)
	singlePattern = regexp.MustCompile(`([£$€])\s*(\d[\d,]*(?:\.\d+)?)\s*([kK])?|(\d[\d,]*(?:\.\d+)?)\s*([kK])\b`)
	hourlyPattern = regexp.MustCompile(`(?i)(?:per\s+hour|/\s*(?:hr|hour)|an\s+hour|hourly|p/h|ph\b)`)
)

var currencyBySymbol = map[string]string{
	"£": "GBP",
	"$": "USD",
	"€": "EUR",
}

// ParseSalary extracts an annualized salary range from free-form text.
// Strategy is layered: explicit range, then single figure, then hourly rate
// converted to annual. Unparseable text yields nil — a salary is never
// guessed.
func ParseSalary(text string) *jobs.Salary {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	hourly := hourlyPattern.MatchString(text)

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		min := parseFigure(m[2], m[3] != "", hourly)
		max := parseFigure(m[4], m[5] != "", hourly)
		if min > 0 && max >= min {
			return &jobs.Salary{Min: min, Max: max, Currency: currencyBySymbol[m[1]]}
		}
	}

	if m := singlePattern.FindStringSubmatch(text); m != nil {
		symbol, figure, kSuffix := m[1], m[2], m[3] != ""
		if figure == "" {
			figure, kSuffix = m[4], m[5] != ""
		}
		value := parseFigure(figure, kSuffix, hourly)
		if value > 0 {
			return &jobs.Salary{Min: value, Max: value, Currency: currencyBySymbol[symbol]}
		}
	}

	return nil
}

func parseFigure(text string, kSuffix, hourly bool) int {
	text = strings.ReplaceAll(text, ",", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value <= 0 {
		return 0
	}

	if kSuffix {
		value *= 1000
	}

	// Only a figure small enough to plausibly be a rate is annualized; a
	// full annual amount next to the word "hour" stays as-is.
	if hourly && value < 1000 {
		value *= hoursPerYear
	}

	return int(value + 0.5)
}
