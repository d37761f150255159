package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// absoluteLayouts covers the date formats observed across collector outputs.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
}

var relativePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(minute|hour|day|week|month)s?\s+ago`)

// parsePostedDate interprets a posted-date string, absolute or relative
// ("3 days ago", "today"). Unparseable text yields nil; the posting date is
// never guessed.
func (n *Normalizer) parsePostedDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, layout := range absoluteLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return &ts
		}
	}

	now := n.now().UTC()

	switch strings.ToLower(text) {
	case "today", "just posted", "just now":
		return &now
	case "yesterday":
		ts := now.AddDate(0, 0, -1)
		return &ts
	}

	if m := relativePattern.FindStringSubmatch(text); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}

		var ts time.Time
		switch strings.ToLower(m[2]) {
		case "minute":
			ts = now.Add(-time.Duration(amount) * time.Minute)
		case "hour":
			ts = now.Add(-time.Duration(amount) * time.Hour)
		case "day":
			ts = now.AddDate(0, 0, -amount)
		case "week":
			ts = now.AddDate(0, 0, -7*amount)
		case "month":
			ts = now.AddDate(0, -amount, 0)
		}
		return &ts
	}

	return nil
}
