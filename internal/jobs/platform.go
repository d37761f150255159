package jobs

import "strings"

// Platform identifies the job board a record originated from.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformIndeed    Platform = "indeed"
	PlatformReed      Platform = "reed"
	PlatformGlassdoor Platform = "glassdoor"
	PlatformOther     Platform = "other"
)

// ParsePlatform maps a free-form platform tag to a known Platform.
// Unknown tags collapse to PlatformOther instead of failing: a record from an
// unrecognized board is still a record.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linkedin":
		return PlatformLinkedIn
	case "indeed":
		return PlatformIndeed
	case "reed":
		return PlatformReed
	case "glassdoor":
		return PlatformGlassdoor
	default:
		return PlatformOther
	}
}
