package normalize

import (
	"sort"
	"strings"
)

// ExtractSkills scans text for vocabulary tokens with word-boundary matching.
// Tokens outside the vocabulary are never invented. The result is lower-cased,
// deduplicated and sorted.
func ExtractSkills(text string, vocab []string) []string {
	if text == "" || len(vocab) == 0 {
		return nil
	}

	lower := strings.ToLower(text)

	found := make(map[string]bool)
	for _, token := range vocab {
		if containsToken(lower, token) {
			found[token] = true
		}
	}

	if len(found) == 0 {
		return nil
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

// containsToken reports whether token occurs in text delimited by
// non-identifier characters. A manual scan instead of \b regexes keeps
// tokens like "c++" and "c#" matchable, since their trailing rune is not a
// word character.
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}

	for start := 0; ; {
		idx := strings.Index(text[start:], token)
		if idx < 0 {
			return false
		}
		idx += start

		if boundaryBefore(text, idx) && boundaryAfter(text, idx+len(token)) {
			return true
		}
		start = idx + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	return !isIdentRune(rune(text[idx-1]))
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	return !isIdentRune(rune(text[idx]))
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '+', r == '#':
		// Keeps "c" from matching inside "c++" and "c#".
		return true
	default:
		return false
	}
}
