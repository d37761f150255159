package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// StripHTML reduces a description to plain text. Descriptions arriving as
// HTML fragments are parsed properly instead of regex-scrubbed; plain text
// passes through untouched.
func StripHTML(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}

	// Block-level boundaries become spaces so "<p>a</p><p>b</p>" does not
	// collapse into "ab".
	doc.Find("br, p, li, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return doc.Text()
}

// CollapseWhitespace trims the text and folds runs of whitespace into single
// spaces.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
