// Package names cleans free-text participant names and turns a block of
// pasted or recognized text into a list of candidate names.
package names

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLineLength is the longest line ParseBatch will treat as a name.
// Longer lines are almost always OCR noise or sentences.
const MaxLineLength = 50

// listPrefix matches leading list numbering such as "1. ", "12 - " or "3) ".
var listPrefix = regexp.MustCompile(`^\s*(?:\d+[.\-)\s]+)+`)

var hasLetter = regexp.MustCompile(`[A-Za-z]`)

// Clean strips leading list numbering and surrounding whitespace.
//
//	Clean("12 - Jane Doe") == "Jane Doe"
//	Clean("Bob") == "Bob"
func Clean(raw string) string {
	return strings.TrimSpace(listPrefix.ReplaceAllString(raw, ""))
}

// SortKey is the key names are ordered by on screen: cleaned, case-folded.
func SortKey(name string) string {
	return strings.ToLower(Clean(name))
}

// ParseBatch extracts candidate names from text with one name per line.
// Lines that look like URLs, email addresses or sentences are dropped, the
// rest are cleaned and deduplicated in first-seen order.
func ParseBatch(text string) []string {
	var out []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !plausibleName(line) {
			continue
		}
		name := Clean(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func plausibleName(line string) bool {
	if line == "" || utf8.RuneCountInString(line) > MaxLineLength {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "http") || strings.Contains(lower, "www") || strings.Contains(lower, "@") {
		return false
	}
	return hasLetter.MatchString(line)
}
