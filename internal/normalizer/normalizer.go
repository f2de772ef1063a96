// Package normalizer cleans raw input text before it enters the translation
// pipeline. It collapses whitespace within lines while keeping the line and
// blank-line structure intact, so paragraph boundaries survive for the
// segmenter downstream.
package normalizer

import "strings"

// Normalize collapses runs of whitespace inside every non-blank line into
// single spaces and trims the line edges. Blank lines become empty strings
// rather than being dropped; the blank-line positions mark paragraph
// boundaries during reassembly. Lines are rejoined with single newlines.
//
// Normalize is total and idempotent: it never fails, and applying it twice
// yields the same result as applying it once.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, len(lines))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			cleaned[i] = ""
			continue
		}
		cleaned[i] = strings.Join(strings.Fields(line), " ")
	}

	return strings.Join(cleaned, "\n")
}
