// Package placeholder protects markup (HTML tags, fenced code blocks,
// inline code spans) from the translation engine by swapping it for
// numbered markers ([PH0], [PH1], …) before dispatch. Marian models mangle
// angle brackets and backticks badly; markers pass through unchanged and
// Restore puts the originals back after reassembly.
package placeholder

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// fenced code blocks: ```…``` (non-greedy, may span lines)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")

	// inline code spans: `…`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	// marker reference in translated text
	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces markup with numbered markers in order of appearance and
// returns the modified text plus the captured originals for Restore.
func Protect(text string) (string, []string) {
	var captured []string

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", len(captured))
		captured = append(captured, match)
		return id
	}

	// Fenced blocks first so their backticks are not re-matched as inline
	// spans, then inline code, then tags.
	text = reFencedCode.ReplaceAllStringFunc(text, replace)
	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)

	return text, captured
}

// Restore substitutes [PHn] markers back with the originals captured by
// Protect. Markers the engine dropped are simply absent from the output;
// indices outside the captured range are left as-is.
func Restore(text string, captured []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx := 0
		if _, err := fmt.Sscanf(sub[1], "%d", &idx); err != nil {
			return match
		}
		if idx < 0 || idx >= len(captured) {
			return match
		}
		return captured[idx]
	})
}

// Strip removes any leftover markers, for callers that discard the captured
// originals (plain-text output of markdown input).
func Strip(text string) string {
	return strings.TrimSpace(reMarker.ReplaceAllString(text, ""))
}
