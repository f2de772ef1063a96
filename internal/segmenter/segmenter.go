// Package segmenter splits an over-budget paragraph into sentence-aligned
// chunks that fit a rune budget. It understands both Latin sentence enders
// (. ! ?) and the Arabic/Urdu/Devanagari ones (؟ ۔ ।), since a document may
// mix the two scripts.
package segmenter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the chunk budget in runes. Seq2seq models degrade on
// long inputs, so paragraphs above this are split at sentence boundaries.
const DefaultMaxLength = 300

// terminatorRe matches one or more sentence enders followed by whitespace.
// A single pattern covers both terminator alphabets.
var terminatorRe = regexp.MustCompile(`[.!?؟۔।]+\s+`)

// latinRe reports whether a sentence contains at least one Latin letter,
// used to pick which terminator to restore after splitting.
var latinRe = regexp.MustCompile(`[a-zA-Z]`)

// Segment splits paragraph into ordered chunks of at most maxLen runes each.
// It is meant for paragraphs that exceed the budget; shorter text comes back
// as a single chunk.
//
// Sentences are packed greedily: the running buffer is flushed when adding
// the next sentence would push it over maxLen. A single sentence longer than
// the budget becomes its own oversized chunk — splitting mid-word would
// destroy the translation unit. Chunks preserve sentence order and are never
// empty.
func Segment(paragraph string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return nil
	}

	sentences := terminatorRe.Split(paragraph, -1)

	var chunks []string
	var current string

	for i, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		// The split consumed the terminator; restore a plausible one on
		// every sentence but the last. Script decides which: a period for
		// Latin text, an Arabic comma otherwise.
		if i < len(sentences)-1 {
			if latinRe.MatchString(sentence) {
				sentence += ". "
			} else {
				sentence += "، "
			}
		}

		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence) > maxLen && current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
			current = sentence
		} else {
			current += sentence
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}
