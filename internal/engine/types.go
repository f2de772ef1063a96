// Package engine defines the translation engine contract consumed by the
// pipeline and the backends that implement it. An engine translates one
// chunk at a time in a fixed direction; everything about how the text is
// produced (local seq2seq sidecar, Ollama, Google Cloud) is hidden behind
// the Engine interface.
package engine

import (
	"context"
	"fmt"
)

// Direction selects the language pairing an engine translates in.
type Direction string

const (
	EnglishToArabic Direction = "en-ar"
	ArabicToEnglish Direction = "ar-en"
)

// Directions lists the supported values in a stable order.
var Directions = []Direction{EnglishToArabic, ArabicToEnglish}

// ParseDirection validates a direction tag from the boundary (HTTP body or
// CLI flag). Matching is exact; callers lowercase first.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case EnglishToArabic, ArabicToEnglish:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q: use %q or %q", s, EnglishToArabic, ArabicToEnglish)
}

// Source returns the ISO 639-1 code of the direction's source language.
func (d Direction) Source() string {
	if d == ArabicToEnglish {
		return "ar"
	}
	return "en"
}

// Target returns the ISO 639-1 code of the direction's target language.
func (d Direction) Target() string {
	if d == ArabicToEnglish {
		return "en"
	}
	return "ar"
}

// Opposite returns the reverse pairing.
func (d Direction) Opposite() Direction {
	if d == ArabicToEnglish {
		return EnglishToArabic
	}
	return ArabicToEnglish
}

func (d Direction) String() string { return string(d) }

// Engine is the translation capability the pipeline depends on. One call per
// chunk; an empty or whitespace-only chunk returns ("", nil) without work.
// Implementations must be safe for concurrent use across requests.
type Engine interface {
	Name() string
	Translate(ctx context.Context, chunk string, dir Direction) (string, error)
	IsAvailable(ctx context.Context) error
}

// DecodeMode selects a generation strategy for backends that expose one.
type DecodeMode int

const (
	// DecodeDeterministic is the first-pass mode: beam search, no sampling.
	DecodeDeterministic DecodeMode = iota
	// DecodeSampling is the fallback mode used when the deterministic pass
	// echoes its input: fewer beams, temperature-based sampling.
	DecodeSampling
)

// Generator is implemented by backends that support both decode modes.
// Wrap one in QualityRetry to obtain an Engine with the echo-retry policy.
type Generator interface {
	Name() string
	Generate(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error)
	IsAvailable(ctx context.Context) error
}
