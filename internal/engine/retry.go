package engine

import (
	"context"
	"strings"
)

// QualityRetry turns a Generator into an Engine with a one-shot quality
// heuristic: when the deterministic pass returns text identical to the input
// (case-insensitively — a common failure for short or ambiguous chunks),
// it retries once in sampling mode and returns that second attempt
// regardless of outcome. Callers only ever see a single result per chunk.
type QualityRetry struct {
	gen Generator
}

// WithQualityRetry wraps gen in the echo-retry policy.
func WithQualityRetry(gen Generator) *QualityRetry {
	return &QualityRetry{gen: gen}
}

func (q *QualityRetry) Name() string {
	return q.gen.Name()
}

func (q *QualityRetry) IsAvailable(ctx context.Context) error {
	return q.gen.IsAvailable(ctx)
}

// Translate implements Engine. Empty chunks are a no-op.
func (q *QualityRetry) Translate(ctx context.Context, chunk string, dir Direction) (string, error) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return "", nil
	}

	out, err := q.gen.Generate(ctx, chunk, dir, DecodeDeterministic)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)

	if !strings.EqualFold(out, chunk) {
		return out, nil
	}

	// Echoed input signals a failed first pass; one exploratory attempt.
	out, err = q.gen.Generate(ctx, chunk, dir, DecodeSampling)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
