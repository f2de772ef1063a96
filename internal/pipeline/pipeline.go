// Package pipeline coordinates normalization, segmentation, and per-chunk
// dispatch to a translation engine over a whole document. It guarantees
// structure preservation: paragraph count, order, and blank-line placement
// in the output mirror the input exactly.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/xsukax/tarjuman/internal/engine"
	"github.com/xsukax/tarjuman/internal/normalizer"
	"github.com/xsukax/tarjuman/internal/segmenter"
)

// ChunkError locates an engine failure within the document. Paragraph and
// Chunk are 1-based; Chunk is zero when the paragraph was dispatched whole,
// and both are zero for a fast-path failure.
type ChunkError struct {
	Paragraph int
	Chunk     int
	Err       error
}

func (e *ChunkError) Error() string {
	switch {
	case e.Chunk > 0:
		return fmt.Sprintf("failed to translate chunk %d of paragraph %d: %v", e.Chunk, e.Paragraph, e.Err)
	case e.Paragraph > 0:
		return fmt.Sprintf("failed to translate paragraph %d: %v", e.Paragraph, e.Err)
	}
	return fmt.Sprintf("translation failed: %v", e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Progress describes one dispatch step. Chunk fields are zero when a
// paragraph is translated as a single piece.
type Progress struct {
	Paragraph  int
	Paragraphs int
	Chunk      int
	Chunks     int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxLength overrides the chunk budget (runes). Values ≤ 0 keep the
// segmenter default.
func WithMaxLength(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxLen = n
		}
	}
}

// WithWorkers enables concurrent chunk dispatch within a paragraph, at most
// n engine calls in flight. Results are collected by original position, so
// output ordering is unaffected. Values ≤ 1 keep sequential dispatch.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 1 {
			p.workers = n
		}
	}
}

// WithProgress installs a diagnostic callback. It is invoked synchronously
// before each dispatch and must not block; it never affects control flow.
func WithProgress(fn func(Progress)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// Pipeline translates documents through a single injected Engine. The zero
// budget is segmenter.DefaultMaxLength. A Pipeline is stateless between
// calls and safe for concurrent use as long as its Engine is.
type Pipeline struct {
	engine   engine.Engine
	maxLen   int
	workers  int
	progress func(Progress)
}

// New creates a Pipeline around eng.
func New(eng engine.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine: eng,
		maxLen: segmenter.DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) emit(ev Progress) {
	if p.progress != nil {
		p.progress(ev)
	}
}

// TranslateDocument translates text in the given direction, preserving the
// document's paragraph layout. It returns either the fully reassembled
// translation or a single error — never a partial result. Whitespace-only
// input short-circuits to ("", nil) without touching the engine.
func (p *Pipeline) TranslateDocument(ctx context.Context, text string, dir engine.Direction) (string, error) {
	cleaned := normalizer.Normalize(text)
	if strings.TrimSpace(cleaned) == "" {
		return "", nil
	}

	// Fast path: the whole document fits the budget.
	if utf8.RuneCountInString(cleaned) <= p.maxLen {
		return p.engine.Translate(ctx, cleaned, dir)
	}

	paragraphs := strings.Split(cleaned, "\n\n")
	translated := make([]string, len(paragraphs))

	for i, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			// Positional placeholder; becomes a blank line on reassembly.
			translated[i] = ""
			continue
		}

		p.emit(Progress{Paragraph: i + 1, Paragraphs: len(paragraphs)})

		if utf8.RuneCountInString(paragraph) <= p.maxLen {
			out, err := p.engine.Translate(ctx, paragraph, dir)
			if err != nil {
				return "", &ChunkError{Paragraph: i + 1, Err: err}
			}
			translated[i] = out
			continue
		}

		chunks := segmenter.Segment(paragraph, p.maxLen)
		parts, err := p.translateChunks(ctx, chunks, dir, i+1, len(paragraphs))
		if err != nil {
			return "", err
		}

		// Chunks are sentence fragments of one paragraph; stitch them back
		// inline in source order.
		var nonEmpty []string
		for _, part := range parts {
			if strings.TrimSpace(part) != "" {
				nonEmpty = append(nonEmpty, part)
			}
		}
		translated[i] = strings.Join(nonEmpty, " ")
	}

	return strings.TrimSpace(strings.Join(translated, "\n\n")), nil
}

// translateChunks dispatches a paragraph's chunks and returns results in
// chunk order. Any failure aborts the document.
func (p *Pipeline) translateChunks(ctx context.Context, chunks []string, dir engine.Direction, para, paraTotal int) ([]string, error) {
	results := make([]string, len(chunks))

	if p.workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)
		for j, chunk := range chunks {
			g.Go(func() error {
				out, err := p.engine.Translate(gctx, chunk, dir)
				if err != nil {
					return &ChunkError{Paragraph: para, Chunk: j + 1, Err: err}
				}
				results[j] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}

	for j, chunk := range chunks {
		p.emit(Progress{Paragraph: para, Paragraphs: paraTotal, Chunk: j + 1, Chunks: len(chunks)})
		out, err := p.engine.Translate(ctx, chunk, dir)
		if err != nil {
			return nil, &ChunkError{Paragraph: para, Chunk: j + 1, Err: err}
		}
		results[j] = out
	}
	return results, nil
}
