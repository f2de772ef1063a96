/*
Copyright © 2025 xsukax

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/xsukax/tarjuman/internal/engine"
	"github.com/xsukax/tarjuman/internal/pipeline"
)

// engineOptions carries the backend parameters shared by serve and
// translate.
type engineOptions struct {
	backend     string
	marianURL   string
	ollamaURL   string
	ollamaModel string
	credentials string
}

// buildEngine constructs the selected backend. The Marian and Ollama
// backends are wrapped in the echo-retry policy; Google exposes no decode
// modes and is used as-is.
func buildEngine(opts engineOptions) (engine.Engine, error) {
	switch opts.backend {
	case "marian":
		return engine.WithQualityRetry(engine.NewMarianEngine(opts.marianURL)), nil
	case "ollama":
		return engine.WithQualityRetry(engine.NewOllamaEngine(opts.ollamaURL, opts.ollamaModel)), nil
	case "google":
		return engine.NewGoogleEngine(opts.credentials), nil
	}
	return nil, fmt.Errorf("unknown engine %q: use marian, ollama, or google", opts.backend)
}

// stderrProgress prints pipeline progress the way a long job should be
// watched: one line per dispatch.
func stderrProgress(ev pipeline.Progress) {
	if ev.Chunks > 0 {
		fmt.Fprintf(os.Stderr, "Translating chunk %d/%d of paragraph %d/%d\n",
			ev.Chunk, ev.Chunks, ev.Paragraph, ev.Paragraphs)
		return
	}
	fmt.Fprintf(os.Stderr, "Processing paragraph %d/%d\n", ev.Paragraph, ev.Paragraphs)
}
