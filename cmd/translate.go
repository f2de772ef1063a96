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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xsukax/tarjuman/internal"
	"github.com/xsukax/tarjuman/internal/detector"
	"github.com/xsukax/tarjuman/internal/engine"
	"github.com/xsukax/tarjuman/internal/markdown"
	"github.com/xsukax/tarjuman/internal/pipeline"
	"github.com/xsukax/tarjuman/internal/placeholder"
	"github.com/xsukax/tarjuman/internal/store"
)

var (
	inputFile    string
	outputFile   string
	directionTag string

	engineName  string
	marianURL   string
	ollamaURL   string
	ollamaModel string
	credentials string

	fromMarkdown bool
	keepMarkup   bool
	maxLength    int
	workers      int

	dbPath  string
	noCache bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a file between English and Arabic",
	Long: `Translate a document from a file, preserving its paragraph layout.

The direction defaults to auto: English input is translated to Arabic and
Arabic input to English. Pass --direction en-ar or ar-en to force one.

Finished translations land in the SQLite translation memory; running the
same document in the same direction again is served from there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		raw, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text := string(raw)

		if fromMarkdown {
			text = markdown.ToPlainText(raw)
		}

		var captured []string
		if keepMarkup {
			text, captured = placeholder.Protect(text)
		}

		ctx := context.Background()

		dir, err := resolveDirection(directionTag, text)
		if err != nil {
			return err
		}

		var db *store.Store
		if !noCache && dbPath != "" {
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if cached, found, cacheErr := db.GetCached(ctx, text, dir.String()); cacheErr == nil && found {
				fmt.Fprintf(os.Stderr, "Using cached translation\n")
				return writeOutput(cached, captured)
			}
		}

		eng, err := buildEngine(engineOptions{
			backend:     engineName,
			marianURL:   marianURL,
			ollamaURL:   ollamaURL,
			ollamaModel: ollamaModel,
			credentials: credentials,
		})
		if err != nil {
			return err
		}

		pipe := pipeline.New(eng,
			pipeline.WithMaxLength(maxLength),
			pipeline.WithWorkers(workers),
			pipeline.WithProgress(stderrProgress),
		)

		translated, err := pipe.TranslateDocument(ctx, text, dir)
		if err != nil {
			return fmt.Errorf("translation failed: %w", err)
		}

		if db != nil {
			req := internal.TranslationRequest{
				ID:         uuid.New().String(),
				SourceText: text,
				Direction:  dir.String(),
				Timestamp:  time.Now(),
			}
			_ = db.SaveRequest(ctx, req)
			_ = db.SaveToMemory(ctx, text, dir.String(), translated, eng.Name())
		}

		if err := writeOutput(translated, captured); err != nil {
			return err
		}

		fmt.Printf("Successfully translated %s (%s)\n", inputFile, dir)
		return nil
	},
}

// resolveDirection turns the --direction flag into a Direction, running the
// language detector for "auto".
func resolveDirection(tag, text string) (engine.Direction, error) {
	if tag != "auto" {
		return engine.ParseDirection(tag)
	}
	det := detector.New()
	dir, ok := det.DetectDirection(text)
	if !ok {
		return "", fmt.Errorf("could not detect source language; pass --direction en-ar or ar-en")
	}
	fmt.Fprintf(os.Stderr, "Detected direction: %s\n", dir)
	return dir, nil
}

func writeOutput(translated string, captured []string) error {
	if len(captured) > 0 {
		translated = placeholder.Restore(translated, captured)
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(translated), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for translation (required)")
	translateCmd.Flags().StringVarP(&directionTag, "direction", "d", "auto", "Translation direction: en-ar, ar-en, or auto")

	translateCmd.Flags().StringVar(&engineName, "engine", "marian", "Translation backend: marian, ollama, or google")
	translateCmd.Flags().StringVar(&marianURL, "marian-url", "http://localhost:5001", "Marian inference sidecar URL")
	translateCmd.Flags().StringVar(&ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
	translateCmd.Flags().StringVar(&ollamaModel, "ollama-model", "llama3.2", "Ollama model name")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials")

	translateCmd.Flags().BoolVar(&fromMarkdown, "markdown", false, "Treat input as markdown and translate its plain text")
	translateCmd.Flags().BoolVar(&keepMarkup, "keep-markup", false, "Protect HTML tags and code spans through translation")
	translateCmd.Flags().IntVar(&maxLength, "max-length", 300, "Chunk budget in characters")
	translateCmd.Flags().IntVar(&workers, "workers", 1, "Concurrent engine calls per paragraph (1 = sequential)")

	translateCmd.Flags().StringVar(&dbPath, "db", "./data/tarjuman.db", "Database path for translation memory")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory cache")

	translateCmd.MarkFlagRequired("input")
	translateCmd.MarkFlagRequired("output")
}
