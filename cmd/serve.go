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
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xsukax/tarjuman/internal/detector"
	"github.com/xsukax/tarjuman/internal/pipeline"
	"github.com/xsukax/tarjuman/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP API",
	Long: `Start the HTTP API serving POST /translate plus status and health
endpoints. Requests are validated at the boundary (non-empty text, known
direction, 5000-character limit) before they reach the pipeline.

All flags can also be set via TARJUMAN_* environment variables or the
config file, e.g. TARJUMAN_ENGINE=ollama.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := buildEngine(engineOptions{
			backend:     viper.GetString("engine"),
			marianURL:   viper.GetString("marian-url"),
			ollamaURL:   viper.GetString("ollama-url"),
			ollamaModel: viper.GetString("ollama-model"),
			credentials: viper.GetString("credentials"),
		})
		if err != nil {
			return err
		}

		maxLen := viper.GetInt("max-length")
		pipe := pipeline.New(eng,
			pipeline.WithMaxLength(maxLen),
			pipeline.WithWorkers(viper.GetInt("workers")),
			pipeline.WithProgress(stderrProgress),
		)

		fmt.Fprintf(os.Stderr, "Loading language detector...\n")
		det := detector.New()

		srv := &http.Server{
			Addr:              viper.GetString("listen"),
			Handler:           server.New(pipe, eng, det, maxLen),
			ReadHeaderTimeout: 10 * time.Second,
		}

		fmt.Fprintf(os.Stderr, "Serving on %s (engine: %s)\n", srv.Addr, eng.Name())
		return srv.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "localhost:5000", "Listen address")
	serveCmd.Flags().String("engine", "marian", "Translation backend: marian, ollama, or google")
	serveCmd.Flags().String("marian-url", "http://localhost:5001", "Marian inference sidecar URL")
	serveCmd.Flags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	serveCmd.Flags().String("ollama-model", "llama3.2", "Ollama model name")
	serveCmd.Flags().String("credentials", "", "Path to Google Cloud credentials")
	serveCmd.Flags().Int("max-length", 300, "Chunk budget in characters")
	serveCmd.Flags().Int("workers", 1, "Concurrent engine calls per paragraph (1 = sequential)")

	_ = viper.BindPFlags(serveCmd.Flags())
}
