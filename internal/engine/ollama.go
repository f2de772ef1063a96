package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xsukax/tarjuman/internal/postprocess"
)

// languageNames spells out the prompt wording per direction source/target.
var languageNames = map[string]string{
	"en": "English",
	"ar": "Arabic",
}

// OllamaEngine translates through a self-hosted Ollama LLM. It implements
// Generator: temperature 0 serves as the deterministic pass and 0.7 as the
// sampling fallback, so the same echo-retry policy applies as for the
// sidecar backend.
type OllamaEngine struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEngine creates an Ollama-backed engine. Defaults: local daemon,
// llama3.2.
func NewOllamaEngine(baseURL, model string) *OllamaEngine {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaEngine{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *OllamaEngine) Name() string {
	return "ollama"
}

func (e *OllamaEngine) Generate(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
	prompt := fmt.Sprintf(`Translate the following text from %s to %s.
Only respond with the translation, nothing else.

Text: "%s"

Translation:`, languageNames[dir.Source()], languageNames[dir.Target()], text)

	temperature := 0.0
	if mode == DecodeSampling {
		temperature = 0.7
	}

	ollamaReq := map[string]interface{}{
		"model":  e.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": temperature,
		},
	}

	jsonData, err := json.Marshal(ollamaReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/api/generate", e.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return postprocess.Clean(ollamaResp.Response), nil
}

func (e *OllamaEngine) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/api/tags", e.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("Ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}
	return nil
}
