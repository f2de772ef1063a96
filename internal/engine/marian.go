package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MarianEngine talks to a local inference sidecar serving the two Marian
// seq2seq models (opus-mt en-ar and ar-en). The sidecar owns model and
// tokenizer lifecycle; this client only ships text and decode parameters.
//
// MarianEngine implements Generator: wrap it in WithQualityRetry to get the
// full Engine contract.
type MarianEngine struct {
	baseURL string
	client  *http.Client
}

// NewMarianEngine creates a client for the inference sidecar at baseURL
// (default http://localhost:5001).
func NewMarianEngine(baseURL string) *MarianEngine {
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}
	return &MarianEngine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *MarianEngine) Name() string {
	return "marian"
}

// generateRequest is the sidecar wire format. Decode parameters mirror the
// model defaults that keep Marian output stable on mixed-script text.
type generateRequest struct {
	Text              string  `json:"text"`
	Direction         string  `json:"direction"`
	MaxLength         int     `json:"max_length"`
	NumBeams          int     `json:"num_beams"`
	DoSample          bool    `json:"do_sample"`
	Temperature       float64 `json:"temperature,omitempty"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size,omitempty"`
	LengthPenalty     float64 `json:"length_penalty,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

type generateResponse struct {
	Translation string `json:"translation"`
	Error       string `json:"error,omitempty"`
}

// Generate translates text through the sidecar in the given decode mode.
func (e *MarianEngine) Generate(ctx context.Context, text string, dir Direction, mode DecodeMode) (string, error) {
	req := generateRequest{
		Text:      text,
		Direction: dir.String(),
		MaxLength: 512,
	}
	switch mode {
	case DecodeSampling:
		req.NumBeams = 3
		req.DoSample = true
		req.Temperature = 0.7
	default:
		req.NumBeams = 5
		req.NoRepeatNgramSize = 3
		req.LengthPenalty = 1.2
		req.RepetitionPenalty = 1.1
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/generate", bytes.NewBuffer(jsonData))
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
		return "", fmt.Errorf("sidecar returned status %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if genResp.Error != "" {
		return "", fmt.Errorf("generation failed: %s", genResp.Error)
	}

	return genResp.Translation, nil
}

// IsAvailable checks the sidecar health endpoint.
func (e *MarianEngine) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", e.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("sidecar not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sidecar returned status %d", resp.StatusCode)
	}
	return nil
}
