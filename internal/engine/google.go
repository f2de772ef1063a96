package engine

import (
	"context"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleEngine translates through the Google Cloud Translation API. The API
// exposes no decode parameters, so it implements Engine directly without the
// echo-retry policy.
type GoogleEngine struct {
	credentials string
}

// NewGoogleEngine creates a Google-backed engine. credentials is an optional
// path to a service account file; empty uses ambient credentials.
func NewGoogleEngine(credentials string) *GoogleEngine {
	return &GoogleEngine{credentials: credentials}
}

func (e *GoogleEngine) Name() string {
	return "google"
}

func (e *GoogleEngine) Translate(ctx context.Context, chunk string, dir Direction) (string, error) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return "", nil
	}

	opts := []option.ClientOption{}
	if e.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(e.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	targetTag, err := language.Parse(dir.Target())
	if err != nil {
		return "", fmt.Errorf("invalid target language: %w", err)
	}
	sourceTag, err := language.Parse(dir.Source())
	if err != nil {
		return "", fmt.Errorf("invalid source language: %w", err)
	}

	translations, err := client.Translate(ctx, []string{chunk}, targetTag, &translate.Options{
		Source: sourceTag,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(translations[0].Text), nil
}

func (e *GoogleEngine) IsAvailable(ctx context.Context) error {
	return nil
}
