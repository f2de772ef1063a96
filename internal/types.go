package internal

import "time"

// TranslationRequest is the audit record persisted for every document that
// reaches the pipeline through the CLI.
type TranslationRequest struct {
	ID         string    `json:"id"`
	SourceText string    `json:"source_text"`
	Direction  string    `json:"direction"`
	Timestamp  time.Time `json:"timestamp"`
}
