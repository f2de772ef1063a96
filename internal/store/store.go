// Package store persists translation memory in SQLite. Documents already
// translated in a given direction are served from memory instead of hitting
// the engine again; every request is also recorded for auditing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/xsukax/tarjuman/internal"
)

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies the
// schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_requests (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		direction TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		direction TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		engine_used TEXT,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, direction)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normKey canonicalizes memory lookup keys. Arabic text arrives in mixed
// Unicode compositions depending on the input method; NFC keeps equivalent
// strings from producing duplicate rows.
func normKey(text string) string {
	return norm.NFC.String(text)
}

// SaveRequest records an incoming translation request.
func (s *Store) SaveRequest(ctx context.Context, req internal.TranslationRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_requests (id, source_text, direction, created_at) VALUES (?, ?, ?, ?)`,
		req.ID, normKey(req.SourceText), req.Direction, req.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// GetCached returns the memorized translation for (text, direction) and
// bumps its usage counters. found is false on a miss.
func (s *Store) GetCached(ctx context.Context, text, direction string) (string, bool, error) {
	var id, translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, translated_text FROM translation_memory WHERE source_text = ? AND direction = ?`,
		normKey(text), direction).Scan(&id, &translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query memory: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = ? WHERE id = ?`,
		time.Now(), id)
	if err != nil {
		return "", false, fmt.Errorf("failed to update usage: %w", err)
	}

	return translated, true, nil
}

// SaveToMemory stores (or replaces) a finished translation.
func (s *Store) SaveToMemory(ctx context.Context, text, direction, translated, engineUsed string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translation_memory (id, source_text, direction, translated_text, engine_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_text, direction) DO UPDATE SET
			translated_text = excluded.translated_text,
			engine_used = excluded.engine_used,
			last_used = CURRENT_TIMESTAMP`,
		uuid.New().String(), normKey(text), direction, translated, engineUsed)
	if err != nil {
		return fmt.Errorf("failed to save to memory: %w", err)
	}
	return nil
}

// MemoryEntry is one translation memory row for listing.
type MemoryEntry struct {
	ID             string
	SourceText     string
	Direction      string
	TranslatedText string
	EngineUsed     string
	UsageCount     int
	LastUsed       time.Time
}

// ListMemory returns all memory entries, most recently used first.
func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_text, direction, translated_text,
		       COALESCE(engine_used, ''), usage_count, last_used
		FROM translation_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory: %w", err)
	}
	defer rows.Close()

	var entries []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.Direction, &e.TranslatedText,
			&e.EngineUsed, &e.UsageCount, &e.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearMemory removes all translation memory entries and reports how many
// were deleted.
func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear memory: %w", err)
	}
	return res.RowsAffected()
}
