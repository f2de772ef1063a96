package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xsukax/tarjuman/internal/engine"
	"github.com/xsukax/tarjuman/internal/pipeline"
)

type stubEngine struct {
	translateFunc func(ctx context.Context, chunk string, dir engine.Direction) (string, error)
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Translate(ctx context.Context, chunk string, dir engine.Direction) (string, error) {
	if s.translateFunc != nil {
		return s.translateFunc(ctx, chunk, dir)
	}
	return "ترجمة", nil
}

func (s *stubEngine) IsAvailable(ctx context.Context) error { return nil }

func newTestServer(eng engine.Engine) *Server {
	pipe := pipeline.New(eng)
	return New(pipe, eng, nil, 0)
}

func postTranslate(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/translate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestTranslate_Success(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	rec := postTranslate(t, srv, `{"text":"Hello world.","direction":"en-ar"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp translateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.TranslatedText != "ترجمة" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Direction != "en-ar" {
		t.Errorf("direction %q, want en-ar", resp.Direction)
	}
	if resp.Paragraphs != 1 || resp.Chunks != 1 {
		t.Errorf("expected 1 paragraph / 1 chunk, got %d/%d", resp.Paragraphs, resp.Chunks)
	}
}

func TestTranslate_UppercaseDirectionAccepted(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	rec := postTranslate(t, srv, `{"text":"Hello.","direction":"EN-AR"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status %d, want 200 (direction is lowercased at the boundary)", rec.Code)
	}
}

func TestTranslate_MissingText(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	for _, body := range []string{`{}`, `{"text":"   ","direction":"en-ar"}`} {
		rec := postTranslate(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status %d, want 400", body, rec.Code)
		}
	}
}

func TestTranslate_InvalidDirection(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	rec := postTranslate(t, srv, `{"text":"Hello.","direction":"en-fr"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestTranslate_AutoWithoutDetector(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	rec := postTranslate(t, srv, `{"text":"Hello.","direction":"auto"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400 when detection is disabled", rec.Code)
	}
}

func TestTranslate_TextTooLong(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	long := strings.Repeat("a", MaxTextLength+1)
	rec := postTranslate(t, srv, `{"text":"`+long+`","direction":"en-ar"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestTranslate_EngineFailure(t *testing.T) {
	srv := newTestServer(&stubEngine{
		translateFunc: func(ctx context.Context, chunk string, dir engine.Direction) (string, error) {
			return "", errors.New("model unavailable")
		},
	})

	rec := postTranslate(t, srv, `{"text":"Hello world.","direction":"en-ar"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "model unavailable") {
		t.Errorf("error body should carry the engine reason: %s", rec.Body.String())
	}
}

func TestTranslate_ChunkCounts(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	// Two paragraphs, the second long enough to split into two chunks.
	long := strings.Repeat("a", 200) + ". " + strings.Repeat("b", 200) + "."
	body, _ := json.Marshal(translateRequest{
		Text:      "Short paragraph.\n\n" + long,
		Direction: "en-ar",
	})

	rec := postTranslate(t, srv, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp translateResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Paragraphs != 2 {
		t.Errorf("paragraphs_processed = %d, want 2", resp.Paragraphs)
	}
	if resp.Chunks != 3 {
		t.Errorf("chunks_processed = %d, want 3", resp.Chunks)
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body["name"] != "tarjuman" || body["status"] != "online" {
		t.Errorf("unexpected status body: %v", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status %d, want 200", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&stubEngine{})

	req := httptest.NewRequest("OPTIONS", "/translate", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
