// Package server is the HTTP boundary around the translation pipeline. It
// owns request validation (presence, direction, length limit) so the
// pipeline itself only ever sees inputs worth translating.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/xsukax/tarjuman/internal/detector"
	"github.com/xsukax/tarjuman/internal/engine"
	"github.com/xsukax/tarjuman/internal/pipeline"
	"github.com/xsukax/tarjuman/internal/segmenter"
)

// MaxTextLength is the request size limit in characters, enforced before
// the pipeline runs.
const MaxTextLength = 5000

const version = "1.0.0"

// Server serves the translation API over a single engine-backed pipeline.
type Server struct {
	pipe   *pipeline.Pipeline
	eng    engine.Engine
	det    *detector.Detector
	maxLen int
	mux    *http.ServeMux
}

// New builds a Server around pipe. det resolves the "auto" direction and
// may be nil to reject it instead. maxLen is the chunk budget the pipeline
// was configured with, used only for the chunk counts reported to clients;
// values ≤ 0 mean the segmenter default.
func New(pipe *pipeline.Pipeline, eng engine.Engine, det *detector.Detector, maxLen int) *Server {
	if maxLen <= 0 {
		maxLen = segmenter.DefaultMaxLength
	}
	s := &Server{
		pipe:   pipe,
		eng:    eng,
		det:    det,
		maxLen: maxLen,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /", s.handleStatus)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /translate", s.handleTranslate)
	return s
}

// ServeHTTP implements http.Handler with permissive CORS, matching the
// browser-frontend deployment this API serves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "online",
		"name":                 "tarjuman",
		"version":              version,
		"engine":               s.eng.Name(),
		"available_directions": engine.Directions,
		"max_text_length":      MaxTextLength,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	engineOK := s.eng.IsAvailable(r.Context()) == nil
	writeJSON(w, http.StatusOK, map[string]any{
		"healthy":      true,
		"engine":       s.eng.Name(),
		"engine_ready": engineOK,
		"service":      "tarjuman",
		"version":      version,
	})
}

// translateRequest is the POST /translate body.
type translateRequest struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

// translateResponse is the success body, shaped for the browser frontend.
type translateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	Direction      string `json:"direction"`
	Success        bool   `json:"success"`
	Paragraphs     int    `json:"paragraphs_processed"`
	Chunks         int    `json:"chunks_processed"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: %v", err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "no text provided")
		return
	}
	if utf8.RuneCountInString(req.Text) > MaxTextLength {
		writeError(w, http.StatusBadRequest, "text too long: maximum %d characters allowed", MaxTextLength)
		return
	}

	dir, err := s.resolveDirection(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return
	}

	translated, err := s.pipe.TranslateDocument(r.Context(), req.Text, dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "%v", err)
		return
	}
	if translated == "" {
		writeError(w, http.StatusInternalServerError, "translation produced empty result")
		return
	}

	paragraphs, chunks := s.countUnits(req.Text)

	writeJSON(w, http.StatusOK, translateResponse{
		OriginalText:   req.Text,
		TranslatedText: translated,
		Direction:      dir.String(),
		Success:        true,
		Paragraphs:     paragraphs,
		Chunks:         chunks,
	})
}

// countUnits reports how many paragraphs and chunks the input decomposes
// into, for the processing stats in the response.
func (s *Server) countUnits(text string) (paragraphs, chunks int) {
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs++
		if utf8.RuneCountInString(p) <= s.maxLen {
			chunks++
		} else {
			chunks += len(segmenter.Segment(p, s.maxLen))
		}
	}
	if chunks == 0 {
		chunks = 1
	}
	return paragraphs, chunks
}

func (s *Server) resolveDirection(req translateRequest) (engine.Direction, error) {
	tag := strings.ToLower(strings.TrimSpace(req.Direction))
	if tag == "auto" {
		if s.det == nil {
			return "", fmt.Errorf("automatic direction detection is not enabled")
		}
		dir, ok := s.det.DetectDirection(req.Text)
		if !ok {
			return "", fmt.Errorf("could not detect source language; pass an explicit direction")
		}
		return dir, nil
	}
	return engine.ParseDirection(tag)
}
