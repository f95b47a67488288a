// Package server exposes the study backend over HTTP: scoring,
// generation, ratings, CSV export, and operational endpoints. Handlers
// are thin request/response glue over the application services.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quartetlab/quartet/internal/application"
	"github.com/quartetlab/quartet/internal/domain"
	"github.com/quartetlab/quartet/internal/ports"
)

// Exporter streams study tables as CSV.
type Exporter interface {
	ExportGenerations(ctx context.Context, w io.Writer) error
	ExportScores(ctx context.Context, w io.Writer) error
	ExportRatings(ctx context.Context, w io.Writer) error
}

// Server holds the HTTP surface's collaborators.
type Server struct {
	engine   *application.Engine
	study    *application.StudyService
	exporter Exporter

	model         string
	promptVersion string
}

// Config carries the server's informational fields.
type Config struct {
	// Model is reported by the health endpoint.
	Model string

	// PromptVersion is reported by the version endpoint.
	PromptVersion string
}

// New builds a server. The exporter may be nil, which disables the
// export endpoints.
func New(engine *application.Engine, study *application.StudyService, exporter Exporter, config Config) *Server {
	return &Server{
		engine:        engine,
		study:         study,
		exporter:      exporter,
		model:         config.Model,
		promptVersion: config.PromptVersion,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/score-big5", s.handleScoreBig5)
	mux.HandleFunc("POST /api/generate-task", s.handleGenerateTask)
	mux.HandleFunc("POST /api/submit-ratings", s.handleSubmitRatings)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/version", s.handleVersion)
	mux.HandleFunc("POST /api/reset-cache", s.handleResetCache)

	if s.exporter != nil {
		mux.HandleFunc("GET /api/export/generations.csv", s.exportCSV("generations.csv", s.exporter.ExportGenerations))
		mux.HandleFunc("GET /api/export/scores.csv", s.exportCSV("scores.csv", s.exporter.ExportScores))
		mux.HandleFunc("GET /api/export/ratings.csv", s.exportCSV("ratings.csv", s.exporter.ExportRatings))
	}

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "model": s.model})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"promptVersion": s.promptVersion})
}

func (s *Server) handleResetCache(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ResetCache(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

func (s *Server) exportCSV(filename string, export func(context.Context, io.Writer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := export(r.Context(), w); err != nil {
			// Headers are committed; log and cut the stream short.
			log.Printf("export %s failed: %v", filename, err)
		}
	}
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps application failures onto HTTP statuses: validation
// errors are client errors, generation failures read as a temporary
// outage, everything else is a plain server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": ve.Error()})
		return
	}

	var genErr *ports.GenerationError
	if errors.As(err, &genErr) {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"detail": "generation temporarily unavailable"})
		return
	}

	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "internal error"})
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		ve := domain.NewValidationError("request body")
		ve.AddError(err.Error())
		return ve
	}
	return nil
}
