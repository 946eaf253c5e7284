// Package server exposes the conversion pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/papertone/papertone/internal/config"
	"github.com/papertone/papertone/internal/display"
	"github.com/papertone/papertone/internal/pipeline"
	"github.com/papertone/papertone/internal/tts"
)

// Converter runs one PDF → audiobook conversion.
type Converter interface {
	Convert(ctx context.Context, uploadPath, voiceID string) (*pipeline.Result, error)
}

// VoiceSource supplies the public voice catalog.
type VoiceSource interface {
	Voices(ctx context.Context) []tts.Voice
}

// Server is the papertone HTTP server.
type Server struct {
	cfg       config.ServerConfig
	catalog   VoiceSource
	converter Converter
	mux       *http.ServeMux
}

// New creates a Server and ensures its working directories exist.
func New(cfg config.ServerConfig, catalog VoiceSource, converter Converter) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.AudioDir, cfg.StaticDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	s := &Server{
		cfg:       cfg,
		catalog:   catalog,
		converter: converter,
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(loggingMiddleware(s.mux))
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/voices", s.handleVoices)
	s.mux.HandleFunc("/convert", s.handleConvert)
	s.mux.HandleFunc("/download/", s.handleDownload)

	// Generated audio is also served directly for inline playback.
	s.mux.Handle("/audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(s.cfg.AudioDir))))
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
}

// writeDetail writes a JSON error body with a human-readable detail string.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		display.LogRequest(r.Method, r.URL.Path, rec.status, time.Since(start), r.RemoteAddr)
	})
}
