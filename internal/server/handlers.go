package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papertone/papertone/internal/pipeline"
	"github.com/papertone/papertone/internal/tts"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.catalog.Voices(r.Context()))
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	voiceID := r.FormValue("voice_id")
	if voiceID == "" {
		writeDetail(w, http.StatusBadRequest, "voice_id is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	uploadName := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(header.Filename))
	uploadPath := filepath.Join(s.cfg.UploadDir, uploadName)

	dst, err := os.Create(uploadPath)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "save upload: "+err.Error())
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(uploadPath)
		writeDetail(w, http.StatusInternalServerError, "save upload: "+err.Error())
		return
	}
	dst.Close()

	res, err := s.converter.Convert(r.Context(), uploadPath, voiceID)
	if err != nil {
		s.writeConvertError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":       "success",
		"download_url": "/download/" + res.Filename,
		"playback_url": "/audio/" + res.Filename,
		"filename":     res.Filename,
	})
}

// writeConvertError maps pipeline failures onto the HTTP error contract:
// no extractable text is the client's problem, everything else is ours.
func (s *Server) writeConvertError(w http.ResponseWriter, err error) {
	var exErr *pipeline.ExtractionError
	if errors.As(err, &exErr) {
		writeDetail(w, http.StatusBadRequest, exErr.Error())
		return
	}

	var synthErr *tts.SynthesisError
	if errors.As(err, &synthErr) || errors.Is(err, tts.ErrMissingAPIKey) {
		writeDetail(w, http.StatusInternalServerError, "text-to-speech generation failed: "+err.Error())
		return
	}

	writeDetail(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/download/")
	if name == "" || name != filepath.Base(name) {
		writeDetail(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := filepath.Join(s.cfg.AudioDir, name)
	if _, err := os.Stat(path); err != nil {
		writeDetail(w, http.StatusNotFound, "file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}
