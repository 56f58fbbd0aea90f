package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ErikaNSantos/lofi-crafter/internal/engine"
	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/midifile"
	"github.com/ErikaNSantos/lofi-crafter/internal/output"
	"github.com/ErikaNSantos/lofi-crafter/internal/style"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
)

// generateRequest is the POST /generate payload
type generateRequest struct {
	Style       string `json:"style"`
	Key         string `json:"key,omitempty"`
	BPM         int    `json:"bpm,omitempty"`
	Measures    int    `json:"measures,omitempty"`
	Progression string `json:"progression,omitempty"`
	Drums       *bool  `json:"drums,omitempty"`
	Seed        *int64 `json:"seed,omitempty"`
}

// generateResponse reports the resolved parameters plus a download id
type generateResponse struct {
	ID          string `json:"id"`
	Style       string `json:"style"`
	Key         string `json:"key"`
	Mode        string `json:"mode"`
	BPM         int    `json:"bpm"`
	Measures    int    `json:"measures"`
	Progression string `json:"progression"`
	Drums       bool   `json:"drums"`
	Seed        int64  `json:"seed"`
	Events      int    `json:"events"`
	DownloadURL string `json:"download_url"`
}

// styleInfo is one entry of the GET /styles listing
type styleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BPMLow      int    `json:"bpm_low"`
	BPMHigh     int    `json:"bpm_high"`
	Drums       bool   `json:"drums"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleStyles lists the registered style presets
func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	var out []styleInfo
	for _, p := range style.List() {
		out = append(out, styleInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			BPMLow:      p.BPMLow,
			BPMHigh:     p.BPMHigh,
			Drums:       p.HasDrums,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// handleProgressions lists the registered progression ids
func (s *Server) handleProgressions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, theory.ListProgressions())
}

// handleGenerate runs one generation request and stores the rendered MIDI
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Style == "" {
		s.writeError(w, http.StatusBadRequest, "style is required")
		return
	}

	result, err := engine.Generate(engine.Request{
		Style:       req.Style,
		Key:         req.Key,
		BPM:         req.BPM,
		Measures:    req.Measures,
		Progression: req.Progression,
		Drums:       req.Drums,
		Seed:        req.Seed,
	})
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	data, err := midifile.Bytes(result.Track)
	if err != nil {
		s.logger.Error("serialize failed", slog.Any("error", err))
		s.writeError(w, http.StatusInternalServerError, "serialization failed")
		return
	}

	filename := output.Filename(result.Style, result.Key, result.BPM, "")
	id := s.store.Put(&Render{
		Filename: filename,
		Style:    result.Style,
		Key:      result.Key,
		BPM:      result.BPM,
		Measures: result.Measures,
		Seed:     result.Seed,
		Data:     data,
	})

	s.writeJSON(w, http.StatusOK, generateResponse{
		ID:          id,
		Style:       result.Style,
		Key:         result.Key,
		Mode:        string(result.Mode),
		BPM:         result.BPM,
		Measures:    result.Measures,
		Progression: result.Progression,
		Drums:       result.Drums,
		Seed:        result.Seed,
		Events:      len(result.Track.Events),
		DownloadURL: "/download/" + id,
	})
}

// handleDownload streams a stored MIDI file
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	render, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "render not found or expired")
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.Filename))
	w.Write(render.Data)
}

// statusFor maps generation failures onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnknownStyle),
		errors.Is(err, apperrors.ErrUnknownProgression):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidKey),
		errors.Is(err, apperrors.ErrRangeViolation),
		errors.Is(err, apperrors.ErrUnsupportedIntensity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
