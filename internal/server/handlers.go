package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kotoba/wakachi/internal/models"
	"github.com/kotoba/wakachi/internal/segment"
)

type segmentRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit,omitempty"`
}

type segmentResponse struct {
	ID            string                `json:"id"`
	Text          string                `json:"text"`
	Segmentations []models.Segmentation `json:"segmentations"`
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cfg := s.Config()
	if utf8.RuneCountInString(req.Text) > cfg.Analysis.MaxInputRunes {
		s.respondError(w, http.StatusRequestEntityTooLarge, "text too long")
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = cfg.Analysis.DefaultLimit
	}
	if limit > cfg.Analysis.MaxLimit {
		limit = cfg.Analysis.MaxLimit
	}

	id := uuid.NewString()
	s.logger.Debug("segment request",
		zap.String("id", id),
		zap.Int("runes", utf8.RuneCountInString(req.Text)),
		zap.Int("limit", limit))

	segs, err := s.segmenter.Segment(r.Context(), req.Text, limit)
	if err == segment.ErrEmptyInput {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if err != nil {
		s.logger.Error("segmentation failed", zap.String("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, segmentResponse{
		ID:            id,
		Text:          req.Text,
		Segmentations: segs,
	})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	seq, err := strconv.ParseInt(chi.URLParam(r, "seq"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid sequence id")
		return
	}
	entry, err := s.store.Entry(r.Context(), seq)
	if err != nil {
		s.logger.Error("entry lookup failed", zap.Int64("seq", seq), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		s.respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	senses, err := s.store.Senses(r.Context(), seq)
	if err != nil {
		s.logger.Error("sense lookup failed", zap.Int64("seq", seq), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entry":  entry,
		"senses": senses,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.respondError(w, http.StatusServiceUnavailable, "lexicon unavailable")
		return
	}
	cfg := s.Config()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"config": map[string]interface{}{
			"database_path":   cfg.Lexicon.DatabasePath,
			"default_limit":   cfg.Analysis.DefaultLimit,
			"max_limit":       cfg.Analysis.MaxLimit,
			"max_input_runes": cfg.Analysis.MaxInputRunes,
			"gap_penalty":     cfg.Scoring.GapPenalty,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
