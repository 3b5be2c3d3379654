// Package server provides the HTTP API for wakachi.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kotoba/wakachi/internal/config"
	"github.com/kotoba/wakachi/internal/lexicon"
	"github.com/kotoba/wakachi/internal/segment"
)

// Server is the HTTP server for the wakachi API.
type Server struct {
	segmenter *segment.Segmenter
	store     *lexicon.Store
	logger    *zap.Logger
	server    *http.Server

	cfgMu sync.RWMutex
	cfg   *config.Config
}

// NewServer creates a server with the given dependencies.
func NewServer(
	seg *segment.Segmenter,
	store *lexicon.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		segmenter: seg,
		store:     store,
		cfg:       cfg,
		logger:    logger,
	}
}

// Config returns the current configuration.
func (s *Server) Config() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// SetConfig swaps the configuration and pushes the scoring weights into the
// segmenter. Used by the config file watcher.
func (s *Server) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
	s.segmenter.Scorer().SetConfig(cfg.Scoring)
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/segment", s.handleSegment)
	r.Get("/api/v1/entries/{seq}", s.handleGetEntry)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := s.router()

	cfg := s.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
