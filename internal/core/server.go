// Package core provides the HTTP chassis for weatherdesk. It creates a chi
// router and applies cross-cutting concerns (panic recovery, request IDs,
// logging, metrics, compression) before requests reach the page and API
// handlers.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"weatherdesk/internal/config"
	"weatherdesk/internal/telemetry"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	Config       *config.Config
	Logger       *slog.Logger
	Validator    *Validator
	Metrics      telemetry.Collector
	HealthProbes []HealthProbe

	// RouteRegistrars mount the handler packages. They are populated by the
	// entry point so core does not import them.
	RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer creates a Server with an empty router. The caller registers
// handlers and then calls MountRoutes.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config:    cfg,
		Logger:    logger,
		Validator: NewValidator(logger),
		Metrics:   telemetry.Noop{},
		router:    chi.NewRouter(),
	}, nil
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Shutdown flushes pending metrics.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("server shutdown initiated")

	if closer, ok := s.Metrics.(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(ctx); err != nil {
			s.Logger.Error("error flushing metrics", "error", err)
			return fmt.Errorf("flushing metrics: %w", err)
		}
	}

	s.Logger.Info("server shutdown complete")
	return nil
}
