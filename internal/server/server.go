package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dlovans/formcheck/internal/config"
	"github.com/dlovans/formcheck/internal/logger"
	"github.com/dlovans/formcheck/pkg/form"
)

const shutdownTimeout = 5 * time.Second

// Server is the formcheck HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// New creates a server from cfg. Nothing listens until Run.
func New(cfg *config.Config, engine *form.Engine, logger *logger.Logger) *Server {
	h := NewHandler(engine, cfg.Server.MaxBodyBytes, logger)
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           h.Init(),
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("http server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
