// Package server exposes the validation engine and the schema linter over HTTP.
package server

import (
	"github.com/dlovans/formcheck/internal/logger"
	"github.com/dlovans/formcheck/pkg/form"
)

// Handler serves the formcheck HTTP API.
type Handler struct {
	engine       *form.Engine
	maxBodyBytes int64

	logger *logger.Logger
}

// NewHandler creates a handler validating with engine. Request bodies larger
// than maxBodyBytes are rejected.
func NewHandler(engine *form.Engine, maxBodyBytes int64, logger *logger.Logger) *Handler {
	logger.Info().Int64("max_body_bytes", maxBodyBytes).Msg("http handler created")
	return &Handler{
		engine:       engine,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}
