package server

import (
	"bytes"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/dlovans/formcheck/internal/logger"
	"github.com/dlovans/formcheck/pkg/form"
	"github.com/dlovans/formcheck/pkg/lint"
)

// validateRequest is the body of POST /v1/validate. Schema is either a JSON
// schema document or a string holding a YAML or JSON one.
type validateRequest struct {
	Schema       json.RawMessage   `json:"schema"`
	Values       map[string]any    `json:"values"`
	ServerErrors form.ServerErrors `json:"server_errors"`
}

type lintRequest struct {
	Schema json.RawMessage `json:"schema"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type rulesResponse struct {
	Rules []string `json:"rules"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := parseSchema(req.Schema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	report, err := h.engine.Evaluate(doc, req.Values, req.ServerErrors)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, report)
}

func (h *Handler) lint(w http.ResponseWriter, r *http.Request) {
	var req lintRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := parseSchema(req.Schema)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, lint.Check(doc.Schema, h.engine.Registry()))
}

func (h *Handler) rules(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, rulesResponse{Rules: h.engine.Registry().Names()})
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return nil
}

func parseSchema(raw json.RawMessage) (form.Document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return form.Document{}, fmt.Errorf("%w: schema is required", ErrMalformedRequest)
	}
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return form.Document{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
		}
		return form.ParseDocument([]byte(text))
	}
	return form.ParseDocument(raw)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	h.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("write response")
	}
}
