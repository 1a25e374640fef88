package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/formcheck/internal/logger"
	"github.com/dlovans/formcheck/pkg/form"
	"github.com/dlovans/formcheck/pkg/lint"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(form.NewEngine(), 1<<16, logger.Nop()).Init()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestTraceIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(traceIDHeader))
}

func TestValidateEndpoint(t *testing.T) {
	body := `{
		"schema": {"fields": {
			"email": {"rules": ["required", "email"]},
			"password": {"rules": ["required", "stringMin:8"]},
			"confirm": {"rules": ["exact:password"]}
		}},
		"values": {"email": "jane@example.com", "password": "hunter2", "confirm": "hunter2"},
		"server_errors": {"email": ["already registered"]}
	}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report form.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Status.Valid)
	require.Len(t, report.Fields, 3)
	assert.Equal(t, []string{"already registered"}, report.Fields[0].Messages)
	assert.Equal(t, []string{"this field has to contain at least 8 characters."}, report.Fields[1].Messages)
	assert.True(t, report.Fields[2].Valid)
}

func TestValidateYAMLSchemaString(t *testing.T) {
	body := `{
		"schema": "fields:\n  age:\n    rules: [\"numberBetween:18,99\"]\n",
		"values": {"age": 42}
	}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"valid":true`)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", `nope`, http.StatusBadRequest},
		{"unknown request field", `{"schema": {"fields": {}}, "extra": 1}`, http.StatusBadRequest},
		{"missing schema", `{"values": {}}`, http.StatusBadRequest},
		{"bad schema", `{"schema": {"fields": [1]}}`, http.StatusBadRequest},
		{"unknown value", `{"schema": {"fields": {"a": null}}, "values": {"b": 1}}`, http.StatusBadRequest},
		{"unknown rule", `{"schema": {"fields": {"a": {"rules": ["nope"]}}}}`, http.StatusUnprocessableEntity},
		{"missing sibling", `{"schema": {"fields": {"a": {"value": "x", "rules": ["exact:b"]}}}}`, http.StatusUnprocessableEntity},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/v1/validate", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	router := NewHandler(form.NewEngine(), 32, logger.Nop()).Init()
	body := `{"schema": {"fields": {"a_very_long_field_name_indeed": null}}}`

	rec := do(t, router, http.MethodPost, "/v1/validate", body)
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Less(t, rec.Code, http.StatusInternalServerError)
}

func TestLintEndpoint(t *testing.T) {
	body := `{"schema": {"fields": {"confirm": {"rules": ["exact:password", "emial"]}}}}`

	rec := do(t, newTestRouter(t), http.MethodPost, "/v1/lint", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result lint.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Len(t, result.Issues, 2)
}

func TestRulesEndpoint(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/v1/rules", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, form.DefaultRegistry().Names(), resp.Rules)
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/v1/validate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
