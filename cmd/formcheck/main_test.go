package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/formcheck/pkg/form"
)

const schemaYAML = `
fields:
  email:
    rules: [required, email]
  password:
    rules: [required, "stringMin:8"]
  confirm:
    rules: ["exact:password"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCommand(t *testing.T) {
	schema := writeFile(t, "signup.yaml", schemaYAML)

	t.Run("valid values from stdin", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader(`{"email": "jane@example.com", "password": "correct horse", "confirm": "correct horse"}`)

		code := run([]string{"validate", "-schema", schema}, stdin, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())
		assert.Contains(t, stdout.String(), "✓ email")
		assert.Contains(t, stdout.String(), "✓ Form is valid")
	})

	t.Run("invalid values from file", func(t *testing.T) {
		values := writeFile(t, "values.json", `{"email": "nope", "password": "short", "confirm": "other"}`)
		var stdout, stderr bytes.Buffer

		code := run([]string{"validate", "-schema", schema, "-values", values}, nil, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stdout.String(), "✗ email: this field has to be a valid email address.")
		assert.Contains(t, stdout.String(), "✗ Form is invalid")
	})

	t.Run("json report with server errors", func(t *testing.T) {
		serverErrors := writeFile(t, "errors.json", `{"email": ["already registered"]}`)
		var stdout, stderr bytes.Buffer
		stdin := strings.NewReader(`{"email": "jane@example.com", "password": "correct horse", "confirm": "correct horse"}`)

		code := run([]string{"validate", "-schema", schema, "-server-errors", serverErrors, "-json"}, stdin, &stdout, &stderr)
		assert.Equal(t, 0, code, stderr.String())

		var report form.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.True(t, report.Status.Valid)
		assert.Equal(t, []string{"already registered"}, report.Fields[0].Messages)
	})

	t.Run("missing schema flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"validate"}, nil, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "-schema is required")
	})

	t.Run("unknown rule", func(t *testing.T) {
		broken := writeFile(t, "broken.yaml", "fields:\n  a:\n    rules: [nope]\n")
		var stdout, stderr bytes.Buffer
		code := run([]string{"validate", "-schema", broken}, strings.NewReader(`{"a": "x"}`), &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "unknown rule 'nope'")
	})
}

func TestLintCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"lint"}, strings.NewReader(schemaYAML), &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "✓ No issues found\n", stdout.String())

	stdout.Reset()
	path := writeFile(t, "bad.yaml", "fields:\n  confirm:\n    rules: [\"exact:password\"]\n")
	code = run([]string{"lint", "-file", path}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "✗ error [field: confirm] [rule: exact]")
}

func TestRulesCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"rules"}, nil, &stdout, &stderr)
	assert.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, form.DefaultRegistry().Names(), lines)
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"frobnicate"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")
}
