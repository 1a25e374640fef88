package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/formcheck/pkg/form"
)

func findIssue(result *Result, severity, field, rule string) *Issue {
	for i := range result.Issues {
		is := &result.Issues[i]
		if is.Severity == severity && is.Field == field && is.Rule == rule {
			return is
		}
	}
	return nil
}

func TestCleanSchema(t *testing.T) {
	result, err := Run(`
fields:
  email:
    rules: [required, email]
  password:
    rules: [required, "stringMin:8"]
  confirm:
    rules: ["exact:password"]
  age:
    value: 30
    rules: ["numberBetween:18,99"]
  start:
    rules: ["dateAfter:2024-01-01"]
`)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
}

func TestUnknownRule(t *testing.T) {
	result, err := Run(`{"fields": {"email": {"rules": ["required", "emial"]}}}`)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	is := findIssue(result, "error", "email", "emial")
	require.NotNil(t, is)
	assert.Equal(t, "unknown rule 'emial'", is.Message)
}

func TestCrossFieldReferences(t *testing.T) {
	result := Check(form.Schema{
		{Name: "password", Rules: form.Specs("required")},
		{Name: "confirm", Rules: form.Specs("exact:pasword")},
		{Name: "nick", Rules: form.Specs("different:nick")},
	}, form.DefaultRegistry())

	assert.False(t, result.Valid)
	assert.NotNil(t, findIssue(result, "error", "confirm", "exact"))
	assert.NotNil(t, findIssue(result, "warning", "nick", "different"))
}

func TestArguments(t *testing.T) {
	tests := []struct {
		name     string
		rule     string
		severity string
	}{
		{"missing argument", "stringMin", "error"},
		{"too few for range", "numberBetween:1", "error"},
		{"extra argument", "numberMax:3,4", "warning"},
		{"argument on plain rule", "email:strict", "warning"},
		{"non numeric", "stringMax:ten", "error"},
		{"empty range", "numberBetween:10,1", "warning"},
		{"bad date", "dateBefore:someday", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := form.ParseSpec(tt.rule)
			result := Check(form.Schema{{Name: "f", Rules: []form.RuleSpec{spec}}}, form.DefaultRegistry())
			require.Len(t, result.Issues, 1, "%+v", result.Issues)
			assert.Equal(t, tt.severity, result.Issues[0].Severity)
			assert.Equal(t, spec.Name(), result.Issues[0].Rule)
			assert.Equal(t, tt.severity != "error", result.Valid)
		})
	}
}

func TestRepeatedRule(t *testing.T) {
	result := Check(form.Schema{
		{Name: "bio", Rules: form.Specs("stringMax:100", "stringMax:50")},
	}, form.DefaultRegistry())
	assert.True(t, result.Valid)
	assert.NotNil(t, findIssue(result, "warning", "bio", "stringMax"))
}

func TestInlineRulesSkipped(t *testing.T) {
	result := Check(form.Schema{
		{Name: "code", Rules: []form.RuleSpec{
			form.InlineFunc(func(v any) bool { return v != nil }, "code required"),
		}},
	}, form.DefaultRegistry())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
}

func TestCustomRegistry(t *testing.T) {
	reg := form.DefaultRegistry().Extend(map[string]form.Rule{
		"slug": {
			Test:    func(*form.Field, []string, *form.Form) (bool, error) { return true, nil },
			Message: func(*form.Field, []string, *form.Form) string { return "bad slug" },
		},
	})
	schema := form.Schema{{Name: "path", Rules: form.Specs("slug")}}

	assert.False(t, Check(schema, form.DefaultRegistry()).Valid)
	assert.True(t, Check(schema, reg).Valid)
}

func TestRunParseError(t *testing.T) {
	_, err := Run(`{"fields": [`)
	require.Error(t, err)
	assert.ErrorIs(t, err, form.ErrInvalidSchema)
}
