package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/formcheck/pkg/form"
)

func newSignup(t *testing.T) *Binding {
	t.Helper()
	f, err := form.New(form.Schema{
		{Name: "email", Rules: form.Specs("required", "email")},
		{Name: "password", Rules: form.Specs("required", "stringMin:8")},
		{Name: "confirm", Rules: form.Specs("exact:password")},
	})
	require.NoError(t, err)
	return Bind(f, form.NewEngine())
}

func TestSetRevalidatesField(t *testing.T) {
	b := newSignup(t)

	var changes []Change
	b.Subscribe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, b.Set("email", "broken"))
	require.NoError(t, b.Set("email", "jane@example.com"))

	require.Len(t, changes, 2)
	assert.False(t, changes[0].Valid)
	assert.Equal(t, []string{"this field has to be a valid email address."}, changes[0].Messages)
	assert.True(t, changes[1].Valid)
	assert.Empty(t, changes[1].Messages)

	// untouched fields keep their unvalidated state
	assert.Empty(t, b.Form().Field("password").Errors)
	assert.False(t, b.Form().Valid())
}

func TestSetClearsServerErrors(t *testing.T) {
	b := newSignup(t)
	b.Form().SetServerErrors(form.ServerErrors{"email": {"already registered"}})

	require.NoError(t, b.Set("email", "other@example.com"))
	assert.Empty(t, b.Form().Field("email").ServerErrors)
}

func TestSetErrors(t *testing.T) {
	b := newSignup(t)
	assert.ErrorIs(t, b.Set("nope", 1), form.ErrUnknownField)

	f, err := form.New(form.Schema{{Name: "a", Rules: form.Specs("exact:ghost")}})
	require.NoError(t, err)
	broken := Bind(f, form.NewEngine())

	err = broken.Set("a", "x")
	var missing *form.MissingSiblingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestUnsubscribe(t *testing.T) {
	b := newSignup(t)
	calls := 0
	stop := b.Subscribe(func(Change) { calls++ })

	require.NoError(t, b.Set("email", "a@b.io"))
	stop()
	require.NoError(t, b.Set("email", "c@d.io"))

	assert.Equal(t, 1, calls)
}

func TestSubmitAndReset(t *testing.T) {
	b := newSignup(t)
	require.NoError(t, b.Set("email", "jane@example.com"))
	require.NoError(t, b.Set("password", "correct horse"))
	require.NoError(t, b.Set("confirm", "correct horse"))

	var got bool
	ok, err := b.Submit(func(valid bool) { got = valid })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got)

	b.Reset()
	v, _ := b.Form().Value("email")
	assert.Equal(t, "", v)
	assert.False(t, b.Form().Valid())
}
