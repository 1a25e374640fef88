package form

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Engine runs field rules against a registry. It holds no per-form state, so one
// engine can serve any number of forms.
type Engine struct {
	registry *Registry
	log      zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the builtin registry.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger sets the logger used for validation traces.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine backed by DefaultRegistry unless configured otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: DefaultRegistry(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry rules are resolved against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// ValidateField validates one field of form and reports whether every rule passed.
func (e *Engine) ValidateField(form *Form, name string) (bool, error) {
	form.mu.Lock()
	defer form.mu.Unlock()

	field := form.index[name]
	if field == nil {
		return false, fmt.Errorf("%w: '%s'", ErrUnknownField, name)
	}
	return e.Check(field, form)
}

// Check validates field against form without locking. It is the lock-free core of
// ValidateField for callers that already own the form.
//
// Local and server errors are cleared first. Every rule then runs in declared
// order and each failure stores its message under the rule key; a failing rule
// never stops the remaining ones. An unknown rule or a missing sibling aborts the
// run and is returned.
func (e *Engine) Check(field *Field, form *Form) (bool, error) {
	field.clearErrors()
	valid := true

	for i, spec := range field.Rules {
		rule, err := e.registry.resolve(spec, i)
		if err != nil {
			e.log.Warn().Err(err).Str("field", field.Name).Msg("rule resolution failed")
			return false, fmt.Errorf("field '%s': %w", field.Name, err)
		}

		ok, err := rule.Test(field, rule.args, form)
		if err != nil {
			e.log.Warn().Err(err).Str("field", field.Name).Str("rule", rule.key).Msg("rule test failed")
			return false, fmt.Errorf("field '%s': %w", field.Name, err)
		}
		if !ok {
			field.Errors.set(rule.key, rule.Message(field, rule.args, form))
			valid = false
		}
	}

	e.log.Debug().
		Str("form_id", formID(form)).
		Str("field", field.Name).
		Bool("valid", valid).
		Strs("errors", field.Errors.Keys()).
		Msg("field validated")

	return valid, nil
}

// ValidateForm validates every field in declaration order, without stopping at the
// first invalid one, and stores the conjunction in the form's Valid flag.
// callback, when not nil, receives the result after the form is unlocked.
func (e *Engine) ValidateForm(form *Form, callback func(valid bool)) (bool, error) {
	valid, err := e.validateForm(form)
	if err != nil {
		return false, err
	}

	e.log.Debug().Str("form_id", form.ID).Bool("valid", valid).Msg("form validated")

	if callback != nil {
		callback(valid)
	}
	return valid, nil
}

func (e *Engine) validateForm(form *Form) (bool, error) {
	form.mu.Lock()
	defer form.mu.Unlock()

	form.status.Valid = true
	valid := true
	for _, field := range form.fields {
		ok, err := e.Check(field, form)
		if err != nil {
			form.status.Valid = false
			return false, err
		}
		if !ok {
			valid = false
		}
	}
	form.status.Valid = valid
	return valid, nil
}

// OnValueChange is the hook a change-notification adapter calls after a bound
// value changed. It revalidates that field only; the form's Valid flag keeps the
// result of the last ValidateForm.
func (e *Engine) OnValueChange(form *Form, name string) error {
	_, err := e.ValidateField(form, name)
	return err
}

// Evaluate is the one-shot path used by batch callers: it builds a form from doc,
// assigns values, validates the whole form and then attaches serverErrors.
func (e *Engine) Evaluate(doc Document, values map[string]any, serverErrors ServerErrors) (Report, error) {
	form, err := doc.NewForm()
	if err != nil {
		return Report{}, err
	}
	if err := form.SetValues(values); err != nil {
		return Report{}, err
	}
	if _, err := e.ValidateForm(form, nil); err != nil {
		return Report{}, err
	}
	if serverErrors != nil {
		form.SetServerErrors(serverErrors)
	}
	return form.Report(), nil
}

func formID(form *Form) string {
	if form == nil {
		return ""
	}
	return form.ID
}
