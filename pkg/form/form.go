// Package form implements a reactive form validation engine.
//
// A Form is built from an ordered Schema of field definitions. Each field carries a
// list of rule specifications, either tags such as "stringMin:3" resolved against a
// Registry or inline rules. An Engine runs those rules on demand, records one error
// per failing rule on the field, and rolls the results up into the form's Valid flag.
// Errors injected from outside (for example by a server round trip) are kept next to
// local rule errors and surfaced together by Field.Messages.
package form

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"dario.cat/mergo"
	"github.com/google/uuid"
)

// FieldDef declares one field of a schema.
// A nil Value defaults to "" and nil Rules default to ["required"]. Slice and map
// values are copied when a form is built, so Reset restores their contents.
// An empty non-nil Rules slice declares a field without rules.
type FieldDef struct {
	Name  string
	Value any
	Rules []RuleSpec
}

// Schema is the ordered list of field definitions a form is built from.
// Order is declaration order and drives validation and projection order.
type Schema []FieldDef

// Status holds the form-level flags. Only Valid is computed, by Engine.ValidateForm;
// the other flags belong to the owner.
type Status struct {
	Loading bool           `json:"loading"`
	Touched bool           `json:"touched"`
	Valid   bool           `json:"valid"`
	Error   string         `json:"error,omitempty"`
	Success string         `json:"success,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// ServerErrors carries externally produced messages keyed by field name.
type ServerErrors map[string][]string

// Form is a named collection of fields plus status flags.
// All methods are safe for concurrent use; Field returns the live field and is
// meant for single goroutine hosts and rule functions.
type Form struct {
	ID string

	mu     sync.Mutex
	fields []*Field
	index  map[string]*Field
	status Status

	// construction inputs retained for Reset
	baseSchema Schema
	baseExtra  []Status
}

// New builds a form from schema. extra statuses are merged, in order, over the
// default flags; non-zero values win.
func New(schema Schema, extra ...Status) (*Form, error) {
	f := &Form{
		ID:         uuid.NewString(),
		baseSchema: cloneSchema(schema),
		baseExtra:  make([]Status, len(extra)),
	}
	for i, s := range extra {
		s.Meta = maps.Clone(s.Meta)
		f.baseExtra[i] = s
	}

	if err := f.build(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(schema Schema, extra ...Status) *Form {
	f, err := New(schema, extra...)
	if err != nil {
		panic(fmt.Sprintf("form: %v", err))
	}
	return f
}

// build (re)creates fields and status from the retained construction inputs.
func (f *Form) build() error {
	fields := make([]*Field, 0, len(f.baseSchema))
	index := make(map[string]*Field, len(f.baseSchema))

	for _, def := range f.baseSchema {
		if def.Name == "" {
			return fmt.Errorf("%w: field with empty name", ErrInvalidSchema)
		}
		if _, dup := index[def.Name]; dup {
			return fmt.Errorf("%w: duplicate field '%s'", ErrInvalidSchema, def.Name)
		}

		value := cloneValue(def.Value)
		if value == nil {
			value = ""
		}
		rules := slices.Clone(def.Rules)
		if def.Rules == nil {
			rules = []RuleSpec{Named("required")}
		}

		field := &Field{Name: def.Name, Value: value, Rules: rules}
		fields = append(fields, field)
		index[def.Name] = field
	}

	status := Status{}
	for _, extra := range f.baseExtra {
		extra.Meta = maps.Clone(extra.Meta)
		if err := mergo.Merge(&status, extra, mergo.WithOverride); err != nil {
			return fmt.Errorf("merge extra properties: %w", err)
		}
	}

	f.fields = fields
	f.index = index
	f.status = status
	return nil
}

func cloneSchema(schema Schema) Schema {
	out := make(Schema, len(schema))
	for i, def := range schema {
		out[i] = FieldDef{Name: def.Name, Value: cloneValue(def.Value)}
		if def.Rules != nil {
			out[i].Rules = slices.Clone(def.Rules)
		}
	}
	return out
}

// cloneValue copies slice and map values one level deep so in-place edits of a
// live field never reach the retained schema. Other values are returned as is.
func cloneValue(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	default:
		return v
	}
}

// Reset rebuilds the form from the schema and extra properties it was created
// with, discarding values, errors and status changes.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	// the inputs already built once, so build cannot fail here
	_ = f.build()
}

// Field returns the live field named name, or nil.
// It takes no lock: rule functions call it while the form is locked.
func (f *Form) Field(name string) *Field {
	return f.lookup(name)
}

func (f *Form) lookup(name string) *Field {
	if f == nil {
		return nil
	}
	return f.index[name]
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []*Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.fields)
}

// Names returns the field names in declaration order.
func (f *Form) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.Name
	}
	return names
}

// Snapshot returns a copy of the named field taken under the form lock.
func (f *Form) Snapshot(name string) (Field, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	field := f.index[name]
	if field == nil {
		return Field{}, false
	}
	return Field{
		Name:         field.Name,
		Value:        field.Value,
		Rules:        slices.Clone(field.Rules),
		Errors:       slices.Clone(field.Errors),
		ServerErrors: slices.Clone(field.ServerErrors),
	}, true
}

// Value returns the current value of a field.
func (f *Form) Value(name string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	field := f.index[name]
	if field == nil {
		return nil, false
	}
	return field.Value, true
}

// SetValue replaces a field's value. It does not validate; hosts wire that through
// Engine.OnValueChange or the reactive package.
func (f *Form) SetValue(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	field := f.index[name]
	if field == nil {
		return fmt.Errorf("%w: '%s'", ErrUnknownField, name)
	}
	field.Value = value
	return nil
}

// SetValues assigns several values at once. Unknown names are reported together
// and do not stop the known ones from being set.
func (f *Form) SetValues(values map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(values)) {
		field := f.index[name]
		if field == nil {
			errs = append(errs, fmt.Errorf("%w: '%s'", ErrUnknownField, name))
			continue
		}
		field.Value = values[name]
	}
	return errors.Join(errs...)
}

// Status returns a copy of the form flags.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.status
	s.Meta = maps.Clone(s.Meta)
	return s
}

// Valid reports the outcome of the last ValidateForm. It is false until then.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status.Valid
}

// Update applies fn to the form flags under the form lock.
func (f *Form) Update(fn func(s *Status)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.status)
}

// SetServerErrors overwrites every field's server errors with the entry for its name,
// clearing fields that have none.
func (f *Form) SetServerErrors(errs ServerErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range f.fields {
		field.ServerErrors = slices.Clone(errs[field.Name])
	}
}
