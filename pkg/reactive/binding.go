// Package reactive binds form values to automatic revalidation.
//
// The form package has no subscription machinery of its own. A Binding is the
// change-notification adapter: every committed value goes through Set, which
// stores it and calls the engine's OnValueChange hook for that field, then tells
// listeners about the new field state.
package reactive

import (
	"fmt"
	"sync"

	"github.com/dlovans/formcheck/pkg/form"
)

// Change describes one committed value and the field state it produced.
type Change struct {
	Field    string
	Value    any
	Valid    bool
	Messages []string
}

// Listener is notified after a change was validated.
type Listener func(Change)

// Binding couples a form with an engine.
type Binding struct {
	form   *form.Form
	engine *form.Engine

	mu        sync.Mutex
	listeners []Listener
}

// Bind creates a binding for f validated by engine.
func Bind(f *form.Form, engine *form.Engine) *Binding {
	return &Binding{form: f, engine: engine}
}

// Form returns the bound form.
func (b *Binding) Form() *form.Form {
	return b.form
}

// Subscribe registers a listener and returns a function removing it.
func (b *Binding) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, l)
	idx := len(b.listeners) - 1
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if idx < len(b.listeners) {
			b.listeners[idx] = nil
		}
	}
}

// Set stores value into the named field and revalidates that field.
// Setting a value equal to the current one still revalidates.
func (b *Binding) Set(name string, value any) error {
	if err := b.form.SetValue(name, value); err != nil {
		return err
	}
	if err := b.engine.OnValueChange(b.form, name); err != nil {
		return fmt.Errorf("revalidate: %w", err)
	}

	snap, _ := b.form.Snapshot(name)
	b.notify(Change{
		Field:    name,
		Value:    snap.Value,
		Valid:    len(snap.Errors) == 0,
		Messages: snap.Messages(),
	})
	return nil
}

// Submit runs a full form validation, as a submit button would.
func (b *Binding) Submit(callback func(valid bool)) (bool, error) {
	return b.engine.ValidateForm(b.form, callback)
}

// Reset restores the form to its constructed state.
func (b *Binding) Reset() {
	b.form.Reset()
}

func (b *Binding) notify(c Change) {
	b.mu.Lock()
	listeners := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	b.mu.Unlock()

	for _, l := range listeners {
		l(c)
	}
}
