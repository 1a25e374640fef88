package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a form is asked for a field it does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidSchema is returned when a schema document cannot be decoded.
	ErrInvalidSchema = errors.New("invalid schema")
)

// UnknownRuleError reports a string rule specification that names no registered rule.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown rule '%s'", e.Name)
}

// MissingSiblingFieldError reports a cross-field rule pointing at a field the form does not have.
// It is an authoring bug in the schema, not a user input problem.
type MissingSiblingFieldError struct {
	Field   string // field carrying the rule
	Sibling string // referenced field name
}

func (e *MissingSiblingFieldError) Error() string {
	return fmt.Sprintf("field '%s' not found in form fields (referenced by '%s')", e.Sibling, e.Field)
}
