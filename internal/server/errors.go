package server

import (
	"errors"
	"net/http"

	"github.com/dlovans/formcheck/pkg/form"
)

// ErrMalformedRequest is returned for bodies that are not the expected JSON.
var ErrMalformedRequest = errors.New("malformed request body")

var errorStatusMap = map[error]int{
	ErrMalformedRequest:   http.StatusBadRequest,
	form.ErrInvalidSchema: http.StatusBadRequest,
	form.ErrUnknownField:  http.StatusBadRequest,
}

func statusFromError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	// a schema that references rules or fields that do not exist
	var unknownRule *form.UnknownRuleError
	var missingSibling *form.MissingSiblingFieldError
	if errors.As(err, &unknownRule) || errors.As(err, &missingSibling) {
		return http.StatusUnprocessableEntity
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
