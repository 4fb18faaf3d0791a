package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError lists the request fields that violated their constraints,
// keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError converts the result of a Validate call into a
// *ValidationError. Nil stays nil and internal rule errors are returned as is.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fe := range fieldErrs {
			fields[name] = fe.Error()
		}
		return &ValidationError{Fields: fields}
	}

	return &ValidationError{Fields: map[string]string{"body": err.Error()}}
}

// BodyError wraps a payload decoding failure (malformed JSON, wrong types).
func BodyError(err error) *ValidationError {
	return &ValidationError{Fields: map[string]string{"body": err.Error()}}
}
