package errors

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors is the key for violations not scoped to a single field,
// e.g. a transfer where source and destination are the same account.
const NonFieldErrors = "non_field_errors"

// ValidationErrors accumulates every rule violation found in one validation
// pass, keyed by field name. It implements error so services can return it
// through a plain error value; callers unwrap it with errors.As.
type ValidationErrors map[string][]string

// Add records a violation against a field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// AddNonField records a violation not tied to a single field.
func (v ValidationErrors) AddNonField(message string) {
	v.Add(NonFieldErrors, message)
}

// Has reports whether the field has at least one violation.
func (v ValidationErrors) Has(field string) bool {
	return len(v[field]) > 0
}

// Empty reports whether no violations were recorded.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Error implements the error interface with a deterministic rendering.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, " | ")
}
