package reconcile

import (
	"fmt"
	"strings"
)

// ConfigurationError is a fatal precondition failure detected before any
// network activity.
type ConfigurationError struct {
	Field  string // Offending setting or argument
	Reason string // Human-readable message
	Cause  error  // Underlying error
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("invalid configuration %q", e.Field))
	} else {
		parts = append(parts, "invalid configuration")
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, " - ")
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// FetchError is a kind-scoped retrieval failure. Partial is false when the
// first page failed (the kind is aborted) and true when a later page failed
// (the kind continues with the records received).
type FetchError struct {
	Kind    Kind
	Partial bool
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Partial {
		return fmt.Sprintf("fetching %s stopped early: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.Kind, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// WriteError reports that a kind's artifact could not be persisted.
type WriteError struct {
	Kind   Kind
	Target string
	Cause  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s imports to %s: %v", e.Kind, e.Target, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// MappingWarning is a record-scoped, non-fatal diagnostic. It is collected,
// never returned as an error.
type MappingWarning struct {
	Kind     Kind   `json:"kind"`
	RecordID string `json:"record_id"`
	Name     string `json:"name"`
	Subtype  string `json:"subtype,omitempty"`
	Reason   string `json:"reason"`
}

func (w MappingWarning) String() string {
	return fmt.Sprintf("skipping %s %q (%s): %s", w.Kind, w.Name, w.RecordID, w.Reason)
}
