package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInsufficientFunds is returned when a purchase costs more coins than the
// profile holds. The purchase is rejected with no state change.
var ErrInsufficientFunds = errors.New("not enough coins")

// ErrGuardSuppressed is returned when the debounce guard rejects a re-entrant
// trigger of the same action. It is a no-op, not a user-facing failure.
var ErrGuardSuppressed = errors.New("action suppressed by debounce guard")

// NotFoundError reports a missing quest or shop item.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError aggregates per-field form errors. The operation it aborted
// made no state change.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// CapDeclinedError is returned when a completion would breach a global cap
// and the user did not confirm proceeding. Nothing was applied.
type CapDeclinedError struct {
	Check CapCheck
}

func (e CapDeclinedError) Error() string {
	return e.Check.Message + "; not confirmed"
}

// DuplicateTitleError reports an existing quest or item with the same title.
// The caller may retry with the duplicate allowed.
type DuplicateTitleError struct {
	Kind  string
	Title string
}

func (e DuplicateTitleError) Error() string {
	return fmt.Sprintf("a %s titled %q already exists", e.Kind, e.Title)
}

// TimerStateError reports a timer operation invalid in the current phase.
type TimerStateError struct {
	Op    string
	Phase TimerPhase
}

func (e TimerStateError) Error() string {
	return fmt.Sprintf("cannot %s timer while %s", e.Op, e.Phase)
}
