package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the dispatch error taxonomy. Callers classify failures
// with errors.Is against these; the typed errors below carry the details.
var (
	ErrValueIsRequired     = errors.New("value is required")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrObjectNotFound      = errors.New("object not found")
	ErrConflict            = errors.New("state precondition violated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrStaleState          = errors.New("state changed concurrently")
	ErrInvalidTransition   = errors.New("status transition is not allowed")
	ErrInvalidSecurityCode = errors.New("security code is invalid")
	ErrCodeSpaceExhausted  = errors.New("security code generation exhausted retry budget")
)

func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " "), "\r", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed or out-of-domain value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError reports a lookup miss for a persisted object.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the named
// parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError reports a violated state precondition. IDs carries the
// offending identifiers so the caller can see exactly which objects blocked
// the operation (unavailable parcels, unaccepted demands, busy missions).
type ConflictError struct {
	ParamName string
	Reason    string
	IDs       []string
	Cause     error
}

// NewConflictError creates a ConflictError naming the offending identifiers.
func NewConflictError(paramName string, reason string, ids ...string) *ConflictError {
	return &ConflictError{ParamName: paramName, Reason: reason, IDs: ids}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, reason string, cause error, ids ...string) *ConflictError {
	return &ConflictError{ParamName: paramName, Reason: reason, IDs: ids, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrConflict, sanitize(e.ParamName), sanitize(e.Reason))
	if len(e.IDs) > 0 {
		msg += fmt.Sprintf(" [%s]", sanitize(strings.Join(e.IDs, ", ")))
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause))
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PermissionDeniedError reports an actor lacking the capability an operation
// requires.
type PermissionDeniedError struct {
	Role   string
	Action string
}

// NewPermissionDeniedError creates a PermissionDeniedError for a role and
// the action it attempted.
func NewPermissionDeniedError(role string, action string) *PermissionDeniedError {
	return &PermissionDeniedError{Role: role, Action: action}
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrPermissionDenied, sanitize(e.Role), sanitize(e.Action))
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// StaleStateError reports an optimistic-concurrency loss: the stored status
// no longer matches the status the caller observed. The operation made no
// changes and is safe to retry after a re-read.
type StaleStateError struct {
	ParamName string
	ID        any
}

// NewStaleStateError creates a StaleStateError for the named parameter and
// identifier.
func NewStaleStateError(paramName string, id any) *StaleStateError {
	return &StaleStateError{ParamName: paramName, ID: id}
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("%s: param is: %s, ID is: %s", ErrStaleState, sanitize(e.ParamName), sanitize(e.ID))
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}

// InvalidTransitionError reports an attempt to move an entity along an edge
// that the transition table does not allow.
type InvalidTransitionError struct {
	Machine string
	From    string
	To      string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// status machine and edge.
func NewInvalidTransitionError(machine string, from string, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Machine: machine, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s: %s -> %s",
		ErrInvalidTransition, sanitize(e.Machine), sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
