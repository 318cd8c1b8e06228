// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package defines the error taxonomy of the fulfillment state machine:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input,
//     recoverable by caller correction
//   - ObjectNotFoundError: lookup miss for a persisted object
//   - ConflictError: a state precondition was violated (parcel already
//     claimed, demand not accepted, mission busy); carries the offending
//     identifiers so the caller can re-query precisely
//   - PermissionDeniedError: the actor lacks the required capability
//   - StaleStateError: optimistic-concurrency loss, safe to retry
//   - InvalidTransitionError: illegal edge in a status machine
//   - ErrInvalidSecurityCode / ErrCodeSpaceExhausted: security-code
//     verification failure and generation exhaustion
//
// Each typed error follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel for errors.Is classification
package errs
