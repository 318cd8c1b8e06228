package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusForError maps the domain error taxonomy to an HTTP status.
// invalidCodeStatus is route-dependent: a wrong security code on mission
// completion is an authorization failure, while a wrong code during
// delivery resolution is ordinary recipient input.
func statusForError(err error, invalidCodeStatus int) int {
	switch {
	case errors.Is(err, errs.ErrInvalidSecurityCode):
		return invalidCodeStatus
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrStaleState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails pulls the offending identifiers out of a conflict error so
// callers can tell which parcels or demands blocked the request.
func errorDetails(err error) []string {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return conflict.IDs
	}
	return nil
}

func writeError(ctx echo.Context, err error, invalidCodeStatus int) error {
	status := statusForError(err, invalidCodeStatus)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
		Details: errorDetails(err),
	})
}
