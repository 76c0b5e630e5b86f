package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderapi/internal/pkg/errs"
)

// Wire error codes carried in the uniform error body.
const (
	CodeValidationError         = "VALIDATION_ERROR"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeNotFound                = "NOT_FOUND"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInternalError           = "INTERNAL_ERROR"
)

// mapError translates a use-case error into the uniform error body.
// Validation failures map to 400, unknown objects to 404, transition-rule
// violations to 409, and everything else to 500 with the detail withheld.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidStatusTransition):
		return writeError(ctx, http.StatusConflict, CodeInvalidStatusTransition, err.Error())
	default:
		return writeError(ctx, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}

func writeError(ctx echo.Context, status int, code, message string) error {
	return ctx.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// errorHandler is the echo HTTPErrorHandler keeping framework-raised errors
// (unmatched routes, malformed requests) on the uniform error body.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
	}

	code := CodeInternalError
	message := "internal error"
	switch status {
	case http.StatusNotFound:
		code = CodeNotFound
		message = "resource not found"
	case http.StatusMethodNotAllowed:
		code = CodeNotFound
		status = http.StatusNotFound
		message = "resource not found"
	case http.StatusBadRequest:
		code = CodeValidationError
		message = "malformed request"
	case http.StatusUnauthorized:
		code = CodeUnauthorized
		message = "missing or empty bearer token"
	}

	_ = writeError(ctx, status, code, message)
}
