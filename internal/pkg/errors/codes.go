package errors

import "net/http"

const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeCacheError       = "CACHE_ERROR"
	CodeInternalServer   = "INTERNAL_SERVER_ERROR"
)

var (
	ErrInvalidInput = New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)

	ErrInsufficientData = New(
		CodeInsufficientData,
		"Insufficient data",
		http.StatusUnprocessableEntity,
	)

	ErrNotFound = New(
		CodeNotFound,
		"Not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		CodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		CodeCacheError,
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		CodeInternalServer,
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// InvalidInput builds a fresh INVALID_INPUT error.
func InvalidInput(format string, args ...interface{}) *AppError {
	return ErrInvalidInput.WithMessage(format, args...)
}

// InsufficientData builds an INSUFFICIENT_DATA error stating the required minimum.
func InsufficientData(required, actual int) *AppError {
	err := ErrInsufficientData.WithMessage(
		"insufficient data for temporal analysis: at least %d points required, got %d",
		required, actual,
	)
	err.Details["required"] = required
	err.Details["actual"] = actual
	return err
}

// NotFound builds a fresh NOT_FOUND error.
func NotFound(format string, args ...interface{}) *AppError {
	return ErrNotFound.WithMessage(format, args...)
}
