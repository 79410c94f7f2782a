package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goodluckfit/fitauth/internal/model"
	"github.com/goodluckfit/fitauth/internal/services/auth"
	"github.com/goodluckfit/fitauth/internal/token"
)

// ErrorResponse is the uniform failure envelope: code carries the
// HTTP-equivalent status of the failure
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// httpError combines an HTTP status with its response message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: he.message,
		Code:    he.status,
	})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for already-shaped errors
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Model errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "user not found"}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusBadRequest, "username already exists"}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "incorrect password"}
	case errors.Is(err, auth.ErrOperationFailed):
		return &httpError{http.StatusBadRequest, "operation failed"}

	// Token errors
	case errors.Is(err, token.ErrTokenExpired):
		return &httpError{http.StatusUnauthorized, "token has expired"}
	case errors.Is(err, token.ErrTokenInvalid):
		return &httpError{http.StatusUnauthorized, "invalid token"}

	// Anything unexpected surfaces as a 500 carrying the error message
	default:
		return &httpError{http.StatusInternalServerError, err.Error()}
	}
}

// New creates an error with an explicit HTTP-equivalent status
func New(status int, message string) error {
	return &httpError{status, message}
}

// NewInvalidRequestError creates a validation error (400)
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "authentication required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "internal server error"}
}
