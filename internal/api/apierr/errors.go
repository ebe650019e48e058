package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrie/geohunt/internal/model"
	"github.com/mpetrie/geohunt/internal/services/auth"
	"github.com/mpetrie/geohunt/internal/streetview"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidGameParams   = "INVALID_GAME_PARAMS"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeGameExists          = "GAME_EXISTS"
	CodeGameAlreadyEnded    = "GAME_ALREADY_ENDED"
	CodeGameExpired         = "GAME_EXPIRED"
	CodeQuitWindowClosed    = "QUIT_WINDOW_CLOSED"
	CodeNoImagery           = "NO_IMAGERY"
	CodeImageryUnavailable  = "IMAGERY_UNAVAILABLE"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrGameExists):
		return &httpError{http.StatusConflict, APIError{CodeGameExists, "Game already exists"}}
	case errors.Is(err, model.ErrGameAlreadyEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyEnded, "Game has already ended"}}
	case errors.Is(err, model.ErrGameExpired):
		return &httpError{http.StatusForbidden, APIError{CodeGameExpired, "Game time limit has elapsed"}}
	case errors.Is(err, model.ErrQuitWindowClosed):
		return &httpError{http.StatusForbidden, APIError{CodeQuitWindowClosed, "Quit grace period has elapsed"}}
	case errors.Is(err, model.ErrInvalidGameParams):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameParams, "Invalid game parameters"}}
	case errors.Is(err, model.ErrSolutionUnavailable):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNoImagery, "No imagery found within the requested radius"}}

	// Map provider errors
	case errors.Is(err, streetview.ErrUnavailable):
		return &httpError{http.StatusBadGateway, APIError{CodeImageryUnavailable, "Imagery provider unavailable"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
