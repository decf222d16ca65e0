package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateEmail is returned when registering an email already on file.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login failure. Unknown email, wrong
	// password and deactivated account are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrTokenInvalid is returned for malformed, badly signed, or expired tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrUnauthenticated is returned when a protected operation is called
	// without a verified identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when a verified identity lacks the required
	// role or ownership. Distinct from ErrUnauthenticated.
	ErrForbidden = errors.New("insufficient privileges")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrBlendNotFound is returned when a blend does not exist.
	ErrBlendNotFound = errors.New("blend not found")
	// ErrUnknownRole is returned when a role string cannot be parsed where a
	// strict parse is required.
	ErrUnknownRole = errors.New("unknown role")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrBlendNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BLEND_NOT_FOUND")
	case errors.Is(err, ErrUnknownRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_ROLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
