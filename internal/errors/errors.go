package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthorNotFound is returned when an author is not found.
	ErrAuthorNotFound = errors.New("Author not found")
	// ErrPostNotFound is returned when a blog post is not found.
	ErrPostNotFound = errors.New("Blog not found")
	// ErrDuplicateContact is returned when an author's email or phone number is taken.
	ErrDuplicateContact = errors.New("Email or phone number already exists")
	// ErrEmailRegistered is returned when registering with an existing email.
	ErrEmailRegistered = errors.New("Email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidToken is returned when a bearer token is missing, malformed, or expired.
	ErrInvalidToken = errors.New("Invalid or expired token")
	// ErrNotImage is returned when an uploaded file is not an accepted image type.
	ErrNotImage = errors.New("Only image files are allowed (jpg, png, gif, webp)")
)

// ErrorResponse is the standard API error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, details string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "")
	case errors.Is(err, ErrDuplicateContact), errors.Is(err, ErrEmailRegistered), errors.Is(err, ErrNotImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", err.Error())
	}
}
