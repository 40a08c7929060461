package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a resource is absent or, for reads,
	// unpublished.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when an authenticated user is not the owner of
	// the resource they are trying to mutate.
	ErrForbidden = errors.New("permission denied")
	// ErrUnauthorized is returned when no valid identity accompanies the request.
	ErrUnauthorized = errors.New("authentication required")
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountDeactivated is returned when a deactivated account attempts to
	// authenticate.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrInvalidToken is returned when a token is malformed, expired, or of the
	// wrong kind.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ErrorResponse is the JSON error body shared by every endpoint.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// HTTPError carries an HTTP status alongside the response body.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// WithDetails attaches structured details (e.g. a field->message map) to the
// error response.
func (e *HTTPError) WithDetails(details interface{}) *HTTPError {
	e.Details = details
	return e
}

// ToErrorResponse converts an HTTPError to its JSON body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Details: e.Details}
}

// MapToHTTP maps domain errors to HTTP errors. Unknown errors collapse into a
// generic 500 so internal detail never leaks to clients.
func MapToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountDeactivated),
		errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusConflict, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
