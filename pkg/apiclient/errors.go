package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the administration service.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeAPIUsage          = "API_USAGE"
	CodeConflict          = "CONFLICT"
	CodeValidation        = "VALIDATION_ERROR"
	CodeSecurityViolation = "SECURITY_VIOLATION"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
)

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsAuthError returns true if this is an authentication error.
func (e *APIError) IsAuthError() bool {
	return e.Code == CodeUnauthorized || e.Code == CodeForbidden
}

// IsNotFound returns true if the requested record does not exist.
// The server reports unresolvable lookup input as API_USAGE, which callers
// treat the same way.
func (e *APIError) IsNotFound() bool {
	return e.Code == CodeNotFound || e.Code == CodeAPIUsage
}

// IsConflict returns true if this is a constraint violation.
func (e *APIError) IsConflict() bool {
	return e.Code == CodeConflict
}

// IsValidationError returns true if this is a validation error.
func (e *APIError) IsValidationError() bool {
	return e.Code == CodeValidation || e.Code == CodeConflict
}

// IsSecurityViolation returns true if the server rejected the caller's
// credentials or privileges.
func (e *APIError) IsSecurityViolation() bool {
	return e.Code == CodeSecurityViolation
}

// codeForStatus guesses an error code for responses that do not carry one.
func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	default:
		return ""
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an APIError for a missing record.
func IsNotFound(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.IsNotFound()
}

// IsConflict reports whether err is an APIError for a constraint violation.
func IsConflict(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.IsConflict()
}

// IsValidation reports whether err is an APIError for rejected input,
// constraint violations included.
func IsValidation(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.IsValidationError()
}

// IsSecurityViolation reports whether err is an APIError for rejected
// credentials or privileges.
func IsSecurityViolation(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.IsSecurityViolation()
}

// IsAuthError reports whether err is an APIError for a missing or rejected
// session.
func IsAuthError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.IsAuthError()
}

// Message returns the server-supplied message of an APIError, or err.Error().
func Message(err error) string {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
