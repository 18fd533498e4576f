package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an application error for HTTP status mapping.
type Type string

const (
	TypeValidation   Type = "VALIDATION"
	TypeUnauthorized Type = "UNAUTHORIZED"
	TypeForbidden    Type = "FORBIDDEN"
	TypeNotFound     Type = "NOT_FOUND"
	TypeUpstream     Type = "UPSTREAM"
	TypeEnrichment   Type = "ENRICHMENT"
	TypeInternal     Type = "INTERNAL"
)

// Error is an application error carrying a client-safe message and an
// HTTP status. The wrapped cause is logged but never sent to clients.
type Error struct {
	Type    Type
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status code for the error type.
func (e *Error) Status() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeForbidden:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeUpstream, TypeEnrichment:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Type: TypeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Type: TypeForbidden, Message: message}
}

func NotFound(resource string, id string) *Error {
	return &Error{Type: TypeNotFound, Message: fmt.Sprintf("%s not found with id of %s", resource, id)}
}

func Upstream(message string, cause error) *Error {
	return &Error{Type: TypeUpstream, Message: message, Cause: cause}
}

// Enrichment marks model output that arrived but could not be used, as
// opposed to Upstream, which marks the call itself failing.
func Enrichment(message string, cause error) *Error {
	return &Error{Type: TypeEnrichment, Message: message, Cause: cause}
}

func Internal(cause error) *Error {
	return &Error{Type: TypeInternal, Message: "Internal server error", Cause: cause}
}

// As unwraps err into an *Error if possible.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
