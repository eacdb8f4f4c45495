// Package apperr defines the error taxonomy shared by both tool servers and
// its mapping onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and retry decisions.
type Kind string

const (
	// KindValidation indicates malformed or out-of-range input. Never retried.
	KindValidation Kind = "validation"
	// KindUnauthenticated indicates a missing credential.
	KindUnauthenticated Kind = "unauthenticated"
	// KindForbidden indicates a wrong credential.
	KindForbidden Kind = "forbidden"
	// KindNotFound indicates the resource does not exist upstream.
	KindNotFound Kind = "not_found"
	// KindUpstreamUnavailable indicates retries were exhausted against a
	// transient upstream condition.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	// KindUpstreamRejected indicates the upstream returned a non-retryable
	// error that is not the client's fault (contract mismatch).
	KindUpstreamRejected Kind = "upstream_rejected"
)

// Error is a classified error. Message is safe to return to the caller;
// Cause carries upstream detail for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated creates an unauthenticated error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// UpstreamUnavailable wraps the last transient failure after retries ran out.
func UpstreamUnavailable(msg string, cause error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Message: msg, Cause: cause}
}

// UpstreamRejected wraps a non-retryable upstream rejection.
func UpstreamRejected(msg string, cause error) *Error {
	return &Error{Kind: KindUpstreamRejected, Message: msg, Cause: cause}
}

// KindOf extracts the Kind of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// HTTPStatus maps a kind to its response status. Unclassified errors map to
// 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstreamRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Body is the JSON error payload returned to callers. Upstream internals
// never appear here.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ResponseBody builds the caller-visible payload for err.
func ResponseBody(err error) Body {
	var e *Error
	if errors.As(err, &e) {
		return Body{Error: string(e.Kind), Message: e.Message}
	}
	return Body{Error: "internal", Message: "internal error"}
}
