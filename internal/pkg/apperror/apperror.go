// internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRecordNotFound is returned by repositories when a lookup matches nothing
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicate is returned by repositories on a unique constraint violation
	ErrDuplicate = errors.New("duplicate record")
)

// Kind classifies an error for the API boundary
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUpstream     Kind = "upstream"
	KindInternal     Kind = "internal"
	KindRateLimited  Kind = "rate_limited"
)

// HTTPStatus returns the response status for the kind
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstream:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is the typed error carried from services to handlers
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a missing or malformed input
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent entity
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized reports missing or invalid credentials
func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an authenticated caller acting outside its rights
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Upstream wraps a failure of an external collaborator (image host, payment provider)
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// Internal wraps an unexpected failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for untyped errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsNotFound reports whether err is a repository miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Body is the JSON error envelope returned to clients
type Body struct {
	Error BodyError `json:"error"`
}

// BodyError is the payload of Body
type BodyError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// NewBody builds the envelope for kind. Internal and upstream failures get a
// generic message so that causes never reach the client.
func NewBody(kind Kind, message string) Body {
	switch kind {
	case KindInternal:
		message = "internal server error"
	case KindUpstream:
		message = "upstream service unavailable"
	}
	return Body{Error: BodyError{Kind: kind, Message: message}}
}

// ToBody converts any error into its client envelope
func ToBody(err error) Body {
	var appErr *Error
	if errors.As(err, &appErr) {
		return NewBody(appErr.Kind, appErr.Message)
	}
	return NewBody(KindInternal, "")
}
