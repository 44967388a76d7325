// Package apierr defines the typed error kinds surfaced by the resource
// access core. Handlers translate kinds into HTTP responses; the core never
// uses errors for normal control flow (end of pagination is the absence of a
// next cursor, not an error).
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for translation at the HTTP boundary.
type Kind int

const (
	// KindInvalidArgument marks malformed caller input (bad limit, bad cursor type).
	KindInvalidArgument Kind = iota
	// KindNotFound marks a reference to a record id that does not exist.
	KindNotFound
	// KindValidation marks record fields that fail the schema rules.
	KindValidation
	// KindVersionUnsupported marks a declared API version outside the supported set.
	KindVersionUnsupported
	// KindCacheClosed marks use of the page cache after shutdown.
	KindCacheClosed
)

// Error is the structured failure type crossing the core's boundary.
type Error struct {
	Kind    Kind
	Message string
	// Details carries machine-readable context, e.g. the supported
	// version list for KindVersionUnsupported.
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindCacheClosed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// VersionUnsupported builds a KindVersionUnsupported error carrying the
// supported set so the boundary can list it.
func VersionUnsupported(declared string, supported []string) *Error {
	return &Error{
		Kind:    KindVersionUnsupported,
		Message: fmt.Sprintf("unsupported API version %q", declared),
		Details: map[string]any{"supported_versions": supported},
	}
}

// CacheClosed builds a KindCacheClosed error.
func CacheClosed() *Error {
	return &Error{Kind: KindCacheClosed, Message: "cache is closed"}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
