// Package errs defines the error taxonomy shared by the service and the client.
//
// Every failure in the system falls into one of a small set of kinds. The
// service maps kinds to wire codes on its failure responses; the client maps
// the codes back so callers can branch on the kind while still showing the
// collaborator's message verbatim.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// KindUnknown is the zero value, used for unclassified failures.
	KindUnknown Kind = iota
	// KindValidation marks invalid input caught before any request is sent.
	KindValidation
	// KindAuth marks bad credentials.
	KindAuth
	// KindAuthorization marks a caller attempting an action they may not perform.
	KindAuthorization
	// KindNotFound marks an unknown user, bill or share.
	KindNotFound
	// KindConflict marks duplicate users, already-paid shares and the protected
	// admin account.
	KindConflict
	// KindUnavailable marks a transport-level failure reaching the collaborator.
	KindUnavailable
)

// Wire codes carried in failure responses.
const (
	CodeValidation    = "validation"
	CodeAuth          = "auth"
	CodeAuthorization = "authorization"
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeUnavailable   = "unavailable"
)

// Error is a classified error with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New creates a classified error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Code returns the wire code for err's kind.
func Code(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return CodeValidation
	case KindAuth:
		return CodeAuth
	case KindAuthorization:
		return CodeAuthorization
	case KindNotFound:
		return CodeNotFound
	case KindConflict:
		return CodeConflict
	case KindUnavailable:
		return CodeUnavailable
	default:
		return ""
	}
}

// FromCode builds a classified error from a wire code and message.
// Unknown codes produce a KindUnknown error carrying the message as-is.
func FromCode(code, msg string) *Error {
	kind := KindUnknown
	switch code {
	case CodeValidation:
		kind = KindValidation
	case CodeAuth:
		kind = KindAuth
	case CodeAuthorization:
		kind = KindAuthorization
	case CodeNotFound:
		kind = KindNotFound
	case CodeConflict:
		kind = KindConflict
	case CodeUnavailable:
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Message: msg}
}
