package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every expected business outcome. Kinds are returned
// as first-class results, never panicked; only genuinely unexpected failures
// (store unreachable) surface as KindUnavailable.
type ErrorKind string

const (
	KindUnauthenticated      ErrorKind = "unauthenticated"
	KindForbidden            ErrorKind = "forbidden"
	KindNotFound             ErrorKind = "not_found"
	KindInvalidTransition    ErrorKind = "invalid_transition"
	KindDuplicateApplication ErrorKind = "duplicate_application"
	KindPrivateKeyRequired   ErrorKind = "private_key_required"
	KindPrivateKeyInvalid    ErrorKind = "private_key_invalid"
	KindValidationFailed     ErrorKind = "validation_failed"
	KindUnavailable          ErrorKind = "unavailable"
)

// Error carries enough structured context (entity, id, current state,
// required role) for a caller to render a precise message without parsing
// free text.
type Error struct {
	Kind         ErrorKind
	Entity       string
	ID           string
	CurrentState string
	RequiredRole Role
	Message      string
	cause        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	case KindInvalidTransition:
		return fmt.Sprintf("%s %s is in state %q, transition not allowed", e.Entity, e.ID, e.CurrentState)
	case KindForbidden:
		if e.RequiredRole != "" {
			return fmt.Sprintf("forbidden: %s role required", e.RequiredRole)
		}
		return "forbidden: " + e.Message
	case KindUnavailable:
		return "service unavailable"
	}
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

func ErrUnauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func ErrForbidden(msg string, required Role) *Error {
	return &Error{Kind: KindForbidden, Message: msg, RequiredRole: required}
}

func ErrNotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

func ErrInvalidTransition(entity, id, current string) *Error {
	return &Error{Kind: KindInvalidTransition, Entity: entity, ID: id, CurrentState: current}
}

func ErrDuplicateApplication(entity, msg string) *Error {
	return &Error{Kind: KindDuplicateApplication, Entity: entity, Message: msg}
}

func ErrPrivateKeyRequired() *Error {
	return &Error{Kind: KindPrivateKeyRequired, Entity: "posting", Message: "this posting is private, an access key is required to apply"}
}

func ErrPrivateKeyInvalid() *Error {
	return &Error{Kind: KindPrivateKeyInvalid, Entity: "posting", Message: "invalid access key for this private posting"}
}

func ErrValidation(msg string) *Error {
	return &Error{Kind: KindValidationFailed, Message: msg}
}

// ErrUnavailable wraps an unexpected infrastructure failure. The cause is
// preserved for logging but the caller-facing message carries no detail.
func ErrUnavailable(cause error) *Error {
	return &Error{Kind: KindUnavailable, cause: cause}
}

// KindOf returns the kind of a domain error, or KindUnavailable for any
// error that did not originate from the taxonomy.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnavailable
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
