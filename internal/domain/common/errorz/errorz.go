package errorz

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindConflict
	KindForbidden
	KindUnauthorized
	KindValidation
)

// Error is the error type surfaced by services. Code is a stable
// machine-readable identifier, Message is safe to return to the caller.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) WithDetails(details ...string) *Error {
	clone := *e
	clone.Details = append(clone.Details, details...)
	return &clone
}

// Wrap attaches an underlying cause without changing what the caller sees.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.err = err
	return &clone
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func BadRequest(code, message string) *Error {
	return &Error{Kind: KindBadRequest, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func Validation(message string, details []string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

// KindOf extracts the Kind of err, or KindInternal for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrInvalidCredentials = Unauthorized("INVALID_CREDENTIALS", "invalid credentials")
	ErrAccountLocked      = Unauthorized("ACCOUNT_LOCKED", "account is locked, please try again later")
	ErrInvalidToken       = Unauthorized("INVALID_TOKEN", "invalid or expired token")
	ErrNoOrganization     = Unauthorized("NO_ORGANIZATION", "user has no organization access")
	ErrNotMember          = Forbidden("NOT_A_MEMBER", "user does not belong to this organization")
	ErrOrgInactive        = Forbidden("ORGANIZATION_INACTIVE", "organization is not active")
)
