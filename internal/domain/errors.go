package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies reconciliation failures
type ErrorKind string

const (
	ErrorKindNotFound              ErrorKind = "NOT_FOUND"
	ErrorKindPreconditionFailed    ErrorKind = "PRECONDITION_FAILED"
	ErrorKindUnauthorized          ErrorKind = "UNAUTHORIZED"
	ErrorKindReceiptInvalid        ErrorKind = "RECEIPT_INVALID"
	ErrorKindEventMismatch         ErrorKind = "EVENT_MISMATCH"
	ErrorKindDataIntegrityConflict ErrorKind = "DATA_INTEGRITY_CONFLICT"
	ErrorKindTransient             ErrorKind = "TRANSIENT"
	ErrorKindInvalidInput          ErrorKind = "INVALID_INPUT"
)

var (
	// ErrNotFound matches any error of kind NotFound
	ErrNotFound = &Error{Kind: ErrorKindNotFound}

	// ErrPreconditionFailed matches any error of kind PreconditionFailed
	ErrPreconditionFailed = &Error{Kind: ErrorKindPreconditionFailed}

	// ErrUnauthorized matches any error of kind Unauthorized
	ErrUnauthorized = &Error{Kind: ErrorKindUnauthorized}

	// ErrReceiptInvalid matches any error of kind ReceiptInvalid
	ErrReceiptInvalid = &Error{Kind: ErrorKindReceiptInvalid}

	// ErrEventMismatch matches any error of kind EventMismatch
	ErrEventMismatch = &Error{Kind: ErrorKindEventMismatch}

	// ErrDataIntegrityConflict matches any error of kind DataIntegrityConflict
	ErrDataIntegrityConflict = &Error{Kind: ErrorKindDataIntegrityConflict}

	// ErrTransient matches any error of kind Transient
	ErrTransient = &Error{Kind: ErrorKindTransient}

	// ErrInvalidInput matches any error of kind InvalidInput
	ErrInvalidInput = &Error{Kind: ErrorKindInvalidInput}
)

// Error is a classified failure carrying a human readable message
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates a classified error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a classified error around a cause
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first classified error in the chain, or "" if none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
