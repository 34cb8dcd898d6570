// Package domainerrors defines the coded error type shared by services and
// transports. Services return *Error values; the HTTP layer maps the code to a
// status and the message to an error_description.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error. Codes are stable and appear on the wire.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeBadRequest         Code = "bad_request"
	CodeNotFound           Code = "not_found"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeReauthRequired     Code = "reauth_required"
	CodeInvalidCode        Code = "invalid_code"
	CodeCodeExpired        Code = "code_expired"
	CodePreconditionFailed Code = "precondition_failed"
	CodeInvalidTransition  Code = "invalid_transition"
	CodePaymentDeclined    Code = "payment_declined"
	CodeConflict           Code = "conflict"
	CodeUnavailable        Code = "unavailable"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Redirect names the interactive step a caller should return to when an
// operation cannot proceed. It is a hint for the UI, not a URL.
type Redirect string

const (
	RedirectNone        Redirect = ""
	RedirectStart       Redirect = "start"
	RedirectWizard      Redirect = "wizard"
	RedirectMarketplace Redirect = "marketplace"
	RedirectPayment     Redirect = "payment"
)

// Error is a coded domain error with an optional cause and redirect hint.
type Error struct {
	Code     Code
	Message  string
	Redirect Redirect
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code and message so tests can use errors.Is
// against a freshly constructed value.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

// New builds a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// WithRedirect returns a coded error that tells the caller where to go next.
func WithRedirect(code Code, msg string, redirect Redirect) error {
	return &Error{Code: code, Message: msg, Redirect: redirect}
}

// As extracts the first *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether any coded error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is shorthand for HasCode, kept for call sites that read better as a predicate.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// RedirectOf returns the first redirect hint found in the chain.
func RedirectOf(err error) Redirect {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return RedirectNone
		}
		if de.Redirect != RedirectNone {
			return de.Redirect
		}
		err = de.Err
	}
	return RedirectNone
}

// IsRetryable reports whether the user can retry the same action unchanged.
func IsRetryable(err error) bool {
	return HasCode(err, CodeUnavailable) || HasCode(err, CodeTimeout)
}
