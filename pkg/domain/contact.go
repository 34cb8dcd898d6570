package domain

import (
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"

	dErrors "rxintake/pkg/domain-errors"
)

// Email is a normalized (trimmed, lower-cased) email address.
// Invariant: the value passed govalidator's syntax check at construction.
type Email string

// ParseEmail validates and normalizes an email address.
func ParseEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if !govalidator.StringLength(s, "3", "254") || !govalidator.IsEmail(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid email")
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }
func (e Email) IsNil() bool    { return e == "" }

// Postcode is a five digit German postal code.
type Postcode string

var postcodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// ParsePostcode validates a German postal code.
func ParsePostcode(s string) (Postcode, error) {
	s = strings.TrimSpace(s)
	if !postcodePattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid postcode")
	}
	return Postcode(s), nil
}

func (p Postcode) String() string { return string(p) }
