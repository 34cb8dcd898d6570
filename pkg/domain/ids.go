// Package domain holds the identifier and value primitives shared across the
// intake, identity, lifecycle and payment packages. Parse functions are the
// trust boundary: handlers and the collaborator client call them on every
// externally supplied value.
package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "rxintake/pkg/domain-errors"
)

// SessionID identifies one browser session. It scopes every Draft Store key.
type SessionID uuid.UUID

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// ParseSessionID parses a non-nil UUID.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}

// Collaborator-assigned identifiers are opaque strings. They are validated for
// shape only; the request-processing API owns their meaning.
var opaqueIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,63}$`)

func parseOpaque(s, label string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if !utf8.ValidString(s) || !opaqueIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return s, nil
}

// LocalRequestPrefix marks identifiers synthesized on this side when the
// collaborator could not be reached. Such requests await reconciliation.
const LocalRequestPrefix = "local-"

// RequestID identifies a treatment request.
type RequestID string

func ParseRequestID(s string) (RequestID, error) {
	v, err := parseOpaque(s, "request ID")
	return RequestID(v), err
}

// NewLocalRequestID synthesizes a reconciliation-pending identifier.
func NewLocalRequestID() RequestID {
	return RequestID(LocalRequestPrefix + uuid.NewString())
}

func (id RequestID) String() string { return string(id) }
func (id RequestID) IsNil() bool    { return id == "" }

// IsLocal reports whether the identifier was synthesized locally.
func (id RequestID) IsLocal() bool { return strings.HasPrefix(string(id), LocalRequestPrefix) }

// PatientID identifies a patient account at the collaborator.
type PatientID string

func ParsePatientID(s string) (PatientID, error) {
	v, err := parseOpaque(s, "patient ID")
	return PatientID(v), err
}

func (id PatientID) String() string { return string(id) }
func (id PatientID) IsNil() bool    { return id == "" }

// PharmacyID identifies a fulfilling pharmacy.
type PharmacyID string

func ParsePharmacyID(s string) (PharmacyID, error) {
	v, err := parseOpaque(s, "pharmacy ID")
	return PharmacyID(v), err
}

func (id PharmacyID) String() string { return string(id) }
func (id PharmacyID) IsNil() bool    { return id == "" }

// ProductID identifies a marketplace product.
type ProductID string

func ParseProductID(s string) (ProductID, error) {
	v, err := parseOpaque(s, "product ID")
	return ProductID(v), err
}

func (id ProductID) String() string { return string(id) }

// PaymentIntentID identifies an outstanding charge intent at the processor.
type PaymentIntentID string

func ParsePaymentIntentID(s string) (PaymentIntentID, error) {
	v, err := parseOpaque(s, "payment intent ID")
	return PaymentIntentID(v), err
}

func (id PaymentIntentID) String() string { return string(id) }
func (id PaymentIntentID) IsNil() bool    { return id == "" }
