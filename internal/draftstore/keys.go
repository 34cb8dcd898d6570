package draftstore

import (
	dErrors "rxintake/pkg/domain-errors"
)

// Key names one slot of per-session state. The set is closed; each key has a
// single owning package that writes it. Other packages may read.
type Key string

const (
	// KeyPendingRequestID holds the submitted request reference. Owner: intake.
	KeyPendingRequestID Key = "pending-request-id"
	// KeyDraftPostcode is written upstream before the wizard starts. Owner: intake (entry).
	KeyDraftPostcode Key = "draft-postcode"
	// KeyDraftRequest holds the accumulating draft. Owner: wizard via intake.
	KeyDraftRequest Key = "draft-request"
	// KeyWizardStep is the step pointer. Always written after KeyDraftRequest.
	KeyWizardStep Key = "wizard-step"
	// KeyRecognizedProfile caches the identity resolution result. Owner: identity.
	KeyRecognizedProfile Key = "recognized-user-profile"
	// KeySessionToken holds the email-bound bearer token. Owner: identity.
	KeySessionToken Key = "session-token"
	// KeyOTPChallenge marks an outstanding one-time-code challenge. Owner: identity.
	KeyOTPChallenge Key = "otp-challenge"
	// KeySelectedProducts and KeySelectedProductsTotal form the cart. Owner: payment.
	KeySelectedProducts      Key = "selected-products"
	KeySelectedProductsTotal Key = "selected-products-total"
	// KeyConsultationIntent and KeyProductIntent hold outstanding charge intents. Owner: payment.
	KeyConsultationIntent Key = "payment-intent-consultation"
	KeyProductIntent      Key = "payment-intent-product"
	// KeyRequestProjection caches the patient's last observed request. Owner: lifecycle.
	KeyRequestProjection Key = "request-projection"
)

var knownKeys = map[Key]struct{}{
	KeyPendingRequestID:      {},
	KeyDraftPostcode:         {},
	KeyDraftRequest:          {},
	KeyWizardStep:            {},
	KeyRecognizedProfile:     {},
	KeySessionToken:          {},
	KeyOTPChallenge:          {},
	KeySelectedProducts:      {},
	KeySelectedProductsTotal: {},
	KeyConsultationIntent:    {},
	KeyProductIntent:         {},
	KeyRequestProjection:     {},
}

// CartKeys are cleared together after finalization.
var CartKeys = []Key{KeySelectedProducts, KeySelectedProductsTotal}

// IdentityKeys are cleared together when the draft email changes.
var IdentityKeys = []Key{KeySessionToken, KeyRecognizedProfile, KeyOTPChallenge}

func (k Key) String() string { return string(k) }

// Valid reports whether k is one of the declared keys.
func (k Key) Valid() bool {
	_, ok := knownKeys[k]
	return ok
}

// ParseKey validates a key name read from outside the process.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if !k.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown draft key")
	}
	return k, nil
}
