// Package identity binds a browser session to a resolved patient identity.
// It calls the remote resolving party and keeps the resulting token, the
// pending code challenge and the recognized profile in the draft store, always
// tied to the email they were obtained for.
package identity

import (
	"time"

	id "rxintake/pkg/domain"
)

// Outcome is the trust state of an email for the current browser session.
type Outcome string

const (
	OutcomeNewUser     Outcome = "NEW_USER"
	OutcomeKnownDevice Outcome = "KNOWN_DEVICE"
	OutcomeOTPRequired Outcome = "OTP_REQUIRED"
	// OutcomeVerified is reached from OTP_REQUIRED after a correct code.
	OutcomeVerified Outcome = "VERIFIED"
)

// Authenticated reports whether the outcome carries a token.
func (o Outcome) Authenticated() bool {
	return o == OutcomeKnownDevice || o == OutcomeVerified
}

// ResolveResult is what the resolving party answers to a resolve call.
type ResolveResult struct {
	Outcome Outcome
	Token   string
}

// Binding is the stored session token together with the email it was issued for.
type Binding struct {
	Email    id.Email  `json:"email"`
	Token    string    `json:"token"`
	Outcome  Outcome   `json:"outcome"`
	IssuedAt time.Time `json:"issued_at"`
}

// Challenge marks that a code was dispatched for Email and awaits verification.
type Challenge struct {
	Email    id.Email  `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

// Profile is the recognized-user profile: what the resolving party said about
// Email the last time it was asked.
type Profile struct {
	Email      id.Email  `json:"email"`
	Returning  bool      `json:"returning"`
	Outcome    Outcome   `json:"outcome"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Resolution is returned to the orchestrator after resolve or verify.
type Resolution struct {
	Email   id.Email
	Outcome Outcome
	Token   string
}
