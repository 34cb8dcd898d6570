// Package authority is a reference identity resolving party. It owns patient
// accounts, trusted devices and one-time codes, and issues email-bound
// identity tokens. The intake service talks to it over HTTP only.
package authority

import (
	"time"

	id "rxintake/pkg/domain"
)

// ResolveStatus is the wire outcome of a resolve call.
type ResolveStatus string

const (
	StatusFirstTime   ResolveStatus = "first_time"
	StatusKnownDevice ResolveStatus = "known_device"
	StatusOTPRequired ResolveStatus = "otp_required"
)

// Account is a known patient.
type Account struct {
	Email     id.Email     `json:"email"`
	PatientID id.PatientID `json:"patient_id"`
}

// TrustedDevice records a device fingerprint that completed a code challenge.
type TrustedDevice struct {
	Email       id.Email  `json:"email"`
	Fingerprint string    `json:"fingerprint"`
	TrustedAt   time.Time `json:"trusted_at"`
}

// Challenge is the single live one-time code for an email. Only the bcrypt
// hash of the code is kept.
type Challenge struct {
	Email     id.Email  `json:"email"`
	CodeHash  string    `json:"code_hash"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the challenge can no longer be verified at now.
func (c *Challenge) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ResolveResult is returned by Service.Resolve.
type ResolveResult struct {
	Status    ResolveStatus
	Token     string
	PatientID id.PatientID
}

// VerifyResult is returned by Service.Verify.
type VerifyResult struct {
	Token     string
	PatientID id.PatientID
}
