package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Draft store backends, OTP stores and
// the collaborator client return these (optionally wrapped) so services can
// translate them into domain errors.
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrStale        = errors.New("stale")
)
