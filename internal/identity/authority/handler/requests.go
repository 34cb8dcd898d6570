package handler

import (
	"strings"

	"rxintake/internal/identity/authority"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// EmailRequest is the body of POST /identity/resolve and /identity/resend.
type EmailRequest struct {
	Email string `json:"email"`

	parsedEmail id.Email
}

func (r *EmailRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	email, err := id.ParseEmail(r.Email)
	if err != nil {
		return err
	}
	r.parsedEmail = email
	return nil
}

// VerifyRequest is the body of POST /identity/verify.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`

	parsedEmail id.Email
}

func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	email, err := id.ParseEmail(r.Email)
	if err != nil {
		return err
	}
	r.parsedEmail = email
	r.Code = strings.TrimSpace(r.Code)
	if !authority.ValidCodeFormat(r.Code) {
		return dErrors.New(dErrors.CodeInvalidInput, "code must be 6 digits")
	}
	return nil
}

// ResolveResponse is the wire shape of a resolve outcome.
type ResolveResponse struct {
	Status authority.ResolveStatus `json:"status"`
	Token  string                  `json:"token,omitempty"`
}

type VerifyResponse struct {
	Token string `json:"token"`
}

type ResendResponse struct {
	Status string `json:"status"`
}
