// Package handler exposes the identity resolving party over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rxintake/internal/identity/authority"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/httputil"
	"rxintake/pkg/requestcontext"
)

// Service defines the resolving party operations.
type Service interface {
	Resolve(ctx context.Context, email id.Email) (*authority.ResolveResult, error)
	Verify(ctx context.Context, email id.Email, code string) (*authority.VerifyResult, error)
	Resend(ctx context.Context, email id.Email) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identity/resolve", h.HandleResolve)
	r.Post("/identity/verify", h.HandleVerify)
	r.Post("/identity/resend", h.HandleResend)
}

// HandleResolve handles POST /identity/resolve.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Resolve(ctx, req.parsedEmail)
	if err != nil {
		h.logger.ErrorContext(ctx, "identity resolution failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResolveResponse{Status: result.Status, Token: result.Token})
}

// HandleVerify handles POST /identity/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Verify(ctx, req.parsedEmail, req.Code)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeInvalidCode) && !dErrors.HasCode(err, dErrors.CodeCodeExpired) {
			h.logger.ErrorContext(ctx, "code verification failed", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{Token: result.Token})
}

// HandleResend handles POST /identity/resend.
func (h *Handler) HandleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EmailRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.Resend(ctx, req.parsedEmail); err != nil {
		h.logger.ErrorContext(ctx, "code resend failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, ResendResponse{Status: "sent"})
}
