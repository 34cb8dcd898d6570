package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"rxintake/internal/draftstore"
	"rxintake/internal/intake"
	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	"rxintake/internal/wizard"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/httputil"
	"rxintake/pkg/requestcontext"
)

// IntakeService drives the questionnaire for one browser session.
type IntakeService interface {
	SetPostcode(ctx context.Context, sess *draftstore.Session, raw string) error
	Enter(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
	State(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
	Answer(ctx context.Context, sess *draftstore.Session, step wizard.Step, answers wizard.Answers) (*intake.State, error)
	Next(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
	Back(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
	VerifyCode(ctx context.Context, sess *draftstore.Session, code string) (*intake.State, error)
	Resend(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
	Reconcile(ctx context.Context, sess *draftstore.Session) (*intake.State, error)
}

// PaymentService is the cart and both payment checkpoints.
type PaymentService interface {
	SetCart(ctx context.Context, sess *draftstore.Session, products []models.SelectedProduct) (*models.Cart, error)
	Cart(ctx context.Context, sess *draftstore.Session) (*models.Cart, error)
	BeginConsultation(ctx context.Context, sess *draftstore.Session) (*payment.Intent, error)
	ConfirmConsultation(ctx context.Context, sess *draftstore.Session) (*payment.Result, error)
	BeginProduct(ctx context.Context, sess *draftstore.Session) (*payment.Intent, error)
	ConfirmProduct(ctx context.Context, sess *draftstore.Session) (*payment.Result, error)
}

// LifecycleService serves the role views.
type LifecycleService interface {
	PatientStatus(ctx context.Context, sess *draftstore.Session) (lifecycle.PatientView, error)
	ClinicianQueue(ctx context.Context) (lifecycle.ClinicianView, error)
	Approve(ctx context.Context, requestID id.RequestID) (*lifecycle.Request, error)
	Decline(ctx context.Context, requestID id.RequestID, reason string) (*lifecycle.Request, error)
	PharmacyQueue(ctx context.Context, pharmacyID id.PharmacyID) (lifecycle.PharmacyView, error)
	Advance(ctx context.Context, pharmacyID id.PharmacyID, requestID id.RequestID, to lifecycle.Status) (*lifecycle.Request, error)
	RefreshMany(ctx context.Context, requestIDs []id.RequestID) ([]lifecycle.Request, error)
}

type Handler struct {
	intake    IntakeService
	payment   PaymentService
	lifecycle LifecycleService
	store     draftstore.Store
	logger    *slog.Logger
}

func New(intake IntakeService, payment PaymentService, lifecycle LifecycleService, store draftstore.Store, logger *slog.Logger) *Handler {
	return &Handler{
		intake:    intake,
		payment:   payment,
		lifecycle: lifecycle,
		store:     store,
		logger:    logger,
	}
}

// RegisterPatient mounts the browser-session routes.
func (h *Handler) RegisterPatient(r chi.Router) {
	r.Post("/intake/postcode", h.HandleSetPostcode)
	r.Post("/intake/enter", h.withState(h.intake.Enter))
	r.Get("/intake/state", h.withState(h.intake.State))
	r.Post("/intake/answer/{step}", h.HandleAnswer)
	r.Post("/intake/next", h.withState(h.intake.Next))
	r.Post("/intake/back", h.withState(h.intake.Back))
	r.Post("/intake/verify", h.HandleVerify)
	r.Post("/intake/resend", h.withState(h.intake.Resend))
	r.Post("/intake/reconcile", h.withState(h.intake.Reconcile))

	r.Get("/cart", h.HandleGetCart)
	r.Put("/cart", h.HandleSetCart)

	r.Post("/payments/consultation", h.withIntent(h.payment.BeginConsultation))
	r.Post("/payments/consultation/confirm", h.withResult(h.payment.ConfirmConsultation))
	r.Post("/payments/product", h.withIntent(h.payment.BeginProduct))
	r.Post("/payments/product/confirm", h.withResult(h.payment.ConfirmProduct))

	r.Get("/requests/mine", h.HandlePatientStatus)
}

// RegisterStaff mounts the clinician and pharmacy routes. The caller must
// put a bearer requirement in front of them.
func (h *Handler) RegisterStaff(r chi.Router) {
	r.Get("/clinician/queue", h.HandleClinicianQueue)
	r.Post("/clinician/requests/{id}/approve", h.HandleApprove)
	r.Post("/clinician/requests/{id}/decline", h.HandleDecline)
	r.Get("/pharmacy/{pharmacyID}/orders", h.HandlePharmacyQueue)
	r.Post("/pharmacy/{pharmacyID}/orders/{id}/status", h.HandleAdvance)
	r.Get("/requests/status", h.HandleStatuses)
}

func (h *Handler) session(r *http.Request) *draftstore.Session {
	return draftstore.Bind(h.store, requestcontext.SessionID(r.Context()))
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal || dErrors.IsRetryable(err) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
	} else {
		h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) withState(op func(context.Context, *draftstore.Session) (*intake.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		st, err := op(ctx, h.session(r))
		if err != nil {
			h.fail(ctx, w, "intake operation failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, st)
	}
}

func (h *Handler) withIntent(op func(context.Context, *draftstore.Session) (*payment.Intent, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		intent, err := op(ctx, h.session(r))
		if err != nil {
			h.fail(ctx, w, "payment could not start", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, intent)
	}
}

func (h *Handler) withResult(op func(context.Context, *draftstore.Session) (*payment.Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		res, err := op(ctx, h.session(r))
		if err != nil {
			h.fail(ctx, w, "payment confirmation failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

// HandleSetPostcode handles POST /intake/postcode.
func (h *Handler) HandleSetPostcode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PostcodeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	if err := h.intake.SetPostcode(ctx, h.session(r), req.Postcode); err != nil {
		h.fail(ctx, w, "postcode rejected", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAnswer handles POST /intake/answer/{step}.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	step, err := wizard.ParseStep(chi.URLParam(r, "step"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AnswerRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	st, err := h.intake.Answer(ctx, h.session(r), step, req.Answers)
	if err != nil {
		h.fail(ctx, w, "answers rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

// HandleVerify handles POST /intake/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CodeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	st, err := h.intake.VerifyCode(ctx, h.session(r), req.Code)
	if err != nil {
		h.fail(ctx, w, "code verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

// HandleGetCart handles GET /cart.
func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.payment.Cart(ctx, h.session(r))
	if err != nil {
		h.fail(ctx, w, "cart unavailable", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cart)
}

// HandleSetCart handles PUT /cart.
func (h *Handler) HandleSetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CartRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	cart, err := h.payment.SetCart(ctx, h.session(r), req.selected)
	if err != nil {
		h.fail(ctx, w, "cart rejected", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cart)
}

// HandlePatientStatus handles GET /requests/mine.
func (h *Handler) HandlePatientStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.lifecycle.PatientStatus(ctx, h.session(r))
	if err != nil {
		h.fail(ctx, w, "request status unavailable", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleClinicianQueue handles GET /clinician/queue.
func (h *Handler) HandleClinicianQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.lifecycle.ClinicianQueue(ctx)
	if err != nil {
		h.fail(ctx, w, "clinician queue unavailable", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleApprove handles POST /clinician/requests/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := h.lifecycle.Approve(ctx, requestID)
	if err != nil {
		h.fail(ctx, w, "approval failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

// HandleDecline handles POST /clinician/requests/{id}/decline.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, ok := httputil.DecodeAndPrepare[DeclineRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	req, err := h.lifecycle.Decline(ctx, requestID, body.Reason)
	if err != nil {
		h.fail(ctx, w, "decline failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

// HandlePharmacyQueue handles GET /pharmacy/{pharmacyID}/orders.
func (h *Handler) HandlePharmacyQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pharmacyID, err := id.ParsePharmacyID(chi.URLParam(r, "pharmacyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.lifecycle.PharmacyQueue(ctx, pharmacyID)
	if err != nil {
		h.fail(ctx, w, "pharmacy queue unavailable", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// HandleAdvance handles POST /pharmacy/{pharmacyID}/orders/{id}/status.
func (h *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pharmacyID, err := id.ParsePharmacyID(chi.URLParam(r, "pharmacyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	requestID, err := id.ParseRequestID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	body, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	req, err := h.lifecycle.Advance(ctx, pharmacyID, requestID, body.parsed)
	if err != nil {
		h.fail(ctx, w, "status update failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, req)
}

const maxStatusBatch = 50

// HandleStatuses handles GET /requests/status?id=...&id=....
func (h *Handler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query()["id"]
	if len(raw) == 0 || len(raw) > maxStatusBatch {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "between 1 and 50 ids are required"))
		return
	}
	ids := make([]id.RequestID, 0, len(raw))
	for _, v := range raw {
		requestID, err := id.ParseRequestID(v)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if !slices.Contains(ids, requestID) {
			ids = append(ids, requestID)
		}
	}
	requests, err := h.lifecycle.RefreshMany(ctx, ids)
	if err != nil {
		h.fail(ctx, w, "status refresh failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, requests)
}
