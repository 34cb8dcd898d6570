package payment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"rxintake/internal/audit"
	"rxintake/internal/draftstore"
	"rxintake/internal/identity"
	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/requestcontext"
)

// Processor is the payment processor as exposed by the request-processing API.
// CreateIntent calls carrying the same idempotency key yield the same intent.
type Processor interface {
	CreateIntent(ctx context.Context, checkpoint Checkpoint, requestID id.RequestID, idempotencyKey string) (*Intent, error)
	IntentStatus(ctx context.Context, intentID id.PaymentIntentID) (*IntentState, error)
	CancelIntent(ctx context.Context, intentID id.PaymentIntentID) error
}

// Finalizer hands a paid request to the clinician queue.
type Finalizer interface {
	Finalize(ctx context.Context, requestID id.RequestID, products []lifecycle.Product, total decimal.Decimal, token string) (*lifecycle.Request, error)
}

// Tracker is the part of the lifecycle tracker the product checkpoint needs.
type Tracker interface {
	Refresh(ctx context.Context, sess *draftstore.Session, requestID id.RequestID) (*lifecycle.Request, error)
	MarkPaidOptimistic(ctx context.Context, sess *draftstore.Session, current *lifecycle.Request) (*lifecycle.Request, error)
}

// Identity supplies the token attached to finalization.
type Identity interface {
	TokenFor(ctx context.Context, sess *draftstore.Session, email string) (string, identity.Outcome, error)
}

type Metrics interface {
	IncPaymentOutcome(checkpoint, result string)
}

// Config fixes the consultation fee.
type Config struct {
	ConsultationFee decimal.Decimal
	Currency        string
}

type Gate struct {
	processor      Processor
	finalizer      Finalizer
	tracker        Tracker
	identity       Identity
	config         Config
	logger         *slog.Logger
	metrics        Metrics
	auditPublisher audit.Publisher
	inflight       singleflight.Group
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(g *Gate) { g.auditPublisher = publisher }
}

func NewGate(processor Processor, finalizer Finalizer, tracker Tracker, identity Identity, cfg Config, opts ...Option) *Gate {
	g := &Gate{
		processor: processor,
		finalizer: finalizer,
		tracker:   tracker,
		identity:  identity,
		config:    cfg,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetCart replaces the marketplace selection. The total is always derived
// from the line items.
func (g *Gate) SetCart(ctx context.Context, sess *draftstore.Session, products []models.SelectedProduct) (*models.Cart, error) {
	cart, err := models.NewCart(products)
	if err != nil {
		return nil, err
	}
	if err := sess.Save(ctx, draftstore.KeySelectedProducts, cart.Products); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx, draftstore.KeySelectedProductsTotal, cart.Total); err != nil {
		return nil, err
	}
	return cart, nil
}

// Cart loads the stored selection. Missing keys yield an empty cart.
func (g *Gate) Cart(ctx context.Context, sess *draftstore.Session) (*models.Cart, error) {
	cart := &models.Cart{}
	if _, err := sess.Load(ctx, draftstore.KeySelectedProducts, &cart.Products); err != nil {
		return nil, err
	}
	if _, err := sess.Load(ctx, draftstore.KeySelectedProductsTotal, &cart.Total); err != nil {
		return nil, err
	}
	return cart, nil
}

// BeginConsultation returns the intent for the consultation fee, reusing an
// outstanding one for the same request.
func (g *Gate) BeginConsultation(ctx context.Context, sess *draftstore.Session) (*Intent, error) {
	return once(g, sess, CheckpointConsultation, "begin", func() (*Intent, error) {
		return g.beginConsultation(ctx, sess)
	})
}

func (g *Gate) beginConsultation(ctx context.Context, sess *draftstore.Session) (*Intent, error) {
	pending, err := g.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	cart, err := g.Cart(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !cart.Complete() {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "select products before paying the consultation fee", dErrors.RedirectMarketplace)
	}
	return g.begin(ctx, sess, CheckpointConsultation, draftstore.KeyConsultationIntent, pending.ID, g.config.ConsultationFee)
}

// ConfirmConsultation checks the consultation intent. On success the request
// is finalized first; the cart, draft and intent are cleared only after the
// collaborator accepted it.
func (g *Gate) ConfirmConsultation(ctx context.Context, sess *draftstore.Session) (*Result, error) {
	return once(g, sess, CheckpointConsultation, "confirm", func() (*Result, error) {
		return g.confirmConsultation(ctx, sess)
	})
}

func (g *Gate) confirmConsultation(ctx context.Context, sess *draftstore.Session) (*Result, error) {
	pending, err := g.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	intent, state, err := g.settle(ctx, sess, CheckpointConsultation, draftstore.KeyConsultationIntent, pending.ID)
	if err != nil || state.Status != IntentSucceeded {
		return g.result(CheckpointConsultation, intent, state, nil), err
	}

	var draft models.Draft
	found, err := sess.Load(ctx, draftstore.KeyDraftRequest, &draft)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "questionnaire not found", dErrors.RedirectWizard)
	}
	cart, err := g.Cart(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !cart.Complete() {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "product selection is incomplete", dErrors.RedirectMarketplace)
	}
	token, _, err := g.identity.TokenFor(ctx, sess, draft.Email)
	if err != nil {
		return nil, err
	}

	products := make([]lifecycle.Product, 0, len(cart.Products))
	for _, p := range cart.Products {
		products = append(products, lifecycle.Product{ProductID: p.ProductID, Name: p.Name, Quantity: p.Quantity, UnitPrice: p.UnitPrice})
	}
	finalized, err := g.finalizer.Finalize(ctx, pending.ID, products, cart.Total, token)
	if err != nil {
		g.logger.WarnContext(ctx, "finalization failed after successful consultation payment",
			"request_id", pending.ID.String(),
			"intent_id", intent.ID.String(),
			"error", err,
		)
		return nil, err
	}

	if err := sess.Save(ctx, draftstore.KeyRequestProjection, finalized); err != nil {
		return nil, err
	}
	cleanup := append([]draftstore.Key{}, draftstore.CartKeys...)
	cleanup = append(cleanup, draftstore.KeyDraftRequest, draftstore.KeyWizardStep, draftstore.KeyConsultationIntent)
	if err := sess.Remove(ctx, cleanup...); err != nil {
		return nil, err
	}

	audit.Record(ctx, g.logger, g.auditPublisher, audit.ActionRequestFinalized, pending.ID.String(),
		"intent_id", intent.ID.String())
	return g.result(CheckpointConsultation, intent, state, finalized), nil
}

// BeginProduct returns the product intent. It is only offered while a fresh
// read reports the request APPROVED; otherwise no charge is attempted.
func (g *Gate) BeginProduct(ctx context.Context, sess *draftstore.Session) (*Intent, error) {
	return once(g, sess, CheckpointProduct, "begin", func() (*Intent, error) {
		return g.beginProduct(ctx, sess)
	})
}

func (g *Gate) beginProduct(ctx context.Context, sess *draftstore.Session) (*Intent, error) {
	pending, err := g.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	current, err := g.tracker.Refresh(ctx, sess, pending.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != lifecycle.StatusApproved || current.PendingReconcile {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "product payment is only available once the request is approved")
	}
	amount := current.ProductTotal()
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "request has no payable products")
	}
	return g.begin(ctx, sess, CheckpointProduct, draftstore.KeyProductIntent, pending.ID, amount)
}

// ConfirmProduct checks the product intent and, on success, marks the
// request PAID locally until the collaborator confirms it.
func (g *Gate) ConfirmProduct(ctx context.Context, sess *draftstore.Session) (*Result, error) {
	return once(g, sess, CheckpointProduct, "confirm", func() (*Result, error) {
		return g.confirmProduct(ctx, sess)
	})
}

func (g *Gate) confirmProduct(ctx context.Context, sess *draftstore.Session) (*Result, error) {
	pending, err := g.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	intent, state, err := g.settle(ctx, sess, CheckpointProduct, draftstore.KeyProductIntent, pending.ID)
	if err != nil || state.Status != IntentSucceeded {
		return g.result(CheckpointProduct, intent, state, nil), err
	}

	current, err := g.tracker.Refresh(ctx, sess, pending.ID)
	if err != nil {
		return nil, err
	}
	if current.Status == lifecycle.StatusApproved {
		current, err = g.tracker.MarkPaidOptimistic(ctx, sess, current)
		if err != nil {
			return nil, err
		}
	}
	if err := sess.Remove(ctx, draftstore.KeyProductIntent); err != nil {
		return nil, err
	}
	return g.result(CheckpointProduct, intent, state, current), nil
}

// once collapses concurrent calls for the same session, checkpoint and action
// into a single execution whose result every caller shares.
func once[T any](g *Gate, sess *draftstore.Session, checkpoint Checkpoint, action string, fn func() (T, error)) (T, error) {
	v, err, _ := g.inflight.Do(sess.ID().String()+":"+string(checkpoint)+":"+action, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err
}

func (g *Gate) pendingRequest(ctx context.Context, sess *draftstore.Session) (*models.PendingRequest, error) {
	var pending models.PendingRequest
	found, err := sess.Load(ctx, draftstore.KeyPendingRequestID, &pending)
	if err != nil {
		return nil, err
	}
	if !found || pending.ID.IsNil() {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "no submitted request found", dErrors.RedirectWizard)
	}
	if pending.Degraded || pending.ID.IsLocal() {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "request is awaiting reconciliation", dErrors.RedirectWizard)
	}
	return &pending, nil
}

func (g *Gate) begin(ctx context.Context, sess *draftstore.Session, checkpoint Checkpoint, key draftstore.Key, requestID id.RequestID, amount decimal.Decimal) (*Intent, error) {
	var existing Intent
	found, err := sess.Load(ctx, key, &existing)
	if err != nil {
		return nil, err
	}
	idempotencyKey := IdempotencyKey(requestID, checkpoint, "")
	if found && existing.RequestID == requestID {
		state, err := g.processor.IntentStatus(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if state.Status != IntentCanceled {
			return &existing, nil
		}
		idempotencyKey = IdempotencyKey(requestID, checkpoint, existing.ID)
	}

	intent, err := g.processor.CreateIntent(ctx, checkpoint, requestID, idempotencyKey)
	if err != nil {
		g.count(checkpoint, "create_failed")
		return nil, err
	}
	if !intent.Amount.Equal(amount) {
		g.count(checkpoint, "amount_mismatch")
		g.discard(ctx, intent, requestID)
		return nil, dErrors.New(dErrors.CodeConflict, "payment amount does not match the expected total")
	}
	if g.config.Currency != "" && !strings.EqualFold(intent.Currency, g.config.Currency) {
		g.count(checkpoint, "amount_mismatch")
		g.discard(ctx, intent, requestID)
		return nil, dErrors.New(dErrors.CodeConflict, "payment currency does not match")
	}
	intent.RequestID = requestID
	intent.Checkpoint = checkpoint
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = requestcontext.Now(ctx)
	}
	if err := sess.Save(ctx, key, intent); err != nil {
		return nil, err
	}
	g.count(checkpoint, "intent_created")
	audit.Record(ctx, g.logger, g.auditPublisher, audit.ActionPaymentIntentCreated, requestID.String(),
		"checkpoint", string(checkpoint), "intent_id", intent.ID.String())
	return intent, nil
}

// discard cancels an intent that will never be stored so it cannot be
// charged later.
func (g *Gate) discard(ctx context.Context, intent *Intent, requestID id.RequestID) {
	if err := g.processor.CancelIntent(ctx, intent.ID); err != nil {
		g.logger.WarnContext(ctx, "failed to cancel rejected payment intent",
			"request_id", requestID.String(),
			"intent_id", intent.ID.String(),
			"error", err,
		)
	}
}

// IdempotencyKey identifies one CreateIntent attempt. An intent that replaces
// a canceled one is keyed by the canceled intent so the processor does not
// hand the canceled intent back.
func IdempotencyKey(requestID id.RequestID, checkpoint Checkpoint, replaces id.PaymentIntentID) string {
	key := requestID.String() + ":" + string(checkpoint)
	if !replaces.IsNil() {
		key += ":" + replaces.String()
	}
	return key
}

// settle queries the stored intent. A failed intent is kept so the user can
// retry the card; a canceled one is dropped so the next Begin creates a new one.
func (g *Gate) settle(ctx context.Context, sess *draftstore.Session, checkpoint Checkpoint, key draftstore.Key, requestID id.RequestID) (*Intent, *IntentState, error) {
	var intent Intent
	found, err := sess.Load(ctx, key, &intent)
	if err != nil {
		return nil, nil, err
	}
	if !found || intent.RequestID != requestID {
		return nil, nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "no payment in progress", dErrors.RedirectPayment)
	}
	state, err := g.processor.IntentStatus(ctx, intent.ID)
	if err != nil {
		return &intent, nil, err
	}

	switch state.Status {
	case IntentSucceeded:
		g.count(checkpoint, "succeeded")
		audit.Record(ctx, g.logger, g.auditPublisher, audit.ActionPaymentSucceeded, requestID.String(),
			"checkpoint", string(checkpoint), "intent_id", intent.ID.String())
	case IntentFailed, IntentCanceled:
		g.count(checkpoint, string(state.Status))
		audit.Record(ctx, g.logger, g.auditPublisher, audit.ActionPaymentFailed, requestID.String(),
			"checkpoint", string(checkpoint), "intent_id", intent.ID.String(), "status", string(state.Status))
		if state.Status == IntentCanceled {
			if err := sess.Remove(ctx, key); err != nil {
				return &intent, state, err
			}
		}
		reason := strings.TrimSpace(state.FailureReason)
		if reason == "" {
			reason = "payment was not completed"
		}
		return &intent, state, dErrors.WithRedirect(dErrors.CodePaymentDeclined, reason, dErrors.RedirectPayment)
	}
	return &intent, state, nil
}

func (g *Gate) result(checkpoint Checkpoint, intent *Intent, state *IntentState, r *lifecycle.Request) *Result {
	if intent == nil || state == nil {
		return nil
	}
	return &Result{Checkpoint: checkpoint, IntentID: intent.ID, Status: state.Status, Request: r}
}

func (g *Gate) count(checkpoint Checkpoint, result string) {
	if g.metrics != nil {
		g.metrics.IncPaymentOutcome(string(checkpoint), result)
	}
}
