package intake

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"rxintake/internal/audit"
	"rxintake/internal/draftstore"
	"rxintake/internal/identity"
	"rxintake/internal/intake/models"
	"rxintake/internal/wizard"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/requestcontext"
)

// Identity is the identity protocol as seen by the wizard.
type Identity interface {
	Resolve(ctx context.Context, sess *draftstore.Session, rawEmail string) (*identity.Resolution, error)
	Verify(ctx context.Context, sess *draftstore.Session, rawEmail, code string) (*identity.Resolution, error)
	Resend(ctx context.Context, sess *draftstore.Session, rawEmail string) error
	EmailChanged(ctx context.Context, sess *draftstore.Session, rawEmail string) error
	TokenFor(ctx context.Context, sess *draftstore.Session, rawEmail string) (string, identity.Outcome, error)
	Pending(ctx context.Context, sess *draftstore.Session) (id.Email, bool, error)
}

// Submitter creates the treatment request at the request-processing API.
type Submitter interface {
	Submit(ctx context.Context, draft *models.Draft, token string) (*models.PendingRequest, error)
}

type Metrics interface {
	IncWizardTransition(step, direction string)
	IncWizardExit(exit string)
	IncSubmission(result string)
}

type Service struct {
	identity       Identity
	submitter      Submitter
	logger         *slog.Logger
	metrics        Metrics
	auditPublisher audit.Publisher
	inflight       singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func NewService(identity Identity, submitter Submitter, opts ...Option) *Service {
	s := &Service{
		identity:  identity,
		submitter: submitter,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPostcode records the delivery postcode chosen on the landing page. It
// is refused once a draft exists.
func (s *Service) SetPostcode(ctx context.Context, sess *draftstore.Session, raw string) error {
	postcode, err := id.ParsePostcode(raw)
	if err != nil {
		return err
	}
	if err := sess.Ping(ctx); err != nil {
		return err
	}
	exists, err := sess.Has(ctx, draftstore.KeyDraftRequest)
	if err != nil {
		return err
	}
	if exists {
		var current string
		if _, err := sess.Load(ctx, draftstore.KeyDraftPostcode, &current); err != nil {
			return err
		}
		if current == postcode.String() {
			return nil
		}
		return dErrors.New(dErrors.CodeConflict, "postcode cannot change once the questionnaire has started")
	}
	return sess.Save(ctx, draftstore.KeyDraftPostcode, postcode.String())
}

// Enter opens the wizard. The store must be readable and a postcode must have
// been chosen; otherwise the caller goes back to the start.
func (s *Service) Enter(ctx context.Context, sess *draftstore.Session) (*State, error) {
	if err := sess.Ping(ctx); err != nil {
		return nil, err
	}
	var raw string
	found, err := sess.Load(ctx, draftstore.KeyDraftPostcode, &raw)
	if err != nil {
		return nil, err
	}
	postcode, perr := id.ParsePostcode(raw)
	if !found || perr != nil {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "choose a delivery postcode first", dErrors.RedirectStart)
	}

	var draft models.Draft
	found, err = sess.Load(ctx, draftstore.KeyDraftRequest, &draft)
	if err != nil {
		return nil, err
	}
	if !found {
		created, err := models.NewDraft(postcode, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.saveDraft(ctx, sess, created, wizard.First); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "questionnaire started", "session_id", sess.ID().String())
	}
	return s.State(ctx, sess)
}

// State reports where the session stands, repairing the step pointer if it
// got ahead of the stored answers.
func (s *Service) State(ctx context.Context, sess *draftstore.Session) (*State, error) {
	pending, err := s.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	draft, step, err := s.load(ctx, sess)
	if err != nil {
		if pending != nil && dErrors.HasCode(err, dErrors.CodePreconditionFailed) {
			return submittedState(pending), nil
		}
		return nil, err
	}
	view := wizard.Render(step, draft)

	if pending != nil {
		st := submittedState(pending)
		st.View = &view
		return st, nil
	}
	if email, ok, err := s.identity.Pending(ctx, sess); err != nil {
		return nil, err
	} else if ok && email.String() == draft.Email {
		return &State{Outcome: OutcomeAwaitingCode, View: &view}, nil
	}
	return &State{Outcome: OutcomeInProgress, View: &view}, nil
}

// Answer validates and stores the answers for step. Changing the email drops
// every identity artifact bound to the previous one before the draft is saved.
func (s *Service) Answer(ctx context.Context, sess *draftstore.Session, step wizard.Step, answers wizard.Answers) (*State, error) {
	if err := s.requireEditable(ctx, sess); err != nil {
		return nil, err
	}
	draft, current, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !wizard.Reachable(step, draft) {
		return nil, dErrors.New(dErrors.CodeInvalidTransition, "step "+step.String()+" is not reachable yet")
	}

	change, err := wizard.Apply(step, draft, answers)
	if err != nil {
		return nil, err
	}
	if change.EmailChanged {
		if err := s.identity.EmailChanged(ctx, sess, draft.Email); err != nil {
			return nil, err
		}
	}
	if change.Changed {
		draft.Touch(requestcontext.Now(ctx))
		if err := s.saveDraft(ctx, sess, draft, wizard.Clamp(current, draft)); err != nil {
			return nil, err
		}
	}
	return s.State(ctx, sess)
}

// Next advances from the current step. Leaving the last step resolves the
// patient's identity and submits the request.
func (s *Service) Next(ctx context.Context, sess *draftstore.Session) (*State, error) {
	if err := s.requireEditable(ctx, sess); err != nil {
		return nil, err
	}
	draft, step, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	t, err := wizard.Next(step, draft)
	if err != nil {
		return nil, err
	}

	switch t.Exit {
	case wizard.ExitNone:
		if err := sess.Save(ctx, draftstore.KeyWizardStep, t.Next); err != nil {
			return nil, err
		}
		s.countTransition(step, "next")
		return s.State(ctx, sess)
	case wizard.ExitExternalConsultation:
		s.countExit(t.Exit)
		view := wizard.Render(step, draft)
		return &State{Outcome: OutcomeExternalConsultation, View: &view}, nil
	case wizard.ExitSubmit:
		s.countExit(t.Exit)
		return s.once(sess, "submit", func() (*State, error) {
			return s.submit(ctx, sess, draft)
		})
	}
	return nil, dErrors.New(dErrors.CodeInternal, "unknown wizard exit")
}

// Back returns to the previous step. Answers are kept.
func (s *Service) Back(ctx context.Context, sess *draftstore.Session) (*State, error) {
	draft, step, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	prev, err := wizard.Back(step)
	if err != nil {
		return nil, err
	}
	if err := sess.Save(ctx, draftstore.KeyWizardStep, prev); err != nil {
		return nil, err
	}
	s.countTransition(step, "back")
	view := wizard.Render(prev, draft)
	return &State{Outcome: OutcomeInProgress, View: &view}, nil
}

// VerifyCode confirms the one-time code for the draft's email and continues
// the submission that was waiting for it.
func (s *Service) VerifyCode(ctx context.Context, sess *draftstore.Session, code string) (*State, error) {
	if err := s.requireEditable(ctx, sess); err != nil {
		return nil, err
	}
	draft, _, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.once(sess, "verify", func() (*State, error) {
		res, err := s.identity.Verify(ctx, sess, draft.Email, code)
		if err != nil {
			return nil, err
		}
		return s.send(ctx, sess, draft, res.Token)
	})
}

// Resend asks for a fresh code for the draft's email.
func (s *Service) Resend(ctx context.Context, sess *draftstore.Session) (*State, error) {
	draft, _, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	if err := s.identity.Resend(ctx, sess, draft.Email); err != nil {
		return nil, err
	}
	return s.State(ctx, sess)
}

// Reconcile retries a submission that only exists locally. On success the
// synthetic id is replaced by the collaborator's.
func (s *Service) Reconcile(ctx context.Context, sess *draftstore.Session) (*State, error) {
	pending, err := s.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "nothing to reconcile", dErrors.RedirectWizard)
	}
	if !pending.Degraded {
		return submittedState(pending), nil
	}
	draft, _, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.once(sess, "reconcile", func() (*State, error) {
		token, _, err := s.identity.TokenFor(ctx, sess, draft.Email)
		if err != nil {
			return nil, err
		}
		local := pending.ID
		st, err := s.send(ctx, sess, draft, token)
		if err != nil {
			return nil, err
		}
		if st.Outcome == OutcomeSubmitted {
			audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionRequestReconciled, st.Pending.ID.String(),
				"local_id", local.String())
			return st, nil
		}
		return nil, dErrors.New(dErrors.CodeUnavailable, "request service is still unavailable")
	})
}

func (s *Service) submit(ctx context.Context, sess *draftstore.Session, draft *models.Draft) (*State, error) {
	if pending, err := s.pendingRequest(ctx, sess); err != nil {
		return nil, err
	} else if pending != nil {
		return submittedState(pending), nil
	}

	res, err := s.identity.Resolve(ctx, sess, draft.Email)
	if err != nil {
		return nil, err
	}
	switch res.Outcome {
	case identity.OutcomeOTPRequired:
		view := wizard.Render(wizard.Frontier(draft), draft)
		return &State{Outcome: OutcomeAwaitingCode, View: &view}, nil
	case identity.OutcomeNewUser:
		return s.send(ctx, sess, draft, "")
	default:
		return s.send(ctx, sess, draft, res.Token)
	}
}

// send submits draft with token. A transport failure leaves a degraded local
// request; an authentication failure never falls back to a tokenless call.
// The response is only applied while the stored draft still matches the one
// that was sent.
func (s *Service) send(ctx context.Context, sess *draftstore.Session, draft *models.Draft, token string) (*State, error) {
	sent := draft.Identity()
	pending, err := s.submitter.Submit(ctx, draft, token)
	switch {
	case err == nil:
	case dErrors.IsRetryable(err):
		s.logger.WarnContext(ctx, "request submission failed, keeping a local copy",
			"session_id", sess.ID().String(),
			"error", err,
		)
		pending, err = s.degradedRecord(ctx, sess)
		if err != nil {
			return nil, err
		}
	case dErrors.HasCode(err, dErrors.CodeUnauthorized), dErrors.HasCode(err, dErrors.CodeReauthRequired):
		if rerr := sess.Remove(ctx, draftstore.IdentityKeys...); rerr != nil {
			return nil, rerr
		}
		s.countSubmission("reauth")
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionReauthRequired, audit.HashEmail(draft.Email))
		return nil, dErrors.Wrap(err, dErrors.CodeReauthRequired, "identity must be confirmed again")
	default:
		s.countSubmission("rejected")
		return nil, err
	}

	var current models.Draft
	found, err := sess.Load(ctx, draftstore.KeyDraftRequest, &current)
	if err != nil {
		return nil, err
	}
	if !found || !current.Matches(sent) {
		s.countSubmission("discarded")
		s.logger.WarnContext(ctx, "discarding submission response for a changed draft",
			"session_id", sess.ID().String(),
			"request_id", pending.ID.String(),
		)
		return nil, dErrors.New(dErrors.CodeConflict, "the questionnaire changed while it was being submitted")
	}

	if err := sess.Save(ctx, draftstore.KeyPendingRequestID, pending); err != nil {
		return nil, err
	}
	if pending.Degraded {
		s.countSubmission("degraded")
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionRequestDegraded, pending.ID.String())
	} else {
		s.countSubmission("submitted")
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionRequestSubmitted, pending.ID.String(),
			"pharmacy_id", pending.PharmacyID.String())
	}
	return submittedState(pending), nil
}

// degradedRecord returns the local record for a submission the collaborator
// did not accept. A failed reconciliation keeps the record already stored.
func (s *Service) degradedRecord(ctx context.Context, sess *draftstore.Session) (*models.PendingRequest, error) {
	existing, err := s.pendingRequest(ctx, sess)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Degraded && !existing.ID.IsNil() {
		return existing, nil
	}
	return &models.PendingRequest{
		ID:        id.NewLocalRequestID(),
		Degraded:  true,
		CreatedAt: requestcontext.Now(ctx),
	}, nil
}

// once collapses concurrent calls for the same session and action.
func (s *Service) once(sess *draftstore.Session, action string, fn func() (*State, error)) (*State, error) {
	v, err, _ := s.inflight.Do(sess.ID().String()+":"+action, func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.(*State), nil
}

// load returns the draft and the clamped step pointer.
func (s *Service) load(ctx context.Context, sess *draftstore.Session) (*models.Draft, wizard.Step, error) {
	var draft models.Draft
	found, err := sess.Load(ctx, draftstore.KeyDraftRequest, &draft)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", dErrors.WithRedirect(dErrors.CodePreconditionFailed, "questionnaire has not been started", dErrors.RedirectStart)
	}
	var pointer wizard.Step
	if _, err := sess.Load(ctx, draftstore.KeyWizardStep, &pointer); err != nil {
		return nil, "", err
	}
	step := wizard.Clamp(pointer, &draft)
	if step != pointer {
		s.logger.InfoContext(ctx, "repaired wizard step pointer",
			"session_id", sess.ID().String(),
			"stored", pointer.String(),
			"step", step.String(),
		)
		if err := sess.Save(ctx, draftstore.KeyWizardStep, step); err != nil {
			return nil, "", err
		}
	}
	return &draft, step, nil
}

// saveDraft writes the draft before the pointer so a crash in between is
// repaired by Clamp on the next load.
func (s *Service) saveDraft(ctx context.Context, sess *draftstore.Session, draft *models.Draft, step wizard.Step) error {
	if err := sess.Save(ctx, draftstore.KeyDraftRequest, draft); err != nil {
		return err
	}
	return sess.Save(ctx, draftstore.KeyWizardStep, step)
}

func (s *Service) pendingRequest(ctx context.Context, sess *draftstore.Session) (*models.PendingRequest, error) {
	var pending models.PendingRequest
	found, err := sess.Load(ctx, draftstore.KeyPendingRequestID, &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

func (s *Service) requireEditable(ctx context.Context, sess *draftstore.Session) error {
	pending, err := s.pendingRequest(ctx, sess)
	if err != nil {
		return err
	}
	if pending == nil {
		return nil
	}
	if pending.Degraded {
		return dErrors.WithRedirect(dErrors.CodePreconditionFailed, "the request is awaiting reconciliation", dErrors.RedirectWizard)
	}
	return dErrors.WithRedirect(dErrors.CodePreconditionFailed, "the request has already been submitted", dErrors.RedirectMarketplace)
}

func (s *Service) countTransition(step wizard.Step, direction string) {
	if s.metrics != nil {
		s.metrics.IncWizardTransition(step.String(), direction)
	}
}

func (s *Service) countExit(exit wizard.Exit) {
	if s.metrics != nil {
		s.metrics.IncWizardExit(string(exit))
	}
}

func (s *Service) countSubmission(result string) {
	if s.metrics != nil {
		s.metrics.IncSubmission(result)
	}
}
