package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"rxintake/internal/audit"
	"rxintake/internal/draftstore"
	"rxintake/internal/intake/models"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/sentinel"
)

// Collaborator is the request-processing API as seen by the tracker. Staff
// calls carry the bearer token found in the context.
type Collaborator interface {
	GetRequest(ctx context.Context, requestID id.RequestID) (*Request, error)
	Approve(ctx context.Context, requestID id.RequestID) (*Request, error)
	Decline(ctx context.Context, requestID id.RequestID, reason string) (*Request, error)
	UpdateStatus(ctx context.Context, requestID id.RequestID, status Status) (*Request, error)
	ListClinicianRequests(ctx context.Context) ([]Request, error)
	ListPharmacyOrders(ctx context.Context, pharmacyID id.PharmacyID) ([]Request, error)
}

type Metrics interface {
	IncLifecycleTransition(to, role string)
}

const (
	maxDeclineReason = 500
	refreshParallel  = 4
)

type Service struct {
	collab         Collaborator
	logger         *slog.Logger
	metrics        Metrics
	auditPublisher audit.Publisher
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

func NewService(collab Collaborator, opts ...Option) *Service {
	s := &Service{collab: collab, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Approve moves a PENDING request to APPROVED.
func (s *Service) Approve(ctx context.Context, requestID id.RequestID) (*Request, error) {
	if err := s.precheck(ctx, requestID, StatusApproved, RoleClinician, ""); err != nil {
		return nil, err
	}
	updated, err := s.collab.Approve(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.transitioned(ctx, updated, RoleClinician)
	return updated, nil
}

// Decline moves a PENDING request to the terminal DECLINED status.
func (s *Service) Decline(ctx context.Context, requestID id.RequestID, reason string) (*Request, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > maxDeclineReason {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "decline reason is too long")
	}
	if err := s.precheck(ctx, requestID, StatusDeclined, RoleClinician, ""); err != nil {
		return nil, err
	}
	updated, err := s.collab.Decline(ctx, requestID, reason)
	if err != nil {
		return nil, err
	}
	s.transitioned(ctx, updated, RoleClinician)
	return updated, nil
}

// Advance moves an order of pharmacyID one fulfillment step forward.
func (s *Service) Advance(ctx context.Context, pharmacyID id.PharmacyID, requestID id.RequestID, to Status) (*Request, error) {
	if err := s.precheck(ctx, requestID, to, RolePharmacy, pharmacyID); err != nil {
		return nil, err
	}
	updated, err := s.collab.UpdateStatus(ctx, requestID, to)
	if err != nil {
		return nil, err
	}
	s.transitioned(ctx, updated, RolePharmacy)
	return updated, nil
}

// precheck validates the transition against a fresh read before anything is
// sent to the collaborator.
func (s *Service) precheck(ctx context.Context, requestID id.RequestID, to Status, role Role, pharmacyID id.PharmacyID) error {
	if requestID.IsLocal() {
		return dErrors.New(dErrors.CodePreconditionFailed, "request has not reached the request service yet")
	}
	current, err := s.collab.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if role == RolePharmacy && current.PharmacyID != pharmacyID {
		return dErrors.New(dErrors.CodeForbidden, "order belongs to another pharmacy")
	}
	return CanTransition(current.Status, to, role)
}

func (s *Service) transitioned(ctx context.Context, r *Request, role Role) {
	if s.metrics != nil {
		s.metrics.IncLifecycleTransition(string(r.Status), string(role))
	}
	action := audit.ActionStatusAdvanced
	switch r.Status {
	case StatusApproved:
		action = audit.ActionRequestApproved
	case StatusDeclined:
		action = audit.ActionRequestDeclined
	}
	audit.Record(ctx, s.logger, s.auditPublisher, action, r.ID.String(),
		"status", string(r.Status), "role", string(role))
}

// ClinicianQueue lists requests for review.
func (s *Service) ClinicianQueue(ctx context.Context) (ClinicianView, error) {
	requests, err := s.collab.ListClinicianRequests(ctx)
	if err != nil {
		return ClinicianView{}, err
	}
	return ProjectClinician(requests), nil
}

// PharmacyQueue lists the orders of pharmacyID.
func (s *Service) PharmacyQueue(ctx context.Context, pharmacyID id.PharmacyID) (PharmacyView, error) {
	orders, err := s.collab.ListPharmacyOrders(ctx, pharmacyID)
	if err != nil {
		return PharmacyView{}, err
	}
	return ProjectPharmacy(pharmacyID, orders), nil
}

// Refresh reads the authoritative status of the session's request and merges
// it into the cached projection. Stale observations keep the cached value.
func (s *Service) Refresh(ctx context.Context, sess *draftstore.Session, requestID id.RequestID) (*Request, error) {
	observed, err := s.collab.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var cached Request
	found, err := sess.Load(ctx, draftstore.KeyRequestProjection, &cached)
	if err != nil {
		return nil, err
	}
	if found && cached.ID == requestID {
		if _, err := Reconcile(cached.Status, observed.Status); err != nil {
			if errors.Is(err, sentinel.ErrStale) {
				s.logger.InfoContext(ctx, "ignoring stale request status",
					"request_id", requestID.String(),
					"known", string(cached.Status),
					"observed", string(observed.Status),
				)
				return &cached, nil
			}
			return nil, err
		}
	}

	observed.PendingReconcile = false
	if err := sess.Save(ctx, draftstore.KeyRequestProjection, observed); err != nil {
		return nil, err
	}
	return observed, nil
}

// RefreshMany reads several requests concurrently. The first failure cancels
// the rest.
func (s *Service) RefreshMany(ctx context.Context, requestIDs []id.RequestID) ([]Request, error) {
	out := make([]Request, len(requestIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshParallel)
	for i, requestID := range requestIDs {
		g.Go(func() error {
			r, err := s.collab.GetRequest(gctx, requestID)
			if err != nil {
				return err
			}
			out[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkPaidOptimistic records PAID locally after a successful product payment,
// pending confirmation by the next Refresh.
func (s *Service) MarkPaidOptimistic(ctx context.Context, sess *draftstore.Session, current *Request) (*Request, error) {
	if err := CanTransition(current.Status, StatusPaid, RolePayment); err != nil {
		return nil, err
	}
	paid := *current
	paid.Status = StatusPaid
	paid.PendingReconcile = true
	if err := sess.Save(ctx, draftstore.KeyRequestProjection, paid); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncLifecycleTransition(string(StatusPaid), string(RolePayment))
	}
	return &paid, nil
}

// PatientStatus returns the patient view of the session's pending request.
// A degraded request is reported from the local record without a remote call.
func (s *Service) PatientStatus(ctx context.Context, sess *draftstore.Session) (PatientView, error) {
	var pending models.PendingRequest
	found, err := sess.Load(ctx, draftstore.KeyPendingRequestID, &pending)
	if err != nil {
		return PatientView{}, err
	}
	if !found {
		return PatientView{}, dErrors.WithRedirect(dErrors.CodeNotFound, "no request in this session", dErrors.RedirectStart)
	}
	if pending.Degraded {
		return ProjectPatient(Request{
			ID:         pending.ID,
			PatientID:  pending.PatientID,
			PharmacyID: pending.PharmacyID,
			Status:     StatusPending,
			CreatedAt:  pending.CreatedAt,
		}, true), nil
	}
	r, err := s.Refresh(ctx, sess, pending.ID)
	if err != nil {
		return PatientView{}, err
	}
	return ProjectPatient(*r, false), nil
}
