package identity

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"rxintake/internal/audit"
	"rxintake/internal/draftstore"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/requestcontext"
)

// Resolver is the remote identity resolving party.
type Resolver interface {
	Resolve(ctx context.Context, email id.Email) (*ResolveResult, error)
	Verify(ctx context.Context, email id.Email, code string) (string, error)
	Resend(ctx context.Context, email id.Email) error
}

// Metrics records resolution outcomes.
type Metrics interface {
	IncIdentityResolution(outcome string)
}

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

type Service struct {
	resolver       Resolver
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

func NewService(resolver Resolver, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve asks the resolving party about rawEmail and records the outcome in
// the session. A malformed email is rejected before any network call.
func (s *Service) Resolve(ctx context.Context, sess *draftstore.Session, rawEmail string) (*Resolution, error) {
	email, err := id.ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	// Anything bound to a different email must be gone before a new
	// resolution can be recorded.
	if err := s.EmailChanged(ctx, sess, email.String()); err != nil {
		return nil, err
	}

	res, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return nil, transportError(err, "identity service unavailable")
	}
	now := requestcontext.Now(ctx)

	switch res.Outcome {
	case OutcomeNewUser:
		if err := sess.Remove(ctx, draftstore.KeySessionToken, draftstore.KeyOTPChallenge); err != nil {
			return nil, err
		}
	case OutcomeKnownDevice:
		if res.Token == "" {
			return nil, dErrors.New(dErrors.CodeInternal, "identity service returned no token")
		}
		if err := sess.Remove(ctx, draftstore.KeyOTPChallenge); err != nil {
			return nil, err
		}
		if err := sess.Save(ctx, draftstore.KeySessionToken, Binding{Email: email, Token: res.Token, Outcome: res.Outcome, IssuedAt: now}); err != nil {
			return nil, err
		}
	case OutcomeOTPRequired:
		if err := sess.Remove(ctx, draftstore.KeySessionToken); err != nil {
			return nil, err
		}
		if err := sess.Save(ctx, draftstore.KeyOTPChallenge, Challenge{Email: email, IssuedAt: now}); err != nil {
			return nil, err
		}
	default:
		return nil, dErrors.New(dErrors.CodeInternal, "identity service returned an unknown outcome")
	}

	profile := Profile{Email: email, Returning: res.Outcome != OutcomeNewUser, Outcome: res.Outcome, ResolvedAt: now}
	if err := sess.Save(ctx, draftstore.KeyRecognizedProfile, profile); err != nil {
		return nil, err
	}

	s.record(res.Outcome)
	return &Resolution{Email: email, Outcome: res.Outcome, Token: res.Token}, nil
}

// Verify submits a code for the pending challenge. A wrong code leaves the
// session untouched so the user can try again.
func (s *Service) Verify(ctx context.Context, sess *draftstore.Session, rawEmail, code string) (*Resolution, error) {
	email, err := id.ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "code must be 6 digits")
	}
	if err := s.requireChallenge(ctx, sess, email); err != nil {
		return nil, err
	}

	token, err := s.resolver.Verify(ctx, email, code)
	if err != nil {
		return nil, transportError(err, "identity service unavailable")
	}
	if token == "" {
		return nil, dErrors.New(dErrors.CodeInternal, "identity service returned no token")
	}

	binding := Binding{Email: email, Token: token, Outcome: OutcomeVerified, IssuedAt: requestcontext.Now(ctx)}
	if err := sess.Save(ctx, draftstore.KeySessionToken, binding); err != nil {
		return nil, err
	}
	if err := sess.Remove(ctx, draftstore.KeyOTPChallenge); err != nil {
		return nil, err
	}

	s.record(OutcomeVerified)
	return &Resolution{Email: email, Outcome: OutcomeVerified, Token: token}, nil
}

// Resend asks for a fresh code for the pending challenge.
func (s *Service) Resend(ctx context.Context, sess *draftstore.Session, rawEmail string) error {
	email, err := id.ParseEmail(rawEmail)
	if err != nil {
		return err
	}
	if err := s.requireChallenge(ctx, sess, email); err != nil {
		return err
	}
	if err := s.resolver.Resend(ctx, email); err != nil {
		return transportError(err, "identity service unavailable")
	}
	return sess.Save(ctx, draftstore.KeyOTPChallenge, Challenge{Email: email, IssuedAt: requestcontext.Now(ctx)})
}

// EmailChanged deletes every identity artifact bound to an email other than
// rawEmail. It is a no-op when nothing is bound or everything matches.
func (s *Service) EmailChanged(ctx context.Context, sess *draftstore.Session, rawEmail string) error {
	current := id.Email(strings.ToLower(strings.TrimSpace(rawEmail)))

	stale := false
	var binding Binding
	found, err := sess.Load(ctx, draftstore.KeySessionToken, &binding)
	if err != nil {
		return err
	}
	stale = stale || (found && binding.Email != current)

	var challenge Challenge
	found, err = sess.Load(ctx, draftstore.KeyOTPChallenge, &challenge)
	if err != nil {
		return err
	}
	stale = stale || (found && challenge.Email != current)

	var profile Profile
	found, err = sess.Load(ctx, draftstore.KeyRecognizedProfile, &profile)
	if err != nil {
		return err
	}
	stale = stale || (found && profile.Email != current)

	if !stale {
		return nil
	}
	if err := sess.Remove(ctx, draftstore.IdentityKeys...); err != nil {
		return err
	}
	audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionTokenInvalidated, audit.HashEmail(current.String()))
	return nil
}

// TokenFor returns the token to attach to a call made on behalf of rawEmail.
// A new user gets an empty token. A token bound to another email is deleted
// and the caller must resolve again; it is never returned.
func (s *Service) TokenFor(ctx context.Context, sess *draftstore.Session, rawEmail string) (string, Outcome, error) {
	email, err := id.ParseEmail(rawEmail)
	if err != nil {
		return "", "", err
	}

	var binding Binding
	found, err := sess.Load(ctx, draftstore.KeySessionToken, &binding)
	if err != nil {
		return "", "", err
	}
	if found {
		if binding.Email != email || binding.Token == "" {
			if err := sess.Remove(ctx, draftstore.IdentityKeys...); err != nil {
				return "", "", err
			}
			audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionReauthRequired, audit.HashEmail(email.String()))
			return "", "", dErrors.WithRedirect(dErrors.CodeReauthRequired, "identity must be confirmed again", dErrors.RedirectWizard)
		}
		return binding.Token, binding.Outcome, nil
	}

	var profile Profile
	found, err = sess.Load(ctx, draftstore.KeyRecognizedProfile, &profile)
	if err != nil {
		return "", "", err
	}
	if found && profile.Email == email && profile.Outcome == OutcomeNewUser {
		return "", OutcomeNewUser, nil
	}
	return "", "", dErrors.WithRedirect(dErrors.CodeReauthRequired, "identity must be confirmed again", dErrors.RedirectWizard)
}

// Pending reports the email with an outstanding code challenge, if any.
func (s *Service) Pending(ctx context.Context, sess *draftstore.Session) (id.Email, bool, error) {
	var challenge Challenge
	found, err := sess.Load(ctx, draftstore.KeyOTPChallenge, &challenge)
	if err != nil || !found {
		return "", false, err
	}
	return challenge.Email, true, nil
}

func (s *Service) requireChallenge(ctx context.Context, sess *draftstore.Session, email id.Email) error {
	pending, ok, err := s.Pending(ctx, sess)
	if err != nil {
		return err
	}
	if !ok || pending != email {
		return dErrors.WithRedirect(dErrors.CodePreconditionFailed, "no code was requested for this email", dErrors.RedirectWizard)
	}
	return nil
}

func (s *Service) record(outcome Outcome) {
	if s.metrics != nil {
		s.metrics.IncIdentityResolution(string(outcome))
	}
}

// transportError keeps coded errors from the resolver and classifies anything
// else as a retryable outage.
func transportError(err error, msg string) error {
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
}
