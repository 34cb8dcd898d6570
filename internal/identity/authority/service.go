package authority

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rxintake/internal/audit"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/sentinel"
	"rxintake/pkg/requestcontext"
)

// TokenIssuer signs identity tokens bound to an email.
type TokenIssuer interface {
	GenerateIdentityToken(email, patientID, deviceFingerprint string, now time.Time, expiresIn time.Duration) (string, error)
}

type Service struct {
	accounts   AccountStore
	devices    DeviceStore
	challenges ChallengeStore
	tokens     TokenIssuer
	mailer     Mailer

	logger         *slog.Logger
	auditPublisher audit.Publisher
	generate       func() (string, error)
	codeTTL        time.Duration
	tokenTTL       time.Duration
	bcryptCost     int
	deviceBinding  bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithCodeTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.codeTTL = ttl
		}
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost > 0 {
			s.bcryptCost = cost
		}
	}
}

// WithCodeGenerator replaces the random code source. Tests only.
func WithCodeGenerator(generate func() (string, error)) Option {
	return func(s *Service) { s.generate = generate }
}

// WithDeviceBinding controls whether a trusted fingerprint skips the code
// challenge. When disabled every known email gets a challenge.
func WithDeviceBinding(enabled bool) Option {
	return func(s *Service) { s.deviceBinding = enabled }
}

func New(accounts AccountStore, devices DeviceStore, challenges ChallengeStore, tokens TokenIssuer, mailer Mailer, opts ...Option) (*Service, error) {
	switch {
	case accounts == nil:
		return nil, errors.New("account store is required")
	case devices == nil:
		return nil, errors.New("device store is required")
	case challenges == nil:
		return nil, errors.New("challenge store is required")
	case tokens == nil:
		return nil, errors.New("token issuer is required")
	case mailer == nil:
		return nil, errors.New("mailer is required")
	}
	svc := &Service{
		accounts:      accounts,
		devices:       devices,
		challenges:    challenges,
		tokens:        tokens,
		mailer:        mailer,
		logger:        slog.Default(),
		generate:      GenerateCode,
		codeTTL:       10 * time.Minute,
		tokenTTL:      time.Hour,
		bcryptCost:    10,
		deviceBinding: true,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Resolve classifies email against the calling device. Unknown emails are
// first-time patients. Known emails on a trusted device get a token straight
// away; otherwise a fresh code is dispatched.
func (s *Service) Resolve(ctx context.Context, email id.Email) (*ResolveResult, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionIdentityResolved, audit.HashEmail(email.String()),
			"status", string(StatusFirstTime))
		return &ResolveResult{Status: StatusFirstTime}, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}

	fingerprint := requestcontext.DeviceFingerprint(ctx)
	if s.deviceBinding {
		trusted, err := s.devices.IsTrusted(ctx, email, fingerprint)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check device trust")
		}
		if trusted {
			token, err := s.issueToken(ctx, account, fingerprint)
			if err != nil {
				return nil, err
			}
			audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionIdentityResolved, audit.HashEmail(email.String()),
				"status", string(StatusKnownDevice))
			return &ResolveResult{Status: StatusKnownDevice, Token: token, PatientID: account.PatientID}, nil
		}
	}

	if err := s.issueChallenge(ctx, email); err != nil {
		return nil, err
	}
	audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionCodeIssued, audit.HashEmail(email.String()))
	return &ResolveResult{Status: StatusOTPRequired}, nil
}

// Verify checks code against the live challenge for email. A wrong code keeps
// the challenge; an expired or missing one must be resent.
func (s *Service) Verify(ctx context.Context, email id.Email, code string) (*VerifyResult, error) {
	if !ValidCodeFormat(code) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "code must be 6 digits")
	}
	subject := audit.HashEmail(email.String())

	challenge, err := s.challenges.Get(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionCodeExpired, subject)
		return nil, dErrors.New(dErrors.CodeCodeExpired, "code expired, request a new one")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load challenge")
	}

	now := requestcontext.Now(ctx)
	if challenge.IsExpired(now) {
		if err := s.challenges.Delete(ctx, email); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired challenge", "error", err)
		}
		audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionCodeExpired, subject)
		return nil, dErrors.New(dErrors.CodeCodeExpired, "code expired, request a new one")
	}

	if err := VerifyCode(code, challenge.CodeHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidCode) {
			audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionCodeRejected, subject)
		}
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}
	if err := s.challenges.Delete(ctx, email); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume challenge")
	}

	fingerprint := requestcontext.DeviceFingerprint(ctx)
	if fingerprint != "" {
		if err := s.devices.Trust(ctx, TrustedDevice{Email: email, Fingerprint: fingerprint, TrustedAt: now}); err != nil {
			s.logger.WarnContext(ctx, "failed to record trusted device", "error", err)
		} else {
			audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionDeviceTrusted, subject)
		}
	}

	token, err := s.issueToken(ctx, account, fingerprint)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Token: token, PatientID: account.PatientID}, nil
}

// Resend replaces the live code for email. Unknown emails are accepted
// silently so the endpoint does not reveal which emails have accounts.
func (s *Service) Resend(ctx context.Context, email id.Email) error {
	_, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up account")
	}
	if err := s.issueChallenge(ctx, email); err != nil {
		return err
	}
	audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionCodeResent, audit.HashEmail(email.String()))
	return nil
}

// issueChallenge stores a new challenge before dispatching its code, so the
// previous code is dead by the time the new one can arrive.
func (s *Service) issueChallenge(ctx context.Context, email id.Email) error {
	code, err := s.generate()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate code")
	}
	hash, err := HashCode(code, s.bcryptCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash code")
	}
	now := requestcontext.Now(ctx)
	challenge := Challenge{
		Email:     email,
		CodeHash:  hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.challenges.Put(ctx, challenge); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store challenge")
	}
	if err := s.mailer.SendCode(ctx, email, code); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to dispatch code")
	}
	return nil
}

func (s *Service) issueToken(ctx context.Context, account *Account, fingerprint string) (string, error) {
	token, err := s.tokens.GenerateIdentityToken(
		account.Email.String(),
		account.PatientID.String(),
		fingerprint,
		requestcontext.Now(ctx),
		s.tokenTTL,
	)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	audit.Record(ctx, s.logger, s.auditPublisher, audit.ActionIdentityTokenSent, audit.HashEmail(account.Email.String()))
	return token, nil
}
