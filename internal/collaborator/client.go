// Package collaborator is the HTTP client for the request-processing API and
// the identity resolving party. Responses are decoded into explicit DTOs and
// validated before they reach a service.
package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/circuit"
	"rxintake/pkg/platform/httputil"
	"rxintake/pkg/requestcontext"
)

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 1 << 20
	tracerName       = "rxintake/collaborator"
)

// Metrics records outbound call latency and breaker state.
type Metrics interface {
	ObserveCollaborator(operation, outcome string, seconds float64)
	SetCircuitOpen(name string, open bool)
}

// Client performs JSON calls against one base URL. Calls are never retried;
// a circuit breaker fails fast while the remote side keeps failing.
type Client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics Metrics
	tracer  trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) { cl.breaker = b }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) { cl.logger = logger }
}

func WithMetrics(m Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

func newClient(name, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, name+" base URL is invalid")
	}
	c := &Client{
		name:    name,
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		breaker: circuit.New(name),
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call describes one outbound request. Bearer falls back to the token on
// the context when empty.
type call struct {
	op     string
	method string
	path   string
	body   any
	bearer string
	// idempotencyKey lets the remote collapse retried writes.
	idempotencyKey string
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, c.name+"."+cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("collaborator", c.name),
		),
	)
	defer span.End()

	outcome, err := c.roundTrip(ctx, cl, out)
	c.observe(cl.op, outcome, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return err
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, cl call, out any) (string, error) {
	if !c.breaker.Allow() {
		return "circuit_open", dErrors.Wrap(circuit.ErrOpen, dErrors.CodeUnavailable, c.name+" is unavailable")
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return "encode_error", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.failure(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			return "timeout", dErrors.Wrap(err, dErrors.CodeTimeout, c.name+" did not respond in time")
		}
		return "transport_error", dErrors.Wrap(err, dErrors.CodeUnavailable, c.name+" is unavailable")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.failure(ctx)
		return "transport_error", dErrors.Wrap(err, dErrors.CodeUnavailable, c.name+" response was cut short")
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode >= 500:
		c.failure(ctx)
		return "server_error", c.remoteError(resp.StatusCode, body)
	case resp.StatusCode >= 400:
		c.success(ctx)
		return "client_error", c.remoteError(resp.StatusCode, body)
	}
	c.success(ctx)

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return "ok", nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return "bad_response", dErrors.Wrap(err, dErrors.CodeInternal, c.name+" returned a malformed response")
	}
	return "ok", nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode request")
		}
		body = bytes.NewReader(buf)
	}
	target := c.baseURL.JoinPath(cl.path)
	req, err := http.NewRequestWithContext(ctx, cl.method, target.String(), body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	bearer := cl.bearer
	if bearer == "" {
		bearer = requestcontext.BearerToken(ctx)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cl.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", cl.idempotencyKey)
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

// remoteError surfaces the remote reason. A known error code in the envelope
// wins; otherwise the status decides.
func (c *Client) remoteError(status int, body []byte) error {
	var envelope httputil.ErrorResponse
	_ = json.Unmarshal(body, &envelope)

	msg := strings.TrimSpace(envelope.ErrorDescription)
	if msg == "" {
		msg = c.name + " rejected the request"
	}
	if status >= 500 {
		return dErrors.New(dErrors.CodeUnavailable, c.name+" is unavailable")
	}
	code, ok := knownCodes[dErrors.Code(envelope.Error)]
	if !ok || code == dErrors.CodeInternal {
		code = codeForStatus(status)
	}
	return dErrors.New(code, msg)
}

var knownCodes = map[dErrors.Code]dErrors.Code{
	dErrors.CodeInvalidInput:       dErrors.CodeInvalidInput,
	dErrors.CodeBadRequest:         dErrors.CodeBadRequest,
	dErrors.CodeNotFound:           dErrors.CodeNotFound,
	dErrors.CodeUnauthorized:       dErrors.CodeUnauthorized,
	dErrors.CodeForbidden:          dErrors.CodeForbidden,
	dErrors.CodeReauthRequired:     dErrors.CodeReauthRequired,
	dErrors.CodeInvalidCode:        dErrors.CodeInvalidCode,
	dErrors.CodeCodeExpired:        dErrors.CodeCodeExpired,
	dErrors.CodePreconditionFailed: dErrors.CodePreconditionFailed,
	dErrors.CodeInvalidTransition:  dErrors.CodeInvalidTransition,
	dErrors.CodePaymentDeclined:    dErrors.CodePaymentDeclined,
	dErrors.CodeConflict:           dErrors.CodeConflict,
}

func codeForStatus(status int) dErrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return dErrors.CodeInvalidInput
	case http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case http.StatusPaymentRequired:
		return dErrors.CodePaymentDeclined
	case http.StatusForbidden:
		return dErrors.CodeForbidden
	case http.StatusNotFound:
		return dErrors.CodeNotFound
	case http.StatusConflict:
		return dErrors.CodeConflict
	case http.StatusGone:
		return dErrors.CodeCodeExpired
	case http.StatusPreconditionFailed:
		return dErrors.CodePreconditionFailed
	case http.StatusTooManyRequests:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeBadRequest
	}
}

func (c *Client) failure(ctx context.Context) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.logger.WarnContext(ctx, "collaborator circuit opened", "collaborator", c.name)
		c.setCircuit(true)
	}
}

func (c *Client) success(ctx context.Context) {
	_, change := c.breaker.RecordSuccess()
	if change.Closed {
		c.logger.InfoContext(ctx, "collaborator circuit closed", "collaborator", c.name)
		c.setCircuit(false)
	}
}

func (c *Client) setCircuit(open bool) {
	if c.metrics != nil {
		c.metrics.SetCircuitOpen(c.name, open)
	}
}

func (c *Client) observe(op, outcome string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveCollaborator(c.name+"."+op, outcome, d.Seconds())
	}
}
