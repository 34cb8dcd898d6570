package testutil

import (
	"context"
	"net/http"
	"time"

	id "rxintake/pkg/domain"
	"rxintake/pkg/requestcontext"
)

// WithSession adds a browser session ID to the request context.
// This simulates what the session middleware does for every browser request.
func WithSession(req *http.Request, sessionID id.SessionID) *http.Request {
	return req.WithContext(requestcontext.WithSessionID(req.Context(), sessionID))
}

// WithBearer adds a staff bearer token to the request context.
func WithBearer(req *http.Request, token string) *http.Request {
	return req.WithContext(requestcontext.WithBearerToken(req.Context(), token))
}

// SessionContext builds a service-level context for a browser session on a
// fixed device, with a pinned request time.
func SessionContext(sessionID id.SessionID, fingerprint string, now time.Time) context.Context {
	ctx := context.Background()
	ctx = requestcontext.WithSessionID(ctx, sessionID)
	ctx = requestcontext.WithDeviceFingerprint(ctx, fingerprint)
	ctx = requestcontext.WithTime(ctx, now)
	return ctx
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
