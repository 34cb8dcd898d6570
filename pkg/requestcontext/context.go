// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
//	session := requestcontext.SessionID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.7", "Mozilla/5.0 ...")
package requestcontext

import (
	"context"
	"time"

	id "rxintake/pkg/domain"
)

type (
	sessionIDKey         struct{}
	deviceFingerprintKey struct{}
	clientIPKey          struct{}
	userAgentKey         struct{}
	requestIDKey         struct{}
	requestTimeKey       struct{}
	bearerTokenKey       struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeySessionID         = sessionIDKey{}
	ContextKeyDeviceFingerprint = deviceFingerprintKey{}
	ContextKeyClientIP          = clientIPKey{}
	ContextKeyUserAgent         = userAgentKey{}
	ContextKeyRequestID         = requestIDKey{}
	ContextKeyRequestTime       = requestTimeKey{}
	ContextKeyBearerToken       = bearerTokenKey{}
)

// -----------------------------------------------------------------------------
// Browser session
// -----------------------------------------------------------------------------

// SessionID retrieves the browser session ID from the context.
// Returns the zero value (nil UUID) if not set.
func SessionID(ctx context.Context) id.SessionID {
	if sessionID, ok := ctx.Value(ContextKeySessionID).(id.SessionID); ok {
		return sessionID
	}
	return id.SessionID{}
}

// WithSessionID injects a browser session ID into the context.
func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// BearerToken retrieves the staff bearer token forwarded to the collaborator.
func BearerToken(ctx context.Context) string {
	if token, ok := ctx.Value(ContextKeyBearerToken).(string); ok {
		return token
	}
	return ""
}

// WithBearerToken injects a bearer token into the context.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ContextKeyBearerToken, token)
}

// -----------------------------------------------------------------------------
// Device and client metadata
// -----------------------------------------------------------------------------

// DeviceFingerprint retrieves the pre-computed device fingerprint from the context.
func DeviceFingerprint(ctx context.Context) string {
	if fp, ok := ctx.Value(ContextKeyDeviceFingerprint).(string); ok {
		return fp
	}
	return ""
}

// WithDeviceFingerprint injects a device fingerprint into a context.
func WithDeviceFingerprint(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, ContextKeyDeviceFingerprint, fingerprint)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
