// Package device attaches the caller's device fingerprint to the request context.
package device

import (
	"net/http"

	"rxintake/pkg/requestcontext"
)

// Fingerprinter derives a fingerprint from the network context of a request.
type Fingerprinter interface {
	ComputeContextFingerprint(clientIP, userAgent string) string
}

// Middleware computes the fingerprint once per request. It must run after the
// client metadata middleware.
func Middleware(fp Fingerprinter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			fingerprint := fp.ComputeContextFingerprint(requestcontext.ClientIP(ctx), requestcontext.UserAgent(ctx))
			next.ServeHTTP(w, r.WithContext(requestcontext.WithDeviceFingerprint(ctx, fingerprint)))
		})
	}
}
