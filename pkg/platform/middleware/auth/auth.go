// Package auth guards staff routes. Staff credentials are issued and checked by
// the request-processing collaborator; this layer only requires that one is
// present and forwards it.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	request "rxintake/pkg/platform/middleware/request"
	"rxintake/pkg/requestcontext"
)

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireBearer rejects requests without a bearer token and stores the token in
// the context for the collaborator client.
func RequireBearer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", request.GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithBearerToken(ctx, token)))
		})
	}
}
