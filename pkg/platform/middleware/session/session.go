// Package session binds every browser to a stable session id carried in a
// signed cookie. The id scopes all Draft Store keys for that browser.
package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	id "rxintake/pkg/domain"
	request "rxintake/pkg/platform/middleware/request"
	"rxintake/pkg/requestcontext"
)

const sessionIDValue = "sid"

// Options configures the browser session cookie.
type Options struct {
	Name     string
	MaxAge   int
	Secure   bool
	HashKey  []byte
	BlockKey []byte
}

// NewCookieStore builds the gorilla cookie store for browser sessions.
func NewCookieStore(opts Options) *sessions.CookieStore {
	var keys [][]byte
	keys = append(keys, opts.HashKey)
	if len(opts.BlockKey) > 0 {
		keys = append(keys, opts.BlockKey)
	}
	store := sessions.NewCookieStore(keys...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// BrowserSession loads or issues the browser session id. A cookie that fails
// to decode (rotated keys, tampering) is replaced with a fresh session.
func BrowserSession(store sessions.Store, name string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess, err := store.Get(r, name)
			if err != nil {
				logger.WarnContext(ctx, "discarding unreadable session cookie",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
			}
			if sess == nil {
				sess = sessions.NewSession(store, name)
			}

			raw, _ := sess.Values[sessionIDValue].(string)
			sessionID, parseErr := id.ParseSessionID(raw)
			if parseErr != nil {
				sessionID = id.NewSessionID()
				sess.Values[sessionIDValue] = sessionID.String()
				if err := sess.Save(r, w); err != nil {
					logger.ErrorContext(ctx, "failed to save session cookie",
						"error", err,
						"request_id", request.GetRequestID(ctx),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal_error"}`))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithSessionID(ctx, sessionID)))
		})
	}
}
