package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rxintake/pkg/platform/httputil"
	"rxintake/pkg/platform/middleware/auth"
	"rxintake/pkg/platform/middleware/device"
	"rxintake/pkg/platform/middleware/metadata"
	"rxintake/pkg/platform/middleware/request"
	"rxintake/pkg/platform/middleware/requesttime"
	"rxintake/pkg/platform/middleware/session"
)

// RouterConfig carries what the router needs beyond the handler itself.
type RouterConfig struct {
	Logger         *slog.Logger
	Sessions       sessions.Store
	SessionCookie  string
	Fingerprinter  device.Fingerprinter
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
}

// NewRouter wires the public API under /api/v1 plus health and metrics.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.Logger(cfg.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(device.Middleware(cfg.Fingerprinter))

	r.Get("/healthz", h.HandleHealth)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(request.Timeout(cfg.RequestTimeout))
		}
		r.Use(request.ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(session.BrowserSession(cfg.Sessions, cfg.SessionCookie, cfg.Logger))
			h.RegisterPatient(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireBearer(cfg.Logger))
			h.RegisterStaff(r)
		})
	})
	return r
}

// HandleHealth reports whether the draft store is reachable.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "draft store unreachable", "error", err)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
