package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rxintake/internal/device"
	"rxintake/internal/draftstore"
	"rxintake/internal/intake"
	"rxintake/internal/lifecycle"
	"rxintake/internal/transport/http/mocks"
	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/middleware/session"
	"rxintake/pkg/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockIntakeService, *mocks.MockLifecycleService) {
	ctrl := gomock.NewController(t)
	intakeSvc := mocks.NewMockIntakeService(ctrl)
	lifecycleSvc := mocks.NewMockLifecycleService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(intakeSvc, mocks.NewMockPaymentService(ctrl), lifecycleSvc, draftstore.NewInMemory(), logger)
	router := NewRouter(h, RouterConfig{
		Logger: logger,
		Sessions: session.NewCookieStore(session.Options{
			Name:    "rx_session",
			MaxAge:  3600,
			HashKey: []byte("test-hash-key-with-32-bytes-long"),
		}),
		SessionCookie:  "rx_session",
		Fingerprinter:  device.NewService(true),
		Gatherer:       prometheus.NewRegistry(),
		RequestTimeout: time.Second,
	})
	return router, intakeSvc, lifecycleSvc
}

func TestRouter(t *testing.T) {
	t.Run("health reports the draft store", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))

		testutil.AssertStatusOK(t, rr)
	})

	t.Run("browser session survives across requests", func(t *testing.T) {
		router, intakeSvc, _ := newTestRouter(t)
		var seen []id.SessionID
		intakeSvc.EXPECT().State(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, sess *draftstore.Session) (*intake.State, error) {
				seen = append(seen, sess.ID())
				return &intake.State{Outcome: intake.OutcomeInProgress}, nil
			}).Times(2)

		first := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/intake/state"))
		testutil.AssertStatusOK(t, first)
		require.NotEmpty(t, first.Result().Cookies())

		second := testutil.DoRequest(router, testutil.WithCookies(testutil.NewRequest(t, http.MethodGet, "/api/v1/intake/state"), first))
		testutil.AssertStatusOK(t, second)

		require.Len(t, seen, 2)
		assert.False(t, seen[0].IsNil())
		assert.Equal(t, seen[0], seen[1])
	})

	t.Run("staff routes require a bearer", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/clinician/queue"))

		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("staff bearer is accepted", func(t *testing.T) {
		router, _, lifecycleSvc := newTestRouter(t)
		lifecycleSvc.EXPECT().ClinicianQueue(gomock.Any()).Return(lifecycle.ClinicianView{}, nil)

		req := testutil.NewRequest(t, http.MethodGet, "/api/v1/clinician/queue")
		req.Header.Set("Authorization", "Bearer staff-token")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusOK(t, rr)
	})

	t.Run("non-JSON bodies are refused", func(t *testing.T) {
		router, _, _ := newTestRouter(t)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/v1/intake/verify", "code=123456")
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusUnsupportedMediaType)
	})
}
