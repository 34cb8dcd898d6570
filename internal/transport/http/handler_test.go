package httptransport

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rxintake/internal/draftstore"
	"rxintake/internal/intake"
	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	"rxintake/internal/transport/http/mocks"
	"rxintake/internal/wizard"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks IntakeService,PaymentService,LifecycleService
type HandlerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	intake    *mocks.MockIntakeService
	payment   *mocks.MockPaymentService
	lifecycle *mocks.MockLifecycleService
	store     *draftstore.InMemory
	router    chi.Router
	sessionID id.SessionID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.intake = mocks.NewMockIntakeService(s.ctrl)
	s.payment = mocks.NewMockPaymentService(s.ctrl)
	s.lifecycle = mocks.NewMockLifecycleService(s.ctrl)
	s.store = draftstore.NewInMemory()
	s.sessionID = id.NewSessionID()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.intake, s.payment, s.lifecycle, s.store, logger)
	s.router = chi.NewRouter()
	h.RegisterPatient(s.router)
	h.RegisterStaff(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) patient(req *http.Request) *http.Request {
	return testutil.WithSession(req, s.sessionID)
}

// sessionFor matches a draft store view bound to the suite's browser session.
func (s *HandlerSuite) sessionFor() gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		sess, ok := x.(*draftstore.Session)
		return ok && sess.ID() == s.sessionID
	})
}

func (s *HandlerSuite) TestIntake() {
	s.Run("postcode is forwarded raw", func() {
		s.intake.EXPECT().SetPostcode(gomock.Any(), s.sessionFor(), "10115").Return(nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/postcode", PostcodeRequest{Postcode: " 10115 "})))

		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("empty postcode never reaches the service", func() {
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/postcode", PostcodeRequest{})))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("enter returns the current view", func() {
		s.intake.EXPECT().Enter(gomock.Any(), s.sessionFor()).Return(&intake.State{
			Outcome: intake.OutcomeInProgress,
			View:    &wizard.View{Step: wizard.StepConsultationType},
		}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/intake/enter")))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "outcome", string(intake.OutcomeInProgress))
	})

	s.Run("missing draft redirects to start", func() {
		s.intake.EXPECT().State(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "postcode required", dErrors.RedirectStart))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodGet, "/intake/state")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusPreconditionFailed, string(dErrors.CodePreconditionFailed))
		testutil.AssertJSONContains(s.T(), rr, "redirect", string(dErrors.RedirectStart))
	})

	s.Run("answers are decoded into the named step", func() {
		s.intake.EXPECT().
			Answer(gomock.Any(), s.sessionFor(), wizard.StepCondition, wizard.Answers{Condition: "chronic_pain"}).
			Return(&intake.State{Outcome: intake.OutcomeInProgress}, nil)

		body := map[string]string{"condition": "chronic_pain"}
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/answer/condition", body)))

		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("unknown step is rejected", func() {
		body := map[string]string{"condition": "chronic_pain"}
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/answer/billing", body)))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("unknown answer fields are rejected", func() {
		body := map[string]string{"favourite_colour": "blue"}
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/answer/condition", body)))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	s.Run("next reports a submission", func() {
		s.intake.EXPECT().Next(gomock.Any(), gomock.Any()).Return(&intake.State{
			Outcome: intake.OutcomeSubmitted,
			Pending: &models.PendingRequest{ID: "req-1"},
			Next:    dErrors.RedirectMarketplace,
		}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/intake/next")))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "next", string(dErrors.RedirectMarketplace))
	})

	s.Run("wrong code is unauthorized", func() {
		s.intake.EXPECT().VerifyCode(gomock.Any(), gomock.Any(), "123456").
			Return(nil, dErrors.New(dErrors.CodeInvalidCode, "code does not match"))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPost, "/intake/verify", CodeRequest{Code: "123456"})))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeInvalidCode))
	})

	s.Run("collaborator outage is retryable", func() {
		s.intake.EXPECT().Reconcile(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.Wrap(errors.New("dial tcp: refused"), dErrors.CodeUnavailable, "requests service unavailable"))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/intake/reconcile")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, string(dErrors.CodeUnavailable))
		testutil.AssertJSONContains(s.T(), rr, "retryable", true)
	})

	s.Run("internal errors hide their message", func() {
		s.intake.EXPECT().Back(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "draft row corrupt"))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/intake/back")))

		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		s.NotContains(rr.Body.String(), "corrupt")
	})
}

func (s *HandlerSuite) TestCart() {
	s.Run("selection is parsed into products", func() {
		want := []models.SelectedProduct{{
			ProductID: "flower-22",
			Name:      "Flower 22/1",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("9.50"),
		}}
		s.payment.EXPECT().SetCart(gomock.Any(), s.sessionFor(), gomock.Cond(func(x any) bool {
			got, ok := x.([]models.SelectedProduct)
			return ok && len(got) == 1 && got[0].ProductID == want[0].ProductID &&
				got[0].Quantity == 2 && got[0].UnitPrice.Equal(want[0].UnitPrice)
		})).Return(&models.Cart{Products: want, Total: decimal.RequireFromString("19.00")}, nil)

		body := CartRequest{Products: []CartProduct{{ProductID: "flower-22", Name: "Flower 22/1", Quantity: 2, UnitPrice: decimal.RequireFromString("9.50")}}}
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPut, "/cart", body)))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "total", "19")
	})

	s.Run("empty selection is rejected", func() {
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPut, "/cart", CartRequest{})))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("malformed product id is rejected", func() {
		body := CartRequest{Products: []CartProduct{{ProductID: "../etc", Quantity: 1}}}
		rr := testutil.DoRequest(s.router, s.patient(testutil.NewJSONRequest(s.T(), http.MethodPut, "/cart", body)))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("get returns the stored cart", func() {
		s.payment.EXPECT().Cart(gomock.Any(), s.sessionFor()).Return(&models.Cart{Total: decimal.Zero}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodGet, "/cart")))

		testutil.AssertStatusOK(s.T(), rr)
	})
}

func (s *HandlerSuite) TestPayments() {
	s.Run("consultation intent carries the client secret", func() {
		s.payment.EXPECT().BeginConsultation(gomock.Any(), s.sessionFor()).Return(&payment.Intent{
			ID:           "pi_1",
			RequestID:    "req-1",
			Checkpoint:   payment.CheckpointConsultation,
			ClientSecret: "pi_1_secret",
			Amount:       decimal.RequireFromString("14.99"),
			Currency:     "EUR",
		}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/payments/consultation")))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "client_secret", "pi_1_secret")
	})

	s.Run("degraded request cannot be paid", func() {
		s.payment.EXPECT().BeginConsultation(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "request not yet confirmed", dErrors.RedirectWizard))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/payments/consultation")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusPreconditionFailed, string(dErrors.CodePreconditionFailed))
		testutil.AssertJSONContains(s.T(), rr, "redirect", string(dErrors.RedirectWizard))
	})

	s.Run("declined payment", func() {
		s.payment.EXPECT().ConfirmConsultation(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodePaymentDeclined, "card declined"))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/payments/consultation/confirm")))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusPaymentRequired, string(dErrors.CodePaymentDeclined))
	})

	s.Run("product confirmation returns the paid request", func() {
		s.payment.EXPECT().ConfirmProduct(gomock.Any(), gomock.Any()).Return(&payment.Result{
			Checkpoint: payment.CheckpointProduct,
			IntentID:   "pi_2",
			Status:     payment.IntentSucceeded,
			Request:    &lifecycle.Request{ID: "req-1", Status: lifecycle.StatusPaid},
		}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/payments/product/confirm")))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[payment.Result](s.T(), rr)
		s.Equal(lifecycle.StatusPaid, resp.Request.Status)
	})

	s.Run("product intent", func() {
		s.payment.EXPECT().BeginProduct(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodePreconditionFailed, "request is not approved"))

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodPost, "/payments/product")))

		testutil.AssertStatus(s.T(), rr, http.StatusPreconditionFailed)
	})
}

func (s *HandlerSuite) TestRoleViews() {
	s.Run("patient sees their request", func() {
		s.lifecycle.EXPECT().PatientStatus(gomock.Any(), s.sessionFor()).Return(lifecycle.PatientView{
			Request:       lifecycle.Request{ID: "req-1", Status: lifecycle.StatusApproved},
			CanPayProduct: true,
		}, nil)

		rr := testutil.DoRequest(s.router, s.patient(testutil.NewRequest(s.T(), http.MethodGet, "/requests/mine")))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "can_pay_product", true)
	})

	s.Run("clinician approves", func() {
		s.lifecycle.EXPECT().Approve(gomock.Any(), id.RequestID("req-1")).
			Return(&lifecycle.Request{ID: "req-1", Status: lifecycle.StatusApproved}, nil)

		req := testutil.WithBearer(testutil.NewRequest(s.T(), http.MethodPost, "/clinician/requests/req-1/approve"), "staff-token")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "status", string(lifecycle.StatusApproved))
	})

	s.Run("clinician cannot approve twice", func() {
		s.lifecycle.EXPECT().Approve(gomock.Any(), id.RequestID("req-1")).
			Return(nil, dErrors.New(dErrors.CodeInvalidTransition, "APPROVED cannot move to APPROVED"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/clinician/requests/req-1/approve"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidTransition))
	})

	s.Run("decline carries a reason", func() {
		s.lifecycle.EXPECT().Decline(gomock.Any(), id.RequestID("req-2"), "not indicated").
			Return(&lifecycle.Request{ID: "req-2", Status: lifecycle.StatusDeclined, DeclineReason: "not indicated"}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/clinician/requests/req-2/decline", DeclineRequest{Reason: " not indicated "}))

		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("clinician queue", func() {
		s.lifecycle.EXPECT().ClinicianQueue(gomock.Any()).Return(lifecycle.ClinicianView{}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/clinician/queue"))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONHasKey(s.T(), rr, "actionable")
	})

	s.Run("pharmacy advances its own order", func() {
		s.lifecycle.EXPECT().Advance(gomock.Any(), id.PharmacyID("ph-berlin"), id.RequestID("req-3"), lifecycle.StatusProcessing).
			Return(&lifecycle.Request{ID: "req-3", Status: lifecycle.StatusProcessing}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/pharmacy/ph-berlin/orders/req-3/status", StatusRequest{Status: "PROCESSING"}))

		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("unknown status is rejected before the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/pharmacy/ph-berlin/orders/req-3/status", StatusRequest{Status: "SHIPPED"}))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("pharmacy queue", func() {
		s.lifecycle.EXPECT().PharmacyQueue(gomock.Any(), id.PharmacyID("ph-berlin")).
			Return(lifecycle.PharmacyView{PharmacyID: "ph-berlin"}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/pharmacy/ph-berlin/orders"))

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "pharmacy_id", "ph-berlin")
	})

	s.Run("batch status refresh", func() {
		s.lifecycle.EXPECT().RefreshMany(gomock.Any(), []id.RequestID{"req-1", "req-2"}).
			Return([]lifecycle.Request{{ID: "req-1"}, {ID: "req-2"}}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/requests/status?id=req-1&id=req-2"))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[[]lifecycle.Request](s.T(), rr)
		s.Len(*resp, 2)
	})

	s.Run("batch status without ids", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/requests/status"))

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}
