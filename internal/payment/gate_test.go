package payment_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rxintake/internal/draftstore"
	"rxintake/internal/identity"
	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	"rxintake/internal/payment/mocks"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

//go:generate mockgen -source=gate.go -destination=mocks/mocks.go -package=mocks Processor,Finalizer,Tracker,Identity,Metrics
type GateSuite struct {
	suite.Suite
	ctx       context.Context
	processor *mocks.MockProcessor
	finalizer *mocks.MockFinalizer
	tracker   *mocks.MockTracker
	identity  *mocks.MockIdentity
	sess      *draftstore.Session
	gate      *payment.Gate
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

var fee = decimal.RequireFromString("29.00")

func (s *GateSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.processor = mocks.NewMockProcessor(ctrl)
	s.finalizer = mocks.NewMockFinalizer(ctrl)
	s.tracker = mocks.NewMockTracker(ctrl)
	s.identity = mocks.NewMockIdentity(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().IncPaymentOutcome(gomock.Any(), gomock.Any()).AnyTimes()
	s.sess = draftstore.Bind(draftstore.NewInMemory(), id.NewSessionID())
	s.gate = payment.NewGate(s.processor, s.finalizer, s.tracker, s.identity,
		payment.Config{ConsultationFee: fee, Currency: "EUR"},
		payment.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		payment.WithMetrics(metrics),
	)
}

func (s *GateSuite) submitted(requestID id.RequestID, degraded bool) {
	s.Require().NoError(s.sess.Save(s.ctx, draftstore.KeyPendingRequestID, models.PendingRequest{
		ID: requestID, Degraded: degraded, CreatedAt: time.Now(),
	}))
}

func (s *GateSuite) withDraft() {
	s.Require().NoError(s.sess.Save(s.ctx, draftstore.KeyDraftRequest, models.Draft{
		Email: "anna@example.com", Postcode: "10115", Revision: 4,
	}))
	s.Require().NoError(s.sess.Save(s.ctx, draftstore.KeyWizardStep, "treatment_effect"))
}

func (s *GateSuite) withCart() {
	_, err := s.gate.SetCart(s.ctx, s.sess, []models.SelectedProduct{
		{ProductID: "prod-a", Name: "Flower A", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
		{ProductID: "prod-b", Name: "Flower B", Quantity: 1, UnitPrice: decimal.RequireFromString("30.00")},
	})
	s.Require().NoError(err)
}

func consultationIntent(intentID id.PaymentIntentID) *payment.Intent {
	return &payment.Intent{ID: intentID, ClientSecret: "secret_" + intentID.String(), Amount: fee, Currency: "EUR"}
}

func (s *GateSuite) TestCart() {
	s.Run("total is derived from line items", func() {
		s.withCart()
		cart, err := s.gate.Cart(s.ctx, s.sess)
		s.Require().NoError(err)
		s.True(cart.Complete())
		s.True(cart.Total.Equal(decimal.RequireFromString("55.00")))
	})

	s.Run("invalid selection leaves stored cart untouched", func() {
		_, err := s.gate.SetCart(s.ctx, s.sess, []models.SelectedProduct{{ProductID: "prod-a", Quantity: 0, UnitPrice: fee}})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		cart, err := s.gate.Cart(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Len(cart.Products, 2)
	})
}

func (s *GateSuite) TestBeginConsultation() {
	s.Run("no submitted request redirects to the wizard", func() {
		_, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal(dErrors.RedirectWizard, dErrors.RedirectOf(err))
	})

	s.Run("degraded request cannot be paid", func() {
		s.submitted(id.NewLocalRequestID(), true)
		s.withCart()
		_, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal(dErrors.RedirectWizard, dErrors.RedirectOf(err))
	})

	s.Run("empty cart redirects to the marketplace", func() {
		s.Require().NoError(s.sess.Remove(s.ctx, draftstore.CartKeys...))
		s.submitted("42", false)
		_, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal(dErrors.RedirectMarketplace, dErrors.RedirectOf(err))
	})

	s.Run("outstanding intent for the same request is reused", func() {
		s.withCart()
		s.processor.EXPECT().CreateIntent(gomock.Any(), payment.CheckpointConsultation, id.RequestID("42"), "42:consultation").
			Return(consultationIntent("pi_1"), nil)
		first, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(id.RequestID("42"), first.RequestID)

		s.processor.EXPECT().IntentStatus(gomock.Any(), id.PaymentIntentID("pi_1")).
			Return(&payment.IntentState{Status: payment.IntentRequiresPayment}, nil)
		second, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
	})

	s.Run("canceled intent is replaced", func() {
		s.processor.EXPECT().IntentStatus(gomock.Any(), id.PaymentIntentID("pi_1")).
			Return(&payment.IntentState{Status: payment.IntentCanceled}, nil)
		s.processor.EXPECT().CreateIntent(gomock.Any(), payment.CheckpointConsultation, id.RequestID("42"), "42:consultation:pi_1").
			Return(consultationIntent("pi_2"), nil)
		intent, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(id.PaymentIntentID("pi_2"), intent.ID)
	})

	s.Run("currency other than the configured one is rejected", func() {
		s.Require().NoError(s.sess.Remove(s.ctx, draftstore.KeyConsultationIntent))
		wrong := consultationIntent("pi_4")
		wrong.Currency = "USD"
		s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(wrong, nil)
		s.processor.EXPECT().CancelIntent(gomock.Any(), id.PaymentIntentID("pi_4")).
			Return(dErrors.New(dErrors.CodeUnavailable, "collaborator unavailable"))
		_, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		found, err := s.sess.Has(s.ctx, draftstore.KeyConsultationIntent)
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("amount other than the consultation fee is rejected", func() {
		s.Require().NoError(s.sess.Remove(s.ctx, draftstore.KeyConsultationIntent))
		wrong := consultationIntent("pi_3")
		wrong.Amount = decimal.RequireFromString("1.00")
		s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(wrong, nil)
		s.processor.EXPECT().CancelIntent(gomock.Any(), id.PaymentIntentID("pi_3")).Return(nil)
		_, err := s.gate.BeginConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		found, err := s.sess.Has(s.ctx, draftstore.KeyConsultationIntent)
		s.Require().NoError(err)
		s.False(found)
	})
}

func (s *GateSuite) TestConcurrentBeginCreatesOneIntent() {
	s.submitted("42", false)
	s.withCart()
	s.processor.EXPECT().CreateIntent(gomock.Any(), payment.CheckpointConsultation, id.RequestID("42"), "42:consultation").
		DoAndReturn(func(context.Context, payment.Checkpoint, id.RequestID, string) (*payment.Intent, error) {
			time.Sleep(50 * time.Millisecond)
			return consultationIntent("pi_1"), nil
		}).
		Times(1)
	// A caller arriving after the first one finished reuses the stored intent.
	s.processor.EXPECT().IntentStatus(gomock.Any(), id.PaymentIntentID("pi_1")).
		Return(&payment.IntentState{Status: payment.IntentRequiresPayment}, nil).
		AnyTimes()

	intents := make([]*payment.Intent, 2)
	var wg sync.WaitGroup
	for i := range intents {
		wg.Add(1)
		go func() {
			defer wg.Done()
			intent, err := s.gate.BeginConsultation(s.ctx, s.sess)
			s.NoError(err)
			intents[i] = intent
		}()
	}
	wg.Wait()

	s.Require().NotNil(intents[0])
	s.Require().NotNil(intents[1])
	s.Equal(id.PaymentIntentID("pi_1"), intents[0].ID)
	s.Equal(intents[0].ID, intents[1].ID)
}

func (s *GateSuite) TestConfirmConsultation() {
	s.submitted("42", false)
	s.withDraft()
	s.withCart()
	s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(consultationIntent("pi_1"), nil)
	_, err := s.gate.BeginConsultation(s.ctx, s.sess)
	s.Require().NoError(err)

	s.Run("processing intent leaves everything in place", func() {
		s.processor.EXPECT().IntentStatus(gomock.Any(), gomock.Any()).Return(&payment.IntentState{Status: payment.IntentProcessing}, nil)
		res, err := s.gate.ConfirmConsultation(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(payment.IntentProcessing, res.Status)
		s.Nil(res.Request)
	})

	s.Run("declined card keeps the intent for another attempt", func() {
		s.processor.EXPECT().IntentStatus(gomock.Any(), gomock.Any()).
			Return(&payment.IntentState{Status: payment.IntentFailed, FailureReason: "card_declined"}, nil)
		_, err := s.gate.ConfirmConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePaymentDeclined))

		found, err := s.sess.Has(s.ctx, draftstore.KeyConsultationIntent)
		s.Require().NoError(err)
		s.True(found)
	})

	s.Run("finalization failure keeps draft and cart", func() {
		s.processor.EXPECT().IntentStatus(gomock.Any(), gomock.Any()).Return(&payment.IntentState{Status: payment.IntentSucceeded}, nil)
		s.identity.EXPECT().TokenFor(gomock.Any(), s.sess, "anna@example.com").Return("tok", identity.OutcomeVerified, nil)
		s.finalizer.EXPECT().Finalize(gomock.Any(), id.RequestID("42"), gomock.Len(2), gomock.Any(), "tok").
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "collaborator unavailable"))

		_, err := s.gate.ConfirmConsultation(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		for _, key := range []draftstore.Key{draftstore.KeyDraftRequest, draftstore.KeySelectedProducts, draftstore.KeyConsultationIntent} {
			found, err := s.sess.Has(s.ctx, key)
			s.Require().NoError(err)
			s.True(found, key.String())
		}
	})

	s.Run("success finalizes then clears draft and cart", func() {
		finalized := &lifecycle.Request{ID: "42", Status: lifecycle.StatusPending}
		s.processor.EXPECT().IntentStatus(gomock.Any(), gomock.Any()).Return(&payment.IntentState{Status: payment.IntentSucceeded}, nil)
		s.identity.EXPECT().TokenFor(gomock.Any(), s.sess, "anna@example.com").Return("tok", identity.OutcomeVerified, nil)
		s.finalizer.EXPECT().Finalize(gomock.Any(), id.RequestID("42"), gomock.Len(2), gomock.Any(), "tok").
			DoAndReturn(func(_ context.Context, _ id.RequestID, _ []lifecycle.Product, total decimal.Decimal, _ string) (*lifecycle.Request, error) {
				s.True(total.Equal(decimal.RequireFromString("55.00")))
				return finalized, nil
			})

		res, err := s.gate.ConfirmConsultation(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(payment.IntentSucceeded, res.Status)
		s.Equal(finalized.ID, res.Request.ID)

		for _, key := range []draftstore.Key{
			draftstore.KeyDraftRequest, draftstore.KeyWizardStep, draftstore.KeySelectedProducts,
			draftstore.KeySelectedProductsTotal, draftstore.KeyConsultationIntent,
		} {
			found, err := s.sess.Has(s.ctx, key)
			s.Require().NoError(err)
			s.False(found, key.String())
		}
		found, err := s.sess.Has(s.ctx, draftstore.KeyPendingRequestID)
		s.Require().NoError(err)
		s.True(found)
	})
}

func approved() *lifecycle.Request {
	return &lifecycle.Request{
		ID:     "42",
		Status: lifecycle.StatusApproved,
		Products: []lifecycle.Product{
			{ProductID: "prod-a", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
		},
	}
}

func (s *GateSuite) TestProductCheckpoint() {
	s.submitted("42", false)

	s.Run("pending request is not charged", func() {
		s.tracker.EXPECT().Refresh(gomock.Any(), s.sess, id.RequestID("42")).
			Return(&lifecycle.Request{ID: "42", Status: lifecycle.StatusPending}, nil)
		_, err := s.gate.BeginProduct(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("declined request is not charged", func() {
		s.tracker.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&lifecycle.Request{ID: "42", Status: lifecycle.StatusDeclined}, nil)
		_, err := s.gate.BeginProduct(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("intent amount must match the approved products", func() {
		s.tracker.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(approved(), nil)
		s.processor.EXPECT().CreateIntent(gomock.Any(), payment.CheckpointProduct, id.RequestID("42"), "42:product").
			Return(&payment.Intent{ID: "pi_p0", Amount: decimal.RequireFromString("20.00"), Currency: "EUR"}, nil)
		s.processor.EXPECT().CancelIntent(gomock.Any(), id.PaymentIntentID("pi_p0")).Return(nil)
		_, err := s.gate.BeginProduct(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("approved request pays and becomes PAID", func() {
		s.tracker.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(approved(), nil)
		s.processor.EXPECT().CreateIntent(gomock.Any(), payment.CheckpointProduct, id.RequestID("42"), "42:product").
			Return(&payment.Intent{ID: "pi_p1", Amount: decimal.RequireFromString("25.00"), Currency: "EUR"}, nil)
		intent, err := s.gate.BeginProduct(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(payment.CheckpointProduct, intent.Checkpoint)

		paid := approved()
		paid.Status = lifecycle.StatusPaid
		paid.PendingReconcile = true
		s.processor.EXPECT().IntentStatus(gomock.Any(), id.PaymentIntentID("pi_p1")).Return(&payment.IntentState{Status: payment.IntentSucceeded}, nil)
		s.tracker.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(approved(), nil)
		s.tracker.EXPECT().MarkPaidOptimistic(gomock.Any(), s.sess, gomock.Any()).Return(paid, nil)

		res, err := s.gate.ConfirmProduct(s.ctx, s.sess)
		s.Require().NoError(err)
		s.Equal(lifecycle.StatusPaid, res.Request.Status)

		found, err := s.sess.Has(s.ctx, draftstore.KeyProductIntent)
		s.Require().NoError(err)
		s.False(found)
	})

	s.Run("confirm without an intent redirects to payment", func() {
		_, err := s.gate.ConfirmProduct(s.ctx, s.sess)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal(dErrors.RedirectPayment, dErrors.RedirectOf(err))
	})
}
