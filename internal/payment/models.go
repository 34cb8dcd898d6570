// Package payment gates the consultation and product charges. The processor
// performs the charge; this package only creates intents, reuses outstanding
// ones and records outcomes.
package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"rxintake/internal/lifecycle"
	id "rxintake/pkg/domain"
)

// Checkpoint names one of the two charges.
type Checkpoint string

const (
	CheckpointConsultation Checkpoint = "consultation"
	CheckpointProduct      Checkpoint = "product"
)

// IntentStatus is the processor-reported state of a charge intent.
type IntentStatus string

const (
	IntentRequiresPayment IntentStatus = "requires_payment"
	IntentProcessing      IntentStatus = "processing"
	IntentSucceeded       IntentStatus = "succeeded"
	IntentFailed          IntentStatus = "failed"
	IntentCanceled        IntentStatus = "canceled"
)

func (s IntentStatus) IsValid() bool {
	switch s {
	case IntentRequiresPayment, IntentProcessing, IntentSucceeded, IntentFailed, IntentCanceled:
		return true
	}
	return false
}

// Intent is an outstanding charge at the processor. The client secret is
// handed to the browser so it can collect card details directly.
type Intent struct {
	ID           id.PaymentIntentID `json:"intent_id"`
	RequestID    id.RequestID       `json:"request_id"`
	Checkpoint   Checkpoint         `json:"checkpoint"`
	ClientSecret string             `json:"client_secret"`
	Amount       decimal.Decimal    `json:"amount"`
	Currency     string             `json:"currency"`
	CreatedAt    time.Time          `json:"created_at"`
}

// IntentState is the answer to an intent status query.
type IntentState struct {
	Status        IntentStatus
	FailureReason string
}

// Result is the outcome of a Confirm call. Request is set once the
// collaborator has acknowledged the paid step.
type Result struct {
	Checkpoint Checkpoint         `json:"checkpoint"`
	IntentID   id.PaymentIntentID `json:"intent_id"`
	Status     IntentStatus       `json:"status"`
	Request    *lifecycle.Request `json:"request,omitempty"`
}
