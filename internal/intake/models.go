// Package intake drives the questionnaire: it persists the wizard in the
// draft store, runs identity resolution at the end, and submits the request.
package intake

import (
	"rxintake/internal/intake/models"
	"rxintake/internal/wizard"
	dErrors "rxintake/pkg/domain-errors"
)

// Outcome tells the UI where the flow stands after an operation.
type Outcome string

const (
	OutcomeInProgress           Outcome = "in_progress"
	OutcomeExternalConsultation Outcome = "external_consultation"
	OutcomeAwaitingCode         Outcome = "awaiting_code"
	OutcomeSubmitted            Outcome = "submitted"
	// OutcomeSubmittedDegraded means the request only exists locally and
	// must be reconciled before payment.
	OutcomeSubmittedDegraded Outcome = "submitted_degraded"
)

// State is the response to every wizard operation.
type State struct {
	Outcome Outcome                `json:"outcome"`
	View    *wizard.View           `json:"view,omitempty"`
	Pending *models.PendingRequest `json:"pending,omitempty"`
	Next    dErrors.Redirect       `json:"next,omitempty"`
}

func submittedState(pending *models.PendingRequest) *State {
	if pending.Degraded {
		return &State{Outcome: OutcomeSubmittedDegraded, Pending: pending}
	}
	return &State{Outcome: OutcomeSubmitted, Pending: pending, Next: dErrors.RedirectMarketplace}
}
