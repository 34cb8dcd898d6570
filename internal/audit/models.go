package audit

import (
	"time"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance:
	// request submission, prescription decisions and payments.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers identity events: code issuance, failed codes,
	// device trust and token invalidation.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Action names an audited action.
type Action string

const (
	// Identity events
	ActionIdentityResolved  Action = "identity_resolved"
	ActionCodeIssued        Action = "otp_issued"
	ActionCodeResent        Action = "otp_resent"
	ActionCodeRejected      Action = "otp_rejected"
	ActionCodeExpired       Action = "otp_expired"
	ActionDeviceTrusted     Action = "device_trusted"
	ActionTokenInvalidated  Action = "session_token_invalidated"
	ActionReauthRequired    Action = "reauth_required"
	ActionIdentityTokenSent Action = "identity_token_issued"

	// Intake events
	ActionRequestSubmitted  Action = "request_submitted"
	ActionRequestDegraded   Action = "request_submitted_degraded"
	ActionRequestReconciled Action = "request_reconciled"
	ActionRequestFinalized  Action = "request_finalized"

	// Lifecycle events
	ActionRequestApproved Action = "request_approved"
	ActionRequestDeclined Action = "request_declined"
	ActionStatusAdvanced  Action = "request_status_advanced"

	// Payment events
	ActionPaymentIntentCreated Action = "payment_intent_created"
	ActionPaymentSucceeded     Action = "payment_succeeded"
	ActionPaymentFailed        Action = "payment_failed"
)

var actionCategories = map[Action]EventCategory{
	ActionRequestSubmitted:     CategoryCompliance,
	ActionRequestDegraded:      CategoryCompliance,
	ActionRequestReconciled:    CategoryCompliance,
	ActionRequestFinalized:     CategoryCompliance,
	ActionRequestApproved:      CategoryCompliance,
	ActionRequestDeclined:      CategoryCompliance,
	ActionStatusAdvanced:       CategoryCompliance,
	ActionPaymentSucceeded:     CategoryCompliance,
	ActionPaymentFailed:        CategoryCompliance,
	ActionCodeIssued:           CategorySecurity,
	ActionCodeResent:           CategorySecurity,
	ActionCodeRejected:         CategorySecurity,
	ActionCodeExpired:          CategorySecurity,
	ActionDeviceTrusted:        CategorySecurity,
	ActionTokenInvalidated:     CategorySecurity,
	ActionReauthRequired:       CategorySecurity,
	ActionIdentityResolved:     CategoryOperations,
	ActionIdentityTokenSent:    CategoryOperations,
	ActionPaymentIntentCreated: CategoryOperations,
}

// Category returns the category for a. Unknown actions are operational.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from domain logic to capture key actions. It carries no
// questionnaire content; Subject is an opaque identifier (request id, hashed
// email) never free text.
type Event struct {
	Category  EventCategory     `json:"category"`
	Action    Action            `json:"action"`
	Timestamp time.Time         `json:"timestamp"`
	SessionID string            `json:"session_id,omitempty"`
	Subject   string            `json:"subject,omitempty"`
	Actor     string            `json:"actor,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}
