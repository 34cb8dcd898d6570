package models

import (
	"time"

	id "rxintake/pkg/domain"
)

// PendingRequest is the reference kept after submission. Degraded marks a
// locally synthesized id for a submission that never reached the
// collaborator; such requests must be reconciled before payment.
type PendingRequest struct {
	ID         id.RequestID  `json:"id"`
	PharmacyID id.PharmacyID `json:"pharmacy_id,omitempty"`
	PatientID  id.PatientID  `json:"patient_id,omitempty"`
	Degraded   bool          `json:"degraded"`
	CreatedAt  time.Time     `json:"created_at"`
}
