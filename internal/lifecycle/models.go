// Package lifecycle tracks a treatment request through review, payment and
// fulfillment, and projects it for each role.
package lifecycle

import (
	"time"

	"github.com/shopspring/decimal"

	id "rxintake/pkg/domain"
)

// Product is one line of a finalized request.
type Product struct {
	ProductID id.ProductID    `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (p Product) LineTotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Request is the local projection of a collaborator-owned treatment request.
// PendingReconcile marks an optimistic local status the collaborator has not
// yet confirmed.
type Request struct {
	ID               id.RequestID    `json:"id"`
	PatientID        id.PatientID    `json:"patient_id"`
	PharmacyID       id.PharmacyID   `json:"pharmacy_id"`
	Status           Status          `json:"status"`
	Products         []Product       `json:"products,omitempty"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Condition        string          `json:"condition,omitempty"`
	SymptomOnset     string          `json:"symptom_onset,omitempty"`
	SymptomFrequency string          `json:"symptom_frequency,omitempty"`
	DeclineReason    string          `json:"decline_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	PendingReconcile bool            `json:"pending_reconcile,omitempty"`
}

// ProductTotal sums the line items.
func (r *Request) ProductTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Products {
		total = total.Add(p.LineTotal())
	}
	return total
}
