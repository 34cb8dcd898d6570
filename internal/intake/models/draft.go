package models

import (
	"time"

	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// Draft is the treatment request while the wizard owns it.
//
// Invariants:
//   - Postcode is set at creation and never changes afterwards
//   - Fields only grow: a step writes its own fields and never clears another step's
//   - Revision increases by one on every accepted mutation
type Draft struct {
	FullName      string `json:"full_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Street        string `json:"street,omitempty"`
	City          string `json:"city,omitempty"`
	Postcode      string `json:"postcode"`
	PharmacyEmail string `json:"pharmacy_email,omitempty"`

	ConsultationType        ConsultationType `json:"consultation_type,omitempty"`
	DeliveryMethod          DeliveryMethod   `json:"delivery_method,omitempty"`
	Condition               string           `json:"condition,omitempty"`
	SymptomOnset            SymptomOnset     `json:"symptom_onset,omitempty"`
	SymptomFrequency        SymptomFrequency `json:"symptom_frequency,omitempty"`
	PreviousTreatment       YesNo            `json:"previous_treatment,omitempty"`
	PastPrescriptionGermany YesNo            `json:"past_prescription_germany,omitempty"`
	PositiveEffect          TreatmentEffect  `json:"positive_effect,omitempty"`

	Revision  uint64    `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft creates the empty draft for a wizard entered with postcode.
func NewDraft(postcode id.Postcode, now time.Time) (*Draft, error) {
	if postcode == "" {
		return nil, dErrors.WithRedirect(dErrors.CodePreconditionFailed, "postcode is required to start", dErrors.RedirectStart)
	}
	return &Draft{
		Postcode:  postcode.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch records an accepted mutation.
func (d *Draft) Touch(now time.Time) {
	d.Revision++
	d.UpdatedAt = now
}

// Identity captures the fields a late response is checked against.
type Identity struct {
	Email    string
	Revision uint64
}

func (d *Draft) Identity() Identity {
	return Identity{Email: d.Email, Revision: d.Revision}
}

// Matches reports whether the draft still has the identity captured earlier.
func (d *Draft) Matches(idt Identity) bool {
	return d.Email == idt.Email && d.Revision == idt.Revision
}

// Clone returns an independent copy.
func (d *Draft) Clone() *Draft {
	cp := *d
	return &cp
}
