package wizard

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rxintake/internal/intake/models"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// Answers is the form submitted for one step. Fields that do not belong to
// the step are ignored; empty fields leave the stored value unchanged.
type Answers struct {
	ConsultationType string `json:"consultation_type,omitempty"`

	DeliveryMethod string `json:"delivery_method,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Street         string `json:"street,omitempty"`
	City           string `json:"city,omitempty"`
	PharmacyEmail  string `json:"pharmacy_email,omitempty"`

	Condition string `json:"condition,omitempty"`

	SymptomOnset     string `json:"symptom_onset,omitempty"`
	SymptomFrequency string `json:"symptom_frequency,omitempty"`

	PreviousTreatment       string `json:"previous_treatment,omitempty"`
	PastPrescriptionGermany string `json:"past_prescription_germany,omitempty"`
	PositiveEffect          string `json:"positive_effect,omitempty"`
}

// Change describes what Apply did to the draft.
type Change struct {
	Changed       bool
	EmailChanged  bool
	PreviousEmail string
}

const maxTextLength = 500

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()/-]{5,24}$`)

// Apply validates a and writes the fields owned by step into d. Nothing is
// written when validation fails.
func Apply(step Step, d *models.Draft, a Answers) (Change, error) {
	next := d.Clone()
	switch step {
	case StepConsultationType:
		v, err := models.ParseConsultationType(strings.TrimSpace(a.ConsultationType))
		if err != nil {
			return Change{}, err
		}
		setEnum(&next.ConsultationType, v)
	case StepDeliveryMethod:
		if err := applyContact(next, a); err != nil {
			return Change{}, err
		}
	case StepCondition:
		if err := setText(&next.Condition, a.Condition, "condition"); err != nil {
			return Change{}, err
		}
	case StepSymptoms:
		onset, err := models.ParseSymptomOnset(strings.TrimSpace(a.SymptomOnset))
		if err != nil {
			return Change{}, err
		}
		freq, err := models.ParseSymptomFrequency(strings.TrimSpace(a.SymptomFrequency))
		if err != nil {
			return Change{}, err
		}
		setEnum(&next.SymptomOnset, onset)
		setEnum(&next.SymptomFrequency, freq)
	case StepPriorDiagnosis:
		v, err := models.ParseYesNo(strings.TrimSpace(a.PreviousTreatment), "previous_treatment")
		if err != nil {
			return Change{}, err
		}
		setEnum(&next.PreviousTreatment, v)
	case StepPriorPrescription:
		v, err := models.ParseYesNo(strings.TrimSpace(a.PastPrescriptionGermany), "past_prescription_germany")
		if err != nil {
			return Change{}, err
		}
		setEnum(&next.PastPrescriptionGermany, v)
	case StepTreatmentEffect:
		v, err := models.ParseTreatmentEffect(strings.TrimSpace(a.PositiveEffect))
		if err != nil {
			return Change{}, err
		}
		setEnum(&next.PositiveEffect, v)
	default:
		return Change{}, dErrors.New(dErrors.CodeInvalidInput, "unknown wizard step")
	}

	change := Change{
		Changed:       *next != *d,
		EmailChanged:  next.Email != d.Email && d.Email != "",
		PreviousEmail: d.Email,
	}
	*d = *next
	return change, nil
}

func applyContact(d *models.Draft, a Answers) error {
	method, err := models.ParseDeliveryMethod(strings.TrimSpace(a.DeliveryMethod))
	if err != nil {
		return err
	}
	if raw := strings.TrimSpace(a.Email); raw != "" {
		email, err := id.ParseEmail(raw)
		if err != nil {
			return err
		}
		d.Email = email.String()
	}
	if raw := strings.TrimSpace(a.PharmacyEmail); raw != "" {
		email, err := id.ParseEmail(raw)
		if err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid pharmacy_email")
		}
		d.PharmacyEmail = email.String()
	}
	if raw := strings.TrimSpace(a.Phone); raw != "" {
		if !phonePattern.MatchString(raw) {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid phone")
		}
		d.Phone = raw
	}
	setEnum(&d.DeliveryMethod, method)
	for _, f := range []struct {
		dst   *string
		value string
		name  string
	}{
		{&d.FullName, a.FullName, "full_name"},
		{&d.Street, a.Street, "street"},
		{&d.City, a.City, "city"},
	} {
		if err := setText(f.dst, f.value, f.name); err != nil {
			return err
		}
	}
	return nil
}

func setEnum[T ~string](dst *T, v T) {
	if v != "" {
		*dst = v
	}
}

func setText(dst *string, raw, field string) error {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	if utf8.RuneCountInString(v) > maxTextLength {
		return dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	*dst = v
	return nil
}
