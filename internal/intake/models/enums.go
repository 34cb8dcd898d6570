package models

import (
	dErrors "rxintake/pkg/domain-errors"
)

// ConsultationType selects how the patient is assessed. Only the
// questionnaire continues inside the wizard.
type ConsultationType string

const (
	ConsultationQuestionnaire ConsultationType = "questionnaire"
	ConsultationVideo         ConsultationType = "video"
	ConsultationOnsite        ConsultationType = "onsite"
)

func (c ConsultationType) IsValid() bool {
	switch c {
	case ConsultationQuestionnaire, ConsultationVideo, ConsultationOnsite:
		return true
	}
	return false
}

// DeliveryMethod decides where the product goes.
type DeliveryMethod string

const (
	DeliveryCourier          DeliveryMethod = "courier"
	DeliveryShipping         DeliveryMethod = "shipping"
	DeliveryPrescriptionOnly DeliveryMethod = "prescription_only"
)

func (d DeliveryMethod) IsValid() bool {
	switch d {
	case DeliveryCourier, DeliveryShipping, DeliveryPrescriptionOnly:
		return true
	}
	return false
}

// NeedsAddress reports whether the method delivers to the patient.
func (d DeliveryMethod) NeedsAddress() bool {
	return d == DeliveryCourier || d == DeliveryShipping
}

type SymptomOnset string

const (
	OnsetAtLeastThreeMonths SymptomOnset = "gte_3_months"
	OnsetUnderThreeMonths   SymptomOnset = "lt_3_months"
)

func (o SymptomOnset) IsValid() bool {
	return o == OnsetAtLeastThreeMonths || o == OnsetUnderThreeMonths
}

type SymptomFrequency string

const (
	FrequencyAlways SymptomFrequency = "always"
	FrequencyOften  SymptomFrequency = "often"
	FrequencyNever  SymptomFrequency = "never"
)

func (f SymptomFrequency) IsValid() bool {
	switch f {
	case FrequencyAlways, FrequencyOften, FrequencyNever:
		return true
	}
	return false
}

// YesNo answers binary questions.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

func (y YesNo) IsValid() bool { return y == Yes || y == No }

// TreatmentEffect rates how well a previous treatment worked.
type TreatmentEffect string

const (
	EffectPositive TreatmentEffect = "yes"
	EffectPartial  TreatmentEffect = "partially"
	EffectNegative TreatmentEffect = "no"
)

func (e TreatmentEffect) IsValid() bool {
	switch e {
	case EffectPositive, EffectPartial, EffectNegative:
		return true
	}
	return false
}

// parseEnum validates an optional enum answer. An empty string means "not
// answered" and is accepted; the wizard's required-field predicate decides
// whether the step may advance.
func parseEnum[T ~string](raw string, field string, valid func(T) bool) (T, error) {
	v := T(raw)
	if raw == "" || valid(v) {
		return v, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
}

func ParseConsultationType(s string) (ConsultationType, error) {
	return parseEnum(s, "consultation_type", ConsultationType.IsValid)
}

func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	return parseEnum(s, "delivery_method", DeliveryMethod.IsValid)
}

func ParseSymptomOnset(s string) (SymptomOnset, error) {
	return parseEnum(s, "symptom_onset", SymptomOnset.IsValid)
}

func ParseSymptomFrequency(s string) (SymptomFrequency, error) {
	return parseEnum(s, "symptom_frequency", SymptomFrequency.IsValid)
}

func ParseYesNo(s, field string) (YesNo, error) {
	return parseEnum(s, field, YesNo.IsValid)
}

func ParseTreatmentEffect(s string) (TreatmentEffect, error) {
	return parseEnum(s, "positive_effect", TreatmentEffect.IsValid)
}
