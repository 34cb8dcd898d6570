package wizard

import (
	"strings"

	"rxintake/internal/intake/models"
)

// Missing lists the required fields of step that the draft does not hold yet.
// "next" is available only when the list is empty.
func Missing(step Step, d *models.Draft) []string {
	var missing []string
	require := func(field string, present bool) {
		if !present {
			missing = append(missing, field)
		}
	}
	switch step {
	case StepConsultationType:
		require("consultation_type", d.ConsultationType.IsValid())
	case StepDeliveryMethod:
		require("delivery_method", d.DeliveryMethod.IsValid())
		require("full_name", notBlank(d.FullName))
		require("email", notBlank(d.Email))
		require("phone", notBlank(d.Phone))
		if d.DeliveryMethod.NeedsAddress() {
			require("street", notBlank(d.Street))
			require("city", notBlank(d.City))
		}
		if d.DeliveryMethod == models.DeliveryPrescriptionOnly {
			require("pharmacy_email", notBlank(d.PharmacyEmail))
		}
	case StepCondition:
		require("condition", notBlank(d.Condition))
	case StepSymptoms:
		require("symptom_onset", d.SymptomOnset.IsValid())
		require("symptom_frequency", d.SymptomFrequency.IsValid())
	case StepPriorDiagnosis:
		require("previous_treatment", d.PreviousTreatment.IsValid())
	case StepPriorPrescription:
		require("past_prescription_germany", d.PastPrescriptionGermany.IsValid())
	case StepTreatmentEffect:
		require("positive_effect", d.PositiveEffect.IsValid())
	}
	return missing
}

// Complete reports whether step's required fields are present.
func Complete(step Step, d *models.Draft) bool {
	return len(Missing(step, d)) == 0
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }
