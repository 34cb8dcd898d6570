package wizard

import "rxintake/internal/intake/models"

// Disclaimer is an advisory notice. Disclaimers never block "next".
type Disclaimer string

const (
	DisclaimerShortInfrequentSymptoms Disclaimer = "short_infrequent_symptoms"
	DisclaimerNoPriorDiagnosis        Disclaimer = "no_prior_diagnosis"
	DisclaimerNegativePriorEffect     Disclaimer = "negative_prior_effect"
)

// Disclaimers returns the notices to show on step for the current answers.
func Disclaimers(step Step, d *models.Draft) []Disclaimer {
	var out []Disclaimer
	switch step {
	case StepSymptoms:
		if d.SymptomOnset == models.OnsetUnderThreeMonths && d.SymptomFrequency == models.FrequencyNever {
			out = append(out, DisclaimerShortInfrequentSymptoms)
		}
	case StepPriorDiagnosis:
		if d.PreviousTreatment == models.No {
			out = append(out, DisclaimerNoPriorDiagnosis)
		}
	case StepTreatmentEffect:
		if d.PositiveEffect == models.EffectNegative {
			out = append(out, DisclaimerNegativePriorEffect)
		}
	}
	return out
}
