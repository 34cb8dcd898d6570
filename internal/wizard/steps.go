// Package wizard is the intake questionnaire as an explicit graph: a
// transition table keyed by (step, answer) plus a required-fields predicate
// per step. It is pure; persistence and side effects live in package intake.
package wizard

import (
	"slices"

	"rxintake/internal/intake/models"
	dErrors "rxintake/pkg/domain-errors"
)

// Step names one page of the questionnaire.
type Step string

const (
	StepConsultationType  Step = "consultation_type"
	StepDeliveryMethod    Step = "delivery_method"
	StepCondition         Step = "condition"
	StepSymptoms          Step = "symptoms"
	StepPriorDiagnosis    Step = "prior_diagnosis"
	StepPriorPrescription Step = "prior_prescription"
	StepTreatmentEffect   Step = "treatment_effect"
)

// Steps lists the questionnaire in display order.
var Steps = []Step{
	StepConsultationType,
	StepDeliveryMethod,
	StepCondition,
	StepSymptoms,
	StepPriorDiagnosis,
	StepPriorPrescription,
	StepTreatmentEffect,
}

// First is the entry step.
const First = StepConsultationType

func (s Step) String() string { return string(s) }

func (s Step) IsValid() bool { return slices.Contains(Steps, s) }

// Index is the zero-based display position, or -1 for unknown steps.
func (s Step) Index() int { return slices.Index(Steps, s) }

// ParseStep validates a step name from a URL or the store.
func ParseStep(raw string) (Step, error) {
	s := Step(raw)
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown wizard step")
	}
	return s, nil
}

// Exit names a terminal transition out of the wizard.
type Exit string

const (
	ExitNone Exit = ""
	// ExitExternalConsultation leaves for the video/onsite booking flow.
	ExitExternalConsultation Exit = "external_consultation"
	// ExitSubmit hands the completed draft to identity resolution and submission.
	ExitSubmit Exit = "submit"
)

// Transition is the result of "next": either another step or an exit.
type Transition struct {
	From Step `json:"from"`
	Next Step `json:"next,omitempty"`
	Exit Exit `json:"exit,omitempty"`
}

// IsExit reports whether the transition leaves the wizard.
func (t Transition) IsExit() bool { return t.Exit != ExitNone }

// anyAnswer matches every answer for a step.
const anyAnswer = "*"

type edge struct {
	answer string
	next   Step
	exit   Exit
}

// transitions is the graph. Edges are tried in order; anyAnswer is the fallback.
var transitions = map[Step][]edge{
	StepConsultationType: {
		{answer: string(models.ConsultationQuestionnaire), next: StepDeliveryMethod},
		{answer: string(models.ConsultationVideo), exit: ExitExternalConsultation},
		{answer: string(models.ConsultationOnsite), exit: ExitExternalConsultation},
	},
	StepDeliveryMethod:    {{answer: anyAnswer, next: StepCondition}},
	StepCondition:         {{answer: anyAnswer, next: StepSymptoms}},
	StepSymptoms:          {{answer: anyAnswer, next: StepPriorDiagnosis}},
	StepPriorDiagnosis:    {{answer: anyAnswer, next: StepPriorPrescription}},
	StepPriorPrescription: {{answer: anyAnswer, next: StepTreatmentEffect}},
	StepTreatmentEffect:   {{answer: anyAnswer, exit: ExitSubmit}},
}

// branchAnswer is the draft value the transition table switches on.
func branchAnswer(step Step, d *models.Draft) string {
	if step == StepConsultationType {
		return string(d.ConsultationType)
	}
	return anyAnswer
}

// lookup resolves (step, answer) to a transition.
func lookup(step Step, answer string) (Transition, bool) {
	for _, e := range transitions[step] {
		if e.answer == answer || e.answer == anyAnswer {
			return Transition{From: step, Next: e.next, Exit: e.exit}, true
		}
	}
	return Transition{}, false
}

// predecessor returns the step whose forward edge leads to step.
func predecessor(step Step) (Step, bool) {
	for _, from := range Steps {
		for _, e := range transitions[from] {
			if e.next == step && e.exit == ExitNone {
				return from, true
			}
		}
	}
	return "", false
}
