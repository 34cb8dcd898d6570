package wizard

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rxintake/internal/intake/models"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// WizardSuite covers the questionnaire graph: branching, required fields,
// advisory disclaimers and pointer recovery.
type WizardSuite struct {
	suite.Suite
	draft *models.Draft
}

func TestWizardSuite(t *testing.T) {
	suite.Run(t, new(WizardSuite))
}

func (s *WizardSuite) SetupTest() {
	d, err := models.NewDraft(id.Postcode("10115"), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.draft = d
}

// answersFor returns a complete answer set for step.
func answersFor(step Step) Answers {
	switch step {
	case StepConsultationType:
		return Answers{ConsultationType: "questionnaire"}
	case StepDeliveryMethod:
		return Answers{
			DeliveryMethod: "courier",
			FullName:       "Jana Novak",
			Email:          "jana@example.com",
			Phone:          "+49 30 1234567",
			Street:         "Invalidenstr. 1",
			City:           "Berlin",
		}
	case StepCondition:
		return Answers{Condition: "chronic back pain"}
	case StepSymptoms:
		return Answers{SymptomOnset: "gte_3_months", SymptomFrequency: "often"}
	case StepPriorDiagnosis:
		return Answers{PreviousTreatment: "yes"}
	case StepPriorPrescription:
		return Answers{PastPrescriptionGermany: "no"}
	case StepTreatmentEffect:
		return Answers{PositiveEffect: "partially"}
	}
	return Answers{}
}

func (s *WizardSuite) apply(step Step, a Answers) {
	_, err := Apply(step, s.draft, a)
	s.Require().NoError(err)
}

func (s *WizardSuite) TestLinearPath() {
	s.Run("questionnaire walks every step and exits to submission", func() {
		step := First
		var visited []Step
		for {
			visited = append(visited, step)
			s.apply(step, answersFor(step))
			t, err := Next(step, s.draft)
			s.Require().NoError(err)
			if t.IsExit() {
				s.Equal(ExitSubmit, t.Exit)
				break
			}
			step = t.Next
		}
		s.Equal(Steps, visited)
	})
}

func (s *WizardSuite) TestConsultationBranch() {
	for _, kind := range []string{"video", "onsite"} {
		s.Run(kind+" exits without reaching delivery method", func() {
			s.SetupTest()
			s.apply(StepConsultationType, Answers{ConsultationType: kind})

			t, err := Next(StepConsultationType, s.draft)
			s.Require().NoError(err)
			s.Equal(ExitExternalConsultation, t.Exit)
			s.Empty(t.Next)
			s.False(Reachable(StepDeliveryMethod, s.draft))
			s.Equal(StepConsultationType, Frontier(s.draft))
		})
	}

	s.Run("unknown consultation type is rejected and not stored", func() {
		s.SetupTest()
		_, err := Apply(StepConsultationType, s.draft, Answers{ConsultationType: "phone"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Empty(s.draft.ConsultationType)
	})
}

func (s *WizardSuite) TestRequiredFields() {
	s.Run("nothing answered blocks the first step", func() {
		_, err := Next(StepConsultationType, s.draft)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("prescription only without pharmacy email never allows next", func() {
		s.SetupTest()
		s.apply(StepConsultationType, answersFor(StepConsultationType))
		a := answersFor(StepDeliveryMethod)
		a.DeliveryMethod = "prescription_only"
		a.Street, a.City = "", ""
		s.apply(StepDeliveryMethod, a)

		_, err := Next(StepDeliveryMethod, s.draft)
		s.Require().Error(err)
		s.Contains(Missing(StepDeliveryMethod, s.draft), "pharmacy_email")
		s.False(Render(StepDeliveryMethod, s.draft).CanAdvance)

		s.apply(StepDeliveryMethod, Answers{DeliveryMethod: "prescription_only", PharmacyEmail: "apotheke@example.de"})
		t, err := Next(StepDeliveryMethod, s.draft)
		s.Require().NoError(err)
		s.Equal(StepCondition, t.Next)
	})

	s.Run("prescription only does not need a street address", func() {
		s.SetupTest()
		a := answersFor(StepDeliveryMethod)
		a.DeliveryMethod = "prescription_only"
		a.Street, a.City = "", ""
		a.PharmacyEmail = "apotheke@example.de"
		s.apply(StepDeliveryMethod, a)
		s.Empty(Missing(StepDeliveryMethod, s.draft))
	})

	s.Run("courier needs street and city", func() {
		s.SetupTest()
		a := answersFor(StepDeliveryMethod)
		a.Street = ""
		s.apply(StepDeliveryMethod, a)
		s.Equal([]string{"street"}, Missing(StepDeliveryMethod, s.draft))
	})

	s.Run("blank condition blocks next", func() {
		s.SetupTest()
		s.apply(StepCondition, Answers{Condition: "   "})
		_, err := Next(StepCondition, s.draft)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("invalid contact email is rejected", func() {
		s.SetupTest()
		a := answersFor(StepDeliveryMethod)
		a.Email = "not-an-email"
		_, err := Apply(StepDeliveryMethod, s.draft, a)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Empty(s.draft.FullName, "nothing is written when validation fails")
	})
}

func (s *WizardSuite) TestDisclaimersAreAdvisory() {
	s.Run("short and never symptoms warn but advance", func() {
		s.apply(StepSymptoms, Answers{SymptomOnset: "lt_3_months", SymptomFrequency: "never"})
		s.Equal([]Disclaimer{DisclaimerShortInfrequentSymptoms}, Disclaimers(StepSymptoms, s.draft))
		t, err := Next(StepSymptoms, s.draft)
		s.Require().NoError(err)
		s.Equal(StepPriorDiagnosis, t.Next)
	})

	s.Run("no prior diagnosis warns but advances", func() {
		s.apply(StepPriorDiagnosis, Answers{PreviousTreatment: "no"})
		s.Equal([]Disclaimer{DisclaimerNoPriorDiagnosis}, Render(StepPriorDiagnosis, s.draft).Disclaimers)
		_, err := Next(StepPriorDiagnosis, s.draft)
		s.NoError(err)
	})

	s.Run("negative prior effect warns but exits to submission", func() {
		s.apply(StepTreatmentEffect, Answers{PositiveEffect: "no"})
		s.Equal([]Disclaimer{DisclaimerNegativePriorEffect}, Disclaimers(StepTreatmentEffect, s.draft))
		t, err := Next(StepTreatmentEffect, s.draft)
		s.Require().NoError(err)
		s.Equal(ExitSubmit, t.Exit)
	})
}

func (s *WizardSuite) TestBackNavigation() {
	s.Run("back never clears answers and re-advancing shows them", func() {
		s.apply(StepConsultationType, answersFor(StepConsultationType))
		s.apply(StepDeliveryMethod, answersFor(StepDeliveryMethod))
		s.apply(StepCondition, answersFor(StepCondition))

		prev, err := Back(StepCondition)
		s.Require().NoError(err)
		s.Equal(StepDeliveryMethod, prev)
		s.Equal("chronic back pain", s.draft.Condition)

		view := Render(StepCondition, s.draft)
		s.Equal("chronic back pain", view.Draft.Condition)
		s.True(view.CanAdvance)
	})

	s.Run("back from the first step is rejected", func() {
		_, err := Back(First)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidTransition))
		s.False(Render(First, s.draft).CanGoBack)
	})

	s.Run("empty answers on revisit keep stored values", func() {
		s.apply(StepCondition, Answers{})
		s.Equal("chronic back pain", s.draft.Condition)
	})
}

func (s *WizardSuite) TestEmailChange() {
	s.apply(StepDeliveryMethod, answersFor(StepDeliveryMethod))

	s.Run("first email is not a change", func() {
		d, _ := models.NewDraft(id.Postcode("10115"), time.Now())
		change, err := Apply(StepDeliveryMethod, d, answersFor(StepDeliveryMethod))
		s.Require().NoError(err)
		s.False(change.EmailChanged)
	})

	s.Run("different email is reported with the previous value", func() {
		a := answersFor(StepDeliveryMethod)
		a.Email = "Other@Example.com"
		change, err := Apply(StepDeliveryMethod, s.draft, a)
		s.Require().NoError(err)
		s.True(change.EmailChanged)
		s.Equal("jana@example.com", change.PreviousEmail)
		s.Equal("other@example.com", s.draft.Email)
	})

	s.Run("same email in different case is not a change", func() {
		a := answersFor(StepDeliveryMethod)
		a.Email = "OTHER@example.com"
		change, err := Apply(StepDeliveryMethod, s.draft, a)
		s.Require().NoError(err)
		s.False(change.EmailChanged)
	})
}

func (s *WizardSuite) TestPostcodeIsImmutable() {
	for _, step := range Steps {
		s.apply(step, answersFor(step))
	}
	s.Equal("10115", s.draft.Postcode)
}

func (s *WizardSuite) TestClamp() {
	s.apply(StepConsultationType, answersFor(StepConsultationType))
	s.apply(StepDeliveryMethod, answersFor(StepDeliveryMethod))

	s.Run("pointer on the path is kept", func() {
		s.Equal(StepDeliveryMethod, Clamp(StepDeliveryMethod, s.draft))
		s.Equal(StepConsultationType, Clamp(StepConsultationType, s.draft))
	})

	s.Run("pointer ahead of the answers falls back to the frontier", func() {
		s.Equal(StepCondition, Clamp(StepTreatmentEffect, s.draft))
	})

	s.Run("unknown pointer falls back to the frontier", func() {
		s.Equal(StepCondition, Clamp(Step("payment"), s.draft))
	})
}

// TestRandomNavigationKeepsAnswers drives random forward/back sequences and
// checks that an answered field is never empty afterwards.
func (s *WizardSuite) TestRandomNavigationKeepsAnswers() {
	rng := rand.New(rand.NewPCG(42, 7))
	for run := 0; run < 200; run++ {
		s.SetupTest()
		step := First
		answered := map[Step]bool{}
		for move := 0; move < 40; move++ {
			if rng.IntN(3) == 0 {
				if prev, err := Back(step); err == nil {
					step = prev
				}
			} else {
				if !answered[step] || rng.IntN(2) == 0 {
					s.apply(step, answersFor(step))
					answered[step] = true
				}
				t, err := Next(step, s.draft)
				s.Require().NoError(err)
				if !t.IsExit() {
					step = t.Next
				}
			}
			for a := range answered {
				s.Empty(Missing(a, s.draft), "answers for %s were lost on run %d", a, run)
			}
			s.True(Reachable(step, s.draft), "step %s reached without predecessors", step)
		}
	}
}
