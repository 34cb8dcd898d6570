package wizard

import (
	"fmt"
	"strings"

	"rxintake/internal/intake/models"
	dErrors "rxintake/pkg/domain-errors"
)

// Next resolves the transition out of step. It fails with CodeInvalidInput
// while required fields are missing; disclaimers never block.
func Next(step Step, d *models.Draft) (Transition, error) {
	if !step.IsValid() {
		return Transition{}, dErrors.New(dErrors.CodeInvalidInput, "unknown wizard step")
	}
	if missing := Missing(step, d); len(missing) > 0 {
		return Transition{}, dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("%s is incomplete: missing %s", step, strings.Join(missing, ", ")))
	}
	t, ok := lookup(step, branchAnswer(step, d))
	if !ok {
		return Transition{}, dErrors.New(dErrors.CodeInvalidTransition, "no transition for answer on "+step.String())
	}
	return t, nil
}

// Back returns the previous step. The draft is not touched.
func Back(step Step) (Step, error) {
	prev, ok := predecessor(step)
	if !ok {
		return step, dErrors.New(dErrors.CodeInvalidTransition, "already at the first step")
	}
	return prev, nil
}

// Path walks the graph from the first step following the draft's answers and
// returns the steps visited up to and including the first incomplete one. The
// walk stops at an exit.
func Path(d *models.Draft) []Step {
	var path []Step
	step := First
	for {
		path = append(path, step)
		t, err := Next(step, d)
		if err != nil || t.IsExit() {
			return path
		}
		step = t.Next
	}
}

// Frontier is the furthest step the draft can legitimately be on.
func Frontier(d *models.Draft) Step {
	path := Path(d)
	return path[len(path)-1]
}

// Reachable reports whether step lies on the draft's path, i.e. all of its
// predecessors are complete.
func Reachable(step Step, d *models.Draft) bool {
	for _, s := range Path(d) {
		if s == step {
			return true
		}
	}
	return false
}

// Clamp repairs a stored step pointer. A pointer beyond the frontier (for
// example after a crash between the draft write and the pointer write, or a
// tampered value) moves back to the frontier; a pointer on the path is kept.
func Clamp(pointer Step, d *models.Draft) Step {
	if pointer.IsValid() && Reachable(pointer, d) {
		return pointer
	}
	return Frontier(d)
}

// View is what the UI needs to render a step.
type View struct {
	Step        Step          `json:"step"`
	Index       int           `json:"index"`
	Total       int           `json:"total"`
	Draft       *models.Draft `json:"draft"`
	Missing     []string      `json:"missing"`
	CanAdvance  bool          `json:"can_advance"`
	CanGoBack   bool          `json:"can_go_back"`
	Disclaimers []Disclaimer  `json:"disclaimers"`
}

// Render builds the view of step. Stored answers come back as defaults.
func Render(step Step, d *models.Draft) View {
	missing := Missing(step, d)
	_, hasPrev := predecessor(step)
	return View{
		Step:        step,
		Index:       step.Index(),
		Total:       len(Steps),
		Draft:       d,
		Missing:     missing,
		CanAdvance:  len(missing) == 0,
		CanGoBack:   hasPrev,
		Disclaimers: Disclaimers(step, d),
	}
}
