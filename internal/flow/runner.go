package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/session"
)

// ErrFlowAbandoned is returned by Runner.Run when the user quits the flow
// before filing a case.
var ErrFlowAbandoned = errors.New("flow: abandoned by user")

// Outcome is what a screen reports back to the runner after the user is
// done with it.
type Outcome int

const (
	// OutcomeNext: the step committed, move forward.
	OutcomeNext Outcome = iota
	// OutcomeBack: the user navigated backward.
	OutcomeBack
	// OutcomeSolved: a help resource solved the problem, end the flow
	// without filing a case.
	OutcomeSolved
	// OutcomeQuit: the user abandoned the flow.
	OutcomeQuit
)

// Screen is one interactive wizard step. Run presents the step to the user,
// drives the controller through edits and navigation, and reports how the
// user left it.
type Screen interface {
	Controller() *StepController
	Run(ctx context.Context) (Outcome, error)
}

// Runner hosts a sequence of screens: it keeps the progress indicator in
// step, grants each screen the navigation actions its position allows,
// carries the serialized draft from committed steps into hydration of the
// next, and reports the terminal analytics batch when the flow ends early.
type Runner struct {
	screens  []Screen
	progress *ProgressIndicator
	sess     *session.Session
}

// NewRunner creates a runner over the given screens.
func NewRunner(screens []Screen, progress *ProgressIndicator, sess *session.Session) *Runner {
	return &Runner{
		screens:  screens,
		progress: progress,
		sess:     sess,
	}
}

// Run walks the user through the screens in order. The flow ends by filing
// a case and reaching the end of the sequence, by the user declaring the
// problem solved, or by abandonment; the session is cleared in all three
// endings so the next run starts fresh. A screen error leaves the session
// in place for the next run to rehydrate.
func (r *Runner) Run(ctx context.Context) error {
	caseData := ""
	if stored, ok := r.sess.CaseData(); ok {
		caseData = stored
	}

	idx := 0
	for idx < len(r.screens) {
		screen := r.screens[idx]
		ctrl := screen.Controller()
		step := ctrl.Step()

		r.progress.SetCurrent(step.Value)
		r.progress.TriggerError(false)
		ctrl.SetAvailableActions(r.actionsAt(idx))
		ctrl.Hydrate(caseData)

		ctrlLogger.Debug("entering step", "step", step.Value, "state", ctrl.State())

		outcome, err := screen.Run(ctx)
		if err != nil {
			r.progress.TriggerError(true)
			return fmt.Errorf("flow: step %q: %w", step.Value, err)
		}

		caseData = ctrl.Draft().Serialize()

		switch outcome {
		case OutcomeNext:
			idx++
		case OutcomeBack:
			idx--
		case OutcomeSolved:
			ctrl.Abandon(analytics.CancelReasonSolved)
			r.sess.Clear()
			return nil
		case OutcomeQuit:
			ctrl.Abandon(analytics.CancelReasonQuit)
			r.sess.Clear()
			return ErrFlowAbandoned
		}
		if idx < 0 {
			idx = 0
		}
	}

	r.sess.Clear()
	return nil
}

// actionsAt returns the navigation actions granted at position idx.
func (r *Runner) actionsAt(idx int) []string {
	actions := []string{}
	if idx > 0 {
		actions = append(actions, ActionBack)
	}
	if idx < len(r.screens)-1 {
		actions = append(actions, ActionNext)
	}
	return actions
}
