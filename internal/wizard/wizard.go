// Package wizard assembles the interactive case-creation flow: one huh-driven
// screen per step, wired to the flow controllers and hosted by the flow
// runner. Screens collect input; every rule about drafts, validation,
// navigation, and analytics lives in the flow package.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/assist"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/config"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/flow"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/record"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/session"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/tui"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/votes"
)

// ErrWizardCancelled is returned when the user abandons the flow before
// filing a case.
var ErrWizardCancelled = errors.New("wizard cancelled by user")

// wizardWidth is the fixed form width used by every screen. 80 columns
// covers the minimum terminal requirement.
const wizardWidth = 80

// subjectMaxLength caps the case subject.
const subjectMaxLength = 100

// Deps bundles the collaborators shared by every screen.
type Deps struct {
	Config   *config.Config
	Session  *session.Session
	Emitter  *analytics.Emitter
	Assist   *assist.Client
	Records  *record.Client
	Votes    *votes.Tracker
	Progress *flow.ProgressIndicator
	Theme    tui.Theme

	// VisitorID ties assist and analytics traffic from this run together.
	VisitorID string
}

// Wizard is the assembled case-creation flow.
type Wizard struct {
	runner  *flow.Runner
	session *session.Session
	emitter *analytics.Emitter
}

// New builds the wizard: a controller per step, a screen per controller,
// and a runner hosting them in order.
func New(deps Deps) *Wizard {
	delay := deps.Config.EditDelay()

	newCtrl := func(cfg flow.StepConfig, refresher flow.Refresher) *flow.StepController {
		cfg.EditDelay = delay
		cfg.VisitorID = deps.VisitorID
		ctrl := flow.NewStepController(cfg, deps.Session, deps.Emitter, refresher)
		ctrl.SetSignals(flow.Signals{
			Notify: func(title, message string) {
				fmt.Fprintln(os.Stderr, deps.Theme.Error.Render(title+": "+message))
			},
		})
		return ctrl
	}

	loginCtrl := newCtrl(flow.StepConfig{
		Step:      flow.Step{Label: "Log in", Value: flow.StepLogIn},
		Fields:    []*flow.Field{flow.NewField(draft.FieldOrigin, "Origin")},
		StageName: flow.StepLogIn,
	}, nil)

	problemCtrl := newCtrl(flow.StepConfig{
		Step: flow.Step{Label: "Describe the problem", Value: flow.StepDescribeProblem},
		Fields: []*flow.Field{
			flow.NewField(draft.FieldSubject, "Subject",
				flow.Required(""), flow.MaxLength(subjectMaxLength)),
			flow.NewField(draft.FieldDescription, "Description", flow.Required("")),
		},
		MergePolicy: flow.MergeReplaceProblem,
		StageName:   flow.StepDescribeProblem,
	}, deps.Assist)

	detailsCtrl := newCtrl(flow.StepConfig{
		Step: flow.Step{Label: "Provide details", Value: flow.StepProvideDetails},
		Fields: []*flow.Field{
			flow.NewField(draft.FieldPriority, "Priority"),
			flow.NewField(draft.FieldReason, "Reason"),
			flow.NewField(draft.FieldType, "Type"),
		},
		StageName: flow.StepProvideDetails,
	}, deps.Assist)

	resourcesCtrl := newCtrl(flow.StepConfig{
		Step:      flow.Step{Label: "Review help resources", Value: flow.StepReviewResources},
		StageName: flow.StepReviewResources,
	}, nil)

	reviewCtrl := newCtrl(flow.StepConfig{
		Step: flow.Step{Label: "Review your case", Value: flow.StepCaseReview},
		Fields: []*flow.Field{
			flow.NewField(draft.FieldSubject, "Subject",
				flow.Required(""), flow.MaxLength(subjectMaxLength)),
			flow.NewField(draft.FieldDescription, "Description", flow.Required("")),
			flow.NewField(draft.FieldPriority, "Priority"),
			flow.NewField(draft.FieldReason, "Reason"),
			flow.NewField(draft.FieldType, "Type"),
		},
	}, nil)

	endCtrl := newCtrl(flow.StepConfig{
		Step: flow.Step{Label: "Done", Value: flow.StepCaseEnd},
	}, nil)

	screens := []flow.Screen{
		&loginScreen{base: base{deps: deps, ctrl: loginCtrl}},
		&problemScreen{base: base{deps: deps, ctrl: problemCtrl}},
		&detailsScreen{base: base{deps: deps, ctrl: detailsCtrl}},
		&resourcesScreen{base: base{deps: deps, ctrl: resourcesCtrl}},
		&reviewScreen{base: base{deps: deps, ctrl: reviewCtrl}},
		&endScreen{base: base{deps: deps, ctrl: endCtrl}},
	}

	return &Wizard{
		runner:  flow.NewRunner(screens, deps.Progress, deps.Session),
		session: deps.Session,
		emitter: deps.Emitter,
	}
}

// Run walks the user through the flow. Returns ErrWizardCancelled when the
// user abandons it.
func (w *Wizard) Run(ctx context.Context) error {
	w.start()

	err := w.runner.Run(ctx)
	if errors.Is(err, flow.ErrFlowAbandoned) {
		return ErrWizardCancelled
	}
	return err
}

// start reports the flow-start batch. The ticket snapshot is seeded from
// any draft left in the session by a previous run; a missing or malformed
// draft starts the flow from an empty snapshot.
func (w *Wizard) start() {
	raw, _ := w.session.CaseData()
	d, _ := draft.Parse(raw)
	w.emitter.FlowStarted(d)
}

// base carries what every screen shares.
type base struct {
	deps Deps
	ctrl *flow.StepController
}

// Controller implements flow.Screen.
func (b *base) Controller() *flow.StepController { return b.ctrl }

// showProgress prints the step trail above the screen's form.
func (b *base) showProgress() {
	fmt.Println()
	fmt.Println(b.deps.Theme.RenderProgress(b.deps.Progress))
	fmt.Println()
}

// form wraps groups in the shared theme and width.
func form(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth)
}

// requiredField is the huh validator for mandatory inputs.
func requiredField(s string) error {
	if s == "" {
		return errors.New(flow.DefaultValueMissingMessage)
	}
	return nil
}

// Abandon-prompt choices.
const (
	abandonResume = "resume"
	abandonSolved = "solved"
	abandonQuit   = "quit"
)

// promptAbandon asks why the user is leaving. It returns resume=true when
// they change their mind; otherwise the outcome says how the flow ends.
// A second interrupt during the prompt quits outright.
func (b *base) promptAbandon() (outcome flow.Outcome, resume bool, err error) {
	choice := abandonResume
	formErr := form(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Leave without creating a case?").
				Options(
					huh.NewOption("Keep working on my case", abandonResume),
					huh.NewOption("My problem is solved", abandonSolved),
					huh.NewOption("Just quit", abandonQuit),
				).
				Value(&choice),
		),
	).Run()

	if errors.Is(formErr, huh.ErrUserAborted) {
		return flow.OutcomeQuit, false, nil
	}
	if formErr != nil {
		return 0, false, fmt.Errorf("wizard: %w", formErr)
	}

	switch choice {
	case abandonSolved:
		return flow.OutcomeSolved, false, nil
	case abandonQuit:
		return flow.OutcomeQuit, false, nil
	default:
		return 0, true, nil
	}
}
