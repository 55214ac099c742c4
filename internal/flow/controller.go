package flow

import (
	"context"
	"errors"
	"time"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/assist"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/debounce"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/logging"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/session"
)

var ctrlLogger = logging.New("flow")

// ErrInvalidFields is returned when a commit is attempted while required
// fields are still empty.
var ErrInvalidFields = errors.New("flow: required fields are missing")

// refreshTimeout bounds the assist refetch triggered by a debounced edit.
const refreshTimeout = 10 * time.Second

// Navigation actions granted to a step by its position in the flow.
const (
	ActionNext = "NEXT"
	ActionBack = "BACK"
)

// State is the lifecycle position of a step controller.
type State int

const (
	// StateIdle: hydrated, no edits since.
	StateIdle State = iota
	// StateEditing: at least one field changed since hydration or the last
	// failed commit.
	StateEditing
	// StateValidating: a commit is checking field validity.
	StateValidating
	// StateCommitted: the step's values are merged into the draft and
	// persisted.
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// MergePolicy selects how a step's values enter the draft on commit.
type MergePolicy int

const (
	// MergeAdditive shallow-merges the step's fields over the draft,
	// preserving everything other steps collected.
	MergeAdditive MergePolicy = iota

	// MergeReplaceProblem replaces the subject/description pair outright and
	// merges the rest additively. A changed pair resets the vote history,
	// because earlier votes referred to suggestions for the old problem.
	MergeReplaceProblem
)

// Refresher refetches classifications and suggestions for a problem
// statement. *assist.Client satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, subject, description, visitorID string) (*assist.ClassificationResponse, *assist.SuggestionResponse, error)
}

// CaseCreator files a case from collected field values. *record.Client
// satisfies it.
type CaseCreator interface {
	CreateCase(ctx context.Context, fields map[string]string) (string, error)
}

// Signals are the callbacks a controller raises toward its host. Any of
// them may be nil; nil signals are skipped.
type Signals struct {
	// AttributeChanged fires when a host-visible attribute changes, e.g.
	// the serialized draft after a commit or the record id after filing.
	AttributeChanged func(name, value string)

	// NavigateNext fires after a successful commit.
	NavigateNext func()

	// NavigateBack fires on a backward transition.
	NavigateBack func()

	// Notify surfaces a non-blocking user notification, e.g. a failed case
	// creation.
	Notify func(title, message string)

	// RefreshCompleted delivers the assist responses fetched after a
	// debounced edit. Both are nil when the refetch failed.
	RefreshCompleted func(classify *assist.ClassificationResponse, suggest *assist.SuggestionResponse)
}

// StepConfig describes one step controller.
type StepConfig struct {
	Step        Step
	Fields      []*Field
	MergePolicy MergePolicy

	// EditDelay is the debounce quiet period applied to field edits.
	EditDelay time.Duration

	// StageName, when set, identifies the stage being left in the
	// next-stage analytics payload.
	StageName string

	// VisitorID ties assist requests to the run's analytics visitor.
	VisitorID string
}

// StepController carries one wizard step through its lifecycle: hydrate the
// fields from the draft, absorb edits through a shared debouncer, validate,
// and commit the merged draft to the session while reporting the matching
// analytics batch.
//
// A controller is driven from a single goroutine. The one exception is the
// debounce timer goroutine, which only reads the immutable snapshot captured
// at edit time. Analytics batch atomicity is the Emitter's job: all
// controllers share one Emitter, whose lock keeps batches from interleaving
// no matter which goroutine or controller emits them.
type StepController struct {
	cfg       StepConfig
	sess      *session.Session
	emitter   *analytics.Emitter
	refresher Refresher
	signals   Signals

	debouncer *debounce.Debouncer
	state     State
	draft     draft.Draft
	actions   map[string]bool
}

// NewStepController creates a controller for cfg. refresher may be nil for
// steps that never refetch assist results.
func NewStepController(cfg StepConfig, sess *session.Session, emitter *analytics.Emitter, refresher Refresher) *StepController {
	sc := &StepController{
		cfg:       cfg,
		sess:      sess,
		emitter:   emitter,
		refresher: refresher,
		draft:     draft.Empty(),
		actions:   map[string]bool{},
	}
	sc.debouncer = debounce.New(sc.editSettled, cfg.EditDelay)
	return sc
}

// SetSignals installs the host callbacks. Must be called before the
// controller is driven.
func (sc *StepController) SetSignals(s Signals) {
	sc.signals = s
}

// Step returns the step this controller owns.
func (sc *StepController) Step() Step { return sc.cfg.Step }

// State returns the controller's lifecycle state.
func (sc *StepController) State() State { return sc.state }

// Draft returns the last committed draft.
func (sc *StepController) Draft() draft.Draft { return sc.draft }

// Fields returns the step's fields in declaration order.
func (sc *StepController) Fields() []*Field { return sc.cfg.Fields }

// Field returns the field bound to the given draft field name, or nil.
func (sc *StepController) Field(name string) *Field {
	for _, f := range sc.cfg.Fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// SetAvailableActions grants the navigation actions the step may take.
func (sc *StepController) SetAvailableActions(actions []string) {
	sc.actions = make(map[string]bool, len(actions))
	for _, a := range actions {
		sc.actions[a] = true
	}
}

// Can reports whether the given navigation action is currently granted.
func (sc *StepController) Can(action string) bool {
	return sc.actions[action]
}

// Hydrate seeds the controller's draft and field values. When the last
// transition was backward the session copy wins over the flow-provided
// serialization, so values survive a round trip. A malformed serialization
// is logged and treated as empty; hydration never fails.
func (sc *StepController) Hydrate(serialized string) {
	src := serialized
	if sc.sess.PreviousNavigation() {
		if stored, ok := sc.sess.CaseData(); ok {
			src = stored
		}
	}

	d, err := draft.Parse(src)
	if err != nil {
		ctrlLogger.Warn("malformed case draft, starting empty", "step", sc.cfg.Step.Value, "error", err)
	}
	sc.draft = d

	for _, f := range sc.cfg.Fields {
		f.SetValue(d.Get(f.Name()))
	}
	sc.state = StateIdle
}

// OnFieldChange records a live edit to the named field. The edit lands in
// the field immediately; the analytics report and the assist refetch are
// debounced, so a burst of edits settles into a single batch carrying the
// final values.
func (sc *StepController) OnFieldChange(name, value string) {
	f := sc.Field(name)
	if f == nil {
		ctrlLogger.Warn("edit to unknown field", "step", sc.cfg.Step.Value, "field", name)
		return
	}
	f.SetValue(value)
	sc.state = StateEditing
	sc.debouncer.Call(name, sc.working())
}

// working returns the draft as it would look with the live field values
// merged in. Used for ticket snapshots; never persisted.
func (sc *StepController) working() draft.Draft {
	partial := make(map[string]string, len(sc.cfg.Fields))
	for _, f := range sc.cfg.Fields {
		partial[f.Name()] = f.Value()
	}
	return sc.draft.Commit(partial)
}

// editSettled runs on the debounce timer goroutine once a burst of edits
// has gone quiet.
func (sc *StepController) editSettled(args ...any) {
	name := args[0].(string)
	snap := args[1].(draft.Draft)

	sc.emitter.FieldUpdated(snap, name)

	if sc.refresher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	classify, suggest, err := sc.refresher.Refresh(ctx, snap.Subject(), snap.Description(), sc.cfg.VisitorID)
	if err != nil {
		ctrlLogger.Warn("assist refresh failed", "step", sc.cfg.Step.Value, "error", err)
		classify, suggest = nil, nil
	}
	if sc.signals.RefreshCompleted != nil {
		sc.signals.RefreshCompleted(classify, suggest)
	}
}

// Validate checks every field and records error messages on the invalid
// ones. All fields are checked even after the first failure, so the user
// sees every problem at once.
func (sc *StepController) Validate() bool {
	valid := true
	for _, f := range sc.cfg.Fields {
		if !f.ReportValidity() {
			valid = false
		}
	}
	return valid
}

// Advance validates the step and, when it passes, merges the field values
// into the draft, persists it, reports the stage transition, and raises the
// navigate-next signal. It returns false, leaving the draft untouched, when
// the NEXT action is not granted or validation fails.
func (sc *StepController) Advance() bool {
	if !sc.Can(ActionNext) {
		ctrlLogger.Warn("advance without NEXT action", "step", sc.cfg.Step.Value)
		return false
	}

	sc.state = StateValidating
	if !sc.Validate() {
		sc.state = StateEditing
		return false
	}

	sc.draft = sc.mergeFields()
	sc.persist()

	sc.emitter.NextStage(sc.cfg.StageName)
	sc.state = StateCommitted

	if sc.signals.NavigateNext != nil {
		sc.signals.NavigateNext()
	}
	return true
}

// mergeFields applies the step's merge policy to the live field values.
func (sc *StepController) mergeFields() draft.Draft {
	if sc.cfg.MergePolicy == MergeReplaceProblem {
		subject, description := "", ""
		partial := map[string]string{}
		for _, f := range sc.cfg.Fields {
			switch f.Name() {
			case draft.FieldSubject:
				subject = f.Value()
			case draft.FieldDescription:
				description = f.Value()
			default:
				partial[f.Name()] = f.Value()
			}
		}
		merged, changed := sc.draft.CommitProblem(subject, description)
		if changed {
			sc.sess.ResetVotes()
		}
		return merged.Commit(partial)
	}

	partial := make(map[string]string, len(sc.cfg.Fields))
	for _, f := range sc.cfg.Fields {
		partial[f.Name()] = f.Value()
	}
	return sc.draft.Commit(partial)
}

// persist writes the committed draft to the session, marks the transition
// as forward, and raises the attribute-changed signal.
func (sc *StepController) persist() {
	serialized := sc.draft.Serialize()
	sc.sess.SetCaseData(serialized)
	sc.sess.SetPreviousNavigation(false)
	if sc.signals.AttributeChanged != nil {
		sc.signals.AttributeChanged("caseData", serialized)
	}
}

// Retreat records a backward transition and raises the navigate-back
// signal. Live edits are deliberately not committed; the session copy of
// the draft is what the previous step rehydrates from. Returns false when
// the BACK action is not granted.
func (sc *StepController) Retreat() bool {
	if !sc.Can(ActionBack) {
		ctrlLogger.Warn("retreat without BACK action", "step", sc.cfg.Step.Value)
		return false
	}
	sc.sess.SetPreviousNavigation(true)
	if sc.signals.NavigateBack != nil {
		sc.signals.NavigateBack()
	}
	return true
}

// CreateCase validates the step, files the case with the merged field
// values, and on success commits the draft, reports the ticket_create
// batch with the new record id, and raises navigate-next. On failure the
// draft stays uncommitted so the user can retry.
func (sc *StepController) CreateCase(ctx context.Context, creator CaseCreator) (string, error) {
	sc.state = StateValidating
	if !sc.Validate() {
		sc.state = StateEditing
		return "", ErrInvalidFields
	}

	merged := sc.mergeFields()
	id, err := creator.CreateCase(ctx, merged)
	if err != nil {
		sc.state = StateEditing
		if sc.signals.Notify != nil {
			sc.signals.Notify("Case could not be created", err.Error())
		}
		return "", err
	}

	sc.draft = merged
	sc.persist()

	sc.emitter.TicketCreated(sc.draft, id)
	sc.state = StateCommitted

	if sc.signals.AttributeChanged != nil {
		sc.signals.AttributeChanged("recordId", id)
	}
	if sc.signals.NavigateNext != nil {
		sc.signals.NavigateNext()
	}
	return id, nil
}

// PickClassification applies a suggested value to the named field and
// reports the classification click.
func (sc *StepController) PickClassification(fieldName, value, responseID string) {
	if f := sc.Field(fieldName); f != nil {
		f.SetValue(value)
	}
	sc.emitter.ClassificationClicked(sc.working(), fieldName, value, responseID)
}

// Abandon reports the flow being cancelled from this step with the given
// reason.
func (sc *StepController) Abandon(reason string) {
	sc.emitter.Cancelled(reason)
}
