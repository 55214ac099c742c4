package flow

import "github.com/AbdelazizMoustafa10m/Magpie/internal/logging"

var progressLogger = logging.New("progress")

// ProgressIndicator tracks which step of the flow is active and whether the
// active step is in an error state. The two axes are independent: any
// combination of current step and error flag is reachable.
//
// Assigning a value that is not in the configured step list is handled with
// one policy applied uniformly: a warning is logged and the indicator falls
// back to "no step selected". It never reads back an unknown value.
type ProgressIndicator struct {
	steps    []Step
	current  string
	hasError bool
}

// NewProgressIndicator creates an indicator over the given ordered steps
// with no step selected.
func NewProgressIndicator(steps []Step) *ProgressIndicator {
	return &ProgressIndicator{steps: steps}
}

// Steps returns the configured step list.
func (p *ProgressIndicator) Steps() []Step {
	return p.steps
}

// SetCurrent selects the step identified by value. An empty value clears
// the selection. A value not present in the step list logs a warning and
// clears the selection.
func (p *ProgressIndicator) SetCurrent(value string) {
	if value == "" {
		p.current = ""
		return
	}
	for _, s := range p.steps {
		if s.Value == value {
			p.current = value
			return
		}
	}
	progressLogger.Warn("invalid current step value", "value", value)
	p.current = ""
}

// Current returns the active step's value, or "" when no step is selected.
func (p *ProgressIndicator) Current() string {
	return p.current
}

// CurrentIndex returns the position of the active step in the step list,
// or -1 when no step is selected.
func (p *ProgressIndicator) CurrentIndex() int {
	for i, s := range p.steps {
		if s.Value == p.current {
			return i
		}
	}
	return -1
}

// TriggerError toggles the error flag on the current step. Purely
// presentational.
func (p *ProgressIndicator) TriggerError(active bool) {
	p.hasError = active
}

// HasError reports the error flag.
func (p *ProgressIndicator) HasError() bool {
	return p.hasError
}
