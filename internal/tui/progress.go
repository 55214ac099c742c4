package tui

import (
	"strings"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/flow"
)

// stepArrow separates steps in the rendered trail.
const stepArrow = " → "

// RenderProgress renders the flow's step trail on one line: completed steps
// carry a check mark, the current step is highlighted (or marked when the
// indicator is in error state), upcoming steps are muted. With no step
// selected every step renders as upcoming.
func (t Theme) RenderProgress(p *flow.ProgressIndicator) string {
	current := p.CurrentIndex()

	parts := make([]string, 0, len(p.Steps()))
	for i, step := range p.Steps() {
		switch {
		case current >= 0 && i < current:
			parts = append(parts, t.StepDone.Render("✓ "+step.Label))
		case i == current && p.HasError():
			parts = append(parts, t.StepError.Render("! "+step.Label))
		case i == current:
			parts = append(parts, t.StepCurrent.Render("● "+step.Label))
		default:
			parts = append(parts, t.StepUpcoming.Render(step.Label))
		}
	}
	return strings.Join(parts, t.StepArrow.Render(stepArrow))
}

// RenderStrength renders the description strength meter with its guidance
// message underneath.
func (t Theme) RenderStrength(si *flow.StrengthIndicator, text string, width int) string {
	meter := t.Meter(si.Progress(text), width)
	message := t.MeterMessage.Render(si.Message(text))
	return meter + "\n" + message
}
