package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/flow"
)

func TestRenderProgress_MarksDoneCurrentAndUpcoming(t *testing.T) {
	t.Parallel()

	p := flow.NewProgressIndicator(flow.DefaultSteps())
	p.SetCurrent(flow.StepProvideDetails)

	out := DefaultTheme().RenderProgress(p)

	assert.Contains(t, out, "✓ Log in")
	assert.Contains(t, out, "✓ Describe the problem")
	assert.Contains(t, out, "● Provide details for the agent")
	assert.Contains(t, out, "Review help resources")
	assert.NotContains(t, out, "✓ Review help resources")
}

func TestRenderProgress_ErrorState(t *testing.T) {
	t.Parallel()

	p := flow.NewProgressIndicator(flow.DefaultSteps())
	p.SetCurrent(flow.StepCaseReview)
	p.TriggerError(true)

	out := DefaultTheme().RenderProgress(p)

	assert.Contains(t, out, "! Review your case")
	assert.NotContains(t, out, "● Review your case")
}

func TestRenderProgress_NoSelection(t *testing.T) {
	t.Parallel()

	p := flow.NewProgressIndicator(flow.DefaultSteps())

	out := DefaultTheme().RenderProgress(p)

	assert.NotContains(t, out, "✓")
	assert.NotContains(t, out, "●")
}

func TestMeter(t *testing.T) {
	t.Parallel()

	th := DefaultTheme()

	assert.Empty(t, th.Meter(50, 0))
	assert.Equal(t, 10, strings.Count(th.Meter(50, 20), "█"))
	assert.Equal(t, 10, strings.Count(th.Meter(50, 20), "░"))
	assert.Equal(t, 20, strings.Count(th.Meter(150, 20), "█"), "over-full clamps to 100")
	assert.Equal(t, 20, strings.Count(th.Meter(-5, 20), "░"), "negative clamps to 0")
}

func TestRenderStrength(t *testing.T) {
	t.Parallel()

	si := flow.NewStrengthIndicator(4)
	out := DefaultTheme().RenderStrength(si, "two words", 10)

	assert.Contains(t, out, flow.StrengthMsgAlmost)
	assert.Contains(t, out, "█")
}
