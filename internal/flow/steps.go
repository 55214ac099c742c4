// Package flow implements the wizard flow machinery: the ordered step list,
// the progress indicator, per-field validation, the generic step controller
// shared by every screen, and the runner that hosts them.
//
// The package deliberately contains no terminal rendering. Screens live in
// the wizard and tui packages and drive controllers through their methods;
// signals travel back through injected callbacks, never shared state.
package flow

// Stable step identifiers. Step values are used for equality and lookup;
// labels are what the user sees.
const (
	StepLogIn           = "log in"
	StepDescribeProblem = "describe problem"
	StepProvideDetails  = "provide details"
	StepReviewResources = "review resources"
	StepCaseReview      = "case review"
	StepCaseEnd         = "case end"
)

// Step is one named stage of the flow.
type Step struct {
	// Label is the human-readable name shown in the progress indicator.
	Label string

	// Value is the stable identifier used for equality and lookup.
	Value string
}

// DefaultSteps returns the canonical case-assist step sequence.
func DefaultSteps() []Step {
	return []Step{
		{Label: "Log in", Value: StepLogIn},
		{Label: "Describe the problem", Value: StepDescribeProblem},
		{Label: "Provide details for the agent", Value: StepProvideDetails},
		{Label: "Review help resources", Value: StepReviewResources},
		{Label: "Review your case", Value: StepCaseReview},
		{Label: "Done", Value: StepCaseEnd},
	}
}
