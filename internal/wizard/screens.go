package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/draft"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/flow"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/tui"
)

// originCLI is the case origin recorded for every case filed from the
// terminal.
const originCLI = "CLI"

// ---------------------------------------------------------------------------
// Log in
// ---------------------------------------------------------------------------

type loginScreen struct {
	base
}

func (s *loginScreen) Run(ctx context.Context) (flow.Outcome, error) {
	for {
		s.showProgress()

		var name string
		err := form(
			huh.NewGroup(
				huh.NewNote().
					Title("Welcome to Magpie").
					Description("We will walk you through creating a support case.\nAlong the way we suggest resources that may solve your problem outright."),
				huh.NewInput().
					Title("Your name:").
					Value(&name).
					Validate(requiredField),
			),
		).Run()

		if errors.Is(err, huh.ErrUserAborted) {
			outcome, resume, perr := s.promptAbandon()
			if perr != nil {
				return 0, perr
			}
			if resume {
				continue
			}
			return outcome, nil
		}
		if err != nil {
			return 0, fmt.Errorf("wizard: %w", err)
		}

		s.ctrl.Field(draft.FieldOrigin).SetValue(originCLI)
		if !s.ctrl.Advance() {
			continue
		}
		return flow.OutcomeNext, nil
	}
}

// ---------------------------------------------------------------------------
// Describe the problem
// ---------------------------------------------------------------------------

type problemScreen struct {
	base
}

func (s *problemScreen) Run(ctx context.Context) (flow.Outcome, error) {
	si := flow.NewStrengthIndicator(s.deps.Config.Flow.StrongDescriptionLength)

	for {
		s.showProgress()

		subject := s.ctrl.Field(draft.FieldSubject).Value()
		description := s.ctrl.Field(draft.FieldDescription).Value()

		err := form(
			huh.NewGroup(
				huh.NewInput().
					Title("Write a descriptive subject:").
					CharLimit(subjectMaxLength).
					Value(&subject).
					Validate(requiredField),
				huh.NewText().
					Title("Describe your problem:").
					Description("More detail means better suggestions and faster help.").
					Value(&description).
					Validate(requiredField),
			),
		).Run()

		if errors.Is(err, huh.ErrUserAborted) {
			outcome, resume, perr := s.promptAbandon()
			if perr != nil {
				return 0, perr
			}
			if resume {
				continue
			}
			return outcome, nil
		}
		if err != nil {
			return 0, fmt.Errorf("wizard: %w", err)
		}

		if subject != s.ctrl.Field(draft.FieldSubject).Value() {
			s.ctrl.OnFieldChange(draft.FieldSubject, subject)
		}
		if description != s.ctrl.Field(draft.FieldDescription).Value() {
			s.ctrl.OnFieldChange(draft.FieldDescription, description)
		}

		fmt.Println(s.deps.Theme.RenderStrength(si, description, wizardWidth/2))
		fmt.Println()

		if !s.ctrl.Advance() {
			continue
		}
		return flow.OutcomeNext, nil
	}
}

// ---------------------------------------------------------------------------
// Provide details
// ---------------------------------------------------------------------------

// Fallback select options shown when the assist service offers no
// predictions for a field.
var (
	fallbackPriorities = []string{"Low", "Medium", "High"}
	fallbackReasons    = []string{"Installation", "Equipment Complexity", "Performance", "Breakdown", "Other"}
	fallbackTypes      = []string{"Question", "Problem", "Feature Request"}
)

type detailsScreen struct {
	base
}

func (s *detailsScreen) Run(ctx context.Context) (flow.Outcome, error) {
	d := s.ctrl.Draft()
	classify, _, err := s.deps.Assist.Refresh(ctx, d.Subject(), d.Description(), s.deps.VisitorID)
	if err != nil {
		fmt.Println(s.deps.Theme.HelpDesc.Render("Field suggestions are unavailable right now."))
		classify = nil
	}

	fields := []struct {
		name      string
		title     string
		fallbacks []string
	}{
		{draft.FieldPriority, "Priority:", fallbackPriorities},
		{draft.FieldReason, "Reason:", fallbackReasons},
		{draft.FieldType, "Type:", fallbackTypes},
	}

	for {
		s.showProgress()

		values := make([]string, len(fields))
		selects := make([]huh.Field, len(fields))
		for i, f := range fields {
			values[i] = s.ctrl.Field(f.name).Value()
			options := classificationOptions(classify, f.name, f.fallbacks)
			if values[i] == "" {
				values[i] = options[0].Value
			}
			selects[i] = huh.NewSelect[string]().
				Title(f.title).
				Options(options...).
				Value(&values[i])
		}

		next := true
		group := huh.NewGroup(selects...)
		confirm := huh.NewGroup(
			huh.NewConfirm().
				Title("Continue?").
				Affirmative("Next").
				Negative("Back").
				Value(&next),
		)

		err := form(group, confirm).Run()
		if errors.Is(err, huh.ErrUserAborted) {
			outcome, resume, perr := s.promptAbandon()
			if perr != nil {
				return 0, perr
			}
			if resume {
				continue
			}
			return outcome, nil
		}
		if err != nil {
			return 0, fmt.Errorf("wizard: %w", err)
		}

		if !next {
			if s.ctrl.Retreat() {
				return flow.OutcomeBack, nil
			}
			continue
		}

		for i, f := range fields {
			if values[i] == s.ctrl.Field(f.name).Value() {
				continue
			}
			if classify != nil && isPredicted(classify, f.name, values[i]) {
				s.ctrl.PickClassification(f.name, values[i], classify.ResponseID)
			} else {
				s.ctrl.OnFieldChange(f.name, values[i])
			}
		}

		if !s.ctrl.Advance() {
			continue
		}
		return flow.OutcomeNext, nil
	}
}

// ---------------------------------------------------------------------------
// Review help resources
// ---------------------------------------------------------------------------

type resourcesScreen struct {
	base
}

func (s *resourcesScreen) Run(ctx context.Context) (flow.Outcome, error) {
	s.showProgress()

	d := s.ctrl.Draft()
	_, suggest, err := s.deps.Assist.Refresh(ctx, d.Subject(), d.Description(), s.deps.VisitorID)
	if err != nil || suggest.Empty() {
		fmt.Println(s.deps.Theme.HelpDesc.Render("No help resources found for your problem; continuing."))
		s.ctrl.Advance()
		return flow.OutcomeNext, nil
	}

	items := make([]tui.SuggestionItem, len(suggest.Documents))
	for i, doc := range suggest.Documents {
		score, serr := s.deps.Votes.Score(ctx, doc.PermanentID())
		if serr != nil {
			score = 0
		}
		items[i] = tui.SuggestionItem{
			Title:   doc.Title,
			URI:     doc.ClickURI,
			Excerpt: doc.Excerpt,
			Score:   score,
			Vote:    voteLabel(s.deps.Votes.State(doc.PermanentID())),
		}
	}

	callbacks := tui.BrowserCallbacks{
		Opened: func(index int) {
			doc := suggest.Documents[index]
			s.deps.Emitter.SuggestionClicked(analytics.SuggestionClick{
				SuggestionID:     doc.PermanentID(),
				ResponseID:       suggest.ResponseID,
				DocumentURI:      doc.ClickURI,
				DocumentURIHash:  uriHash(doc.ClickURI),
				DocumentTitle:    doc.Title,
				DocumentURL:      doc.ClickURI,
				DocumentPosition: index + 1,
			})
		},
		Voted: func(index int, positive bool) string {
			doc := suggest.Documents[index]
			if verr := s.deps.Votes.Vote(ctx, doc.PermanentID(), positive); verr != nil {
				return ""
			}
			return voteLabel(s.deps.Votes.State(doc.PermanentID()))
		},
	}

	for {
		action, err := tui.RunBrowser(s.deps.Theme, items, callbacks)
		if err != nil {
			return 0, err
		}

		switch action {
		case tui.BrowserSolved:
			return flow.OutcomeSolved, nil
		case tui.BrowserQuit:
			outcome, resume, perr := s.promptAbandon()
			if perr != nil {
				return 0, perr
			}
			if resume {
				continue
			}
			return outcome, nil
		default:
			s.ctrl.Advance()
			return flow.OutcomeNext, nil
		}
	}
}

// ---------------------------------------------------------------------------
// Review your case
// ---------------------------------------------------------------------------

type reviewScreen struct {
	base
}

func (s *reviewScreen) Run(ctx context.Context) (flow.Outcome, error) {
	for {
		s.showProgress()

		subject := s.ctrl.Field(draft.FieldSubject).Value()
		description := s.ctrl.Field(draft.FieldDescription).Value()

		submit := true
		err := form(
			huh.NewGroup(
				huh.NewNote().
					Title("Review your case").
					Description(caseSummary(s.ctrl.Draft())),
				huh.NewInput().
					Title("Subject:").
					CharLimit(subjectMaxLength).
					Value(&subject).
					Validate(requiredField),
				huh.NewText().
					Title("Description:").
					Value(&description).
					Validate(requiredField),
				huh.NewConfirm().
					Title("File this case?").
					Affirmative("Create case").
					Negative("Back").
					Value(&submit),
			),
		).Run()

		if errors.Is(err, huh.ErrUserAborted) {
			outcome, resume, perr := s.promptAbandon()
			if perr != nil {
				return 0, perr
			}
			if resume {
				continue
			}
			return outcome, nil
		}
		if err != nil {
			return 0, fmt.Errorf("wizard: %w", err)
		}

		if !submit {
			if s.ctrl.Retreat() {
				return flow.OutcomeBack, nil
			}
			continue
		}

		if subject != s.ctrl.Field(draft.FieldSubject).Value() {
			s.ctrl.OnFieldChange(draft.FieldSubject, subject)
		}
		if description != s.ctrl.Field(draft.FieldDescription).Value() {
			s.ctrl.OnFieldChange(draft.FieldDescription, description)
		}

		id, cerr := s.ctrl.CreateCase(ctx, s.deps.Records)
		if cerr != nil {
			// The controller already notified the user; loop for a retry.
			continue
		}

		fmt.Println()
		fmt.Println(s.deps.Theme.StepDone.Render("Case created: " + id))
		return flow.OutcomeNext, nil
	}
}

// ---------------------------------------------------------------------------
// Done
// ---------------------------------------------------------------------------

type endScreen struct {
	base
}

func (s *endScreen) Run(ctx context.Context) (flow.Outcome, error) {
	s.showProgress()

	err := form(
		huh.NewGroup(
			huh.NewNote().
				Title("All done").
				Description("Your case has been filed. An agent will get back to you shortly.\nThank you for the details; they make a real difference."),
		),
	).Run()
	if err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return 0, fmt.Errorf("wizard: %w", err)
	}
	return flow.OutcomeNext, nil
}
