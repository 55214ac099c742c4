package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/analytics"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/assist"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/config"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/flow"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/record"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/session"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/tui"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/votes"
	"github.com/AbdelazizMoustafa10m/Magpie/internal/wizard"
)

// assistFlagFresh discards any persisted session before starting.
var assistFlagFresh bool

// sessionFileName is the session file kept under the state directory between
// runs so an interrupted flow can pick up where it left off.
const sessionFileName = "session.json"

// assistCmd implements "magpie assist": the guided case-creation flow.
var assistCmd = &cobra.Command{
	Use:     "assist",
	Aliases: []string{"case"},
	Short:   "Create a support case with guided assistance",
	Long: `Walk through creating a support case. Magpie predicts case fields and
suggests help resources from your problem description as you type, and an
interrupted run resumes from where it stopped.`,
	Args: cobra.NoArgs,
	RunE: runAssist,
}

func init() {
	assistCmd.Flags().BoolVar(&assistFlagFresh, "fresh", false, "Discard any saved session and start over")
	rootCmd.AddCommand(assistCmd)
}

// runAssist is the RunE handler for the assist command.
func runAssist(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(cfg)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	if assistFlagFresh {
		sess.Clear()
	}

	visitorID := uuid.NewString()

	emitter := analytics.NewEmitter(newSink(cfg, visitorID))
	assistClient := assist.NewClient(cfg.Endpoint.BaseURL, cfg.APIKey(),
		assist.WithTimeout(cfg.Timeout()),
		assist.WithMaxSuggestions(cfg.Suggestions.Max),
		assist.WithExcludePatterns(cfg.Suggestions.ExcludePatterns),
	)
	records := record.NewClient(cfg.RecordsURL(), cfg.APIKey())

	w := wizard.New(wizard.Deps{
		Config:    cfg,
		Session:   sess,
		Emitter:   emitter,
		Assist:    assistClient,
		Records:   records,
		Votes:     votes.NewTracker(sess, records, emitter),
		Progress:  flow.NewProgressIndicator(progressSteps(cfg)),
		Theme:     tui.DefaultTheme(),
		VisitorID: visitorID,
	})

	if err := w.Run(ctx); err != nil {
		if errors.Is(err, wizard.ErrWizardCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled. Your draft was discarded.")
			return nil
		}
		return err
	}
	return nil
}

// openSession opens the persistent session store under the configured state
// directory, falling back to an in-memory session when none is configured.
func openSession(cfg *config.Config) (*session.Session, error) {
	if cfg.Project.StateDir == "" {
		return session.New(session.NewMemStore()), nil
	}
	store, err := session.OpenFileStore(filepath.Join(cfg.Project.StateDir, sessionFileName))
	if err != nil {
		return nil, err
	}
	return session.New(store), nil
}

// newSink picks the analytics sink: the HTTP collector when analytics is
// enabled, otherwise the discarding sink so emitted batches cost nothing.
func newSink(cfg *config.Config, visitorID string) analytics.Sink {
	if cfg.Analytics.Enabled {
		return analytics.NewHTTPSink(cfg.Analytics.URL, cfg.AnalyticsToken(), visitorID)
	}
	return analytics.NopSink{}
}

// progressSteps resolves the step trail for the progress indicator. When the
// config names a subset of steps, only those appear in the trail; unknown
// names are dropped. An empty or fully-unknown list falls back to the
// default trail.
func progressSteps(cfg *config.Config) []flow.Step {
	defaults := flow.DefaultSteps()
	if len(cfg.Flow.Steps) == 0 {
		return defaults
	}

	byValue := make(map[string]flow.Step, len(defaults))
	for _, s := range defaults {
		byValue[s.Value] = s
	}

	steps := make([]flow.Step, 0, len(cfg.Flow.Steps))
	for _, v := range cfg.Flow.Steps {
		if s, ok := byValue[v]; ok {
			steps = append(steps, s)
		}
	}
	if len(steps) == 0 {
		return defaults
	}
	return steps
}
