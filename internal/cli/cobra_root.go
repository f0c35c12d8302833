package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"focusflow/internal/audio"
	"focusflow/internal/clock"
	"focusflow/internal/config"
	"focusflow/internal/session"
	"focusflow/internal/stamps"
	"focusflow/internal/ui"
	"focusflow/internal/validation"
)

const commandTimeout = 30 * time.Second

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	app      *App
	cfg      *config.Config
	notifier audio.Notifier
	clk      clock.Clock
}

// NewRootCommand creates the root cobra command. Running it without a
// subcommand starts the interactive session screen.
func NewRootCommand(app *App, cfg *config.Config, notifier audio.Notifier, clk clock.Clock) *RootCommand {
	root := &RootCommand{
		app:      app,
		cfg:      cfg,
		notifier: notifier,
		clk:      clk,
	}

	root.cmd = &cobra.Command{
		Use:   "ff",
		Short: "A focus session tracker with phased work and break cycles",
		Long: `FocusFlow (ff) tracks timed focus sessions through a fixed cycle:
pick a task, run the countdown, work through a two-step wrap-up
checklist, then take a short break before the next round.

FEATURES:
  • Deadline-anchored countdown that survives suspend and clock drift
  • Sound cues at 15, 10, 5 and 1 minutes remaining, looping time's-up alert
  • Subtask focus list with advance and skip
  • Interruption memos captured without leaving the timer
  • Daily stamp for 120+ focused minutes or 4+ completed sessions
  • Markdown export of each day's record

EXAMPLES:
  ff                             # Start the interactive session screen
  ff today                       # Show today's log
  ff today 2026-08-30            # Show a past day's log
  ff export > today.md           # Export today's log as Markdown
  ff export --file 2026-08-30    # Write 2026-08-30.md
  ff stamps                      # Stamp calendar for the current month
  ff stamps 2026-07              # Stamp calendar for July 2026
  ff delete-task <id>            # Remove a recorded task from today

CONFIGURATION:
  FF_DB                          Full database path (overrides the rest)
  FF_DB_DIR                      Database directory (default: ~/.ff)
  FF_DB_FILENAME                 Database filename (default: ff.db)
  FF_SOUND_DIR                   Directory of alert sounds (default: ~/.ff/sounds)
  FF_VALIDATION_TITLE_MIN        Minimum task title length (default: 1)
  FF_VALIDATION_TITLE_MAX        Maximum task title length (default: 255)
  FF_VALIDATION_DURATION_MIN     Minimum session minutes (default: 1)
  FF_VALIDATION_DURATION_MAX     Maximum session minutes (default: 600)
  FF_ENV                         development | testing | production
  FF_DEBUG                       Enable debug logging (default: off)

Missing or unreadable sound files never block a session; the affected
cues are simply skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runSession()
		},
	}

	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// runSession wires the phase controller and hands it to the interactive UI
func (r *RootCommand) runSession() error {
	evaluator := stamps.NewEvaluator(r.app.repo)
	validator := validation.NewSessionValidatorWithLimits(validation.Limits{
		TitleMinLength:     r.cfg.Validation.TitleMinLength,
		TitleMaxLength:     r.cfg.Validation.TitleMaxLength,
		DurationMinMinutes: r.cfg.Validation.DurationMinMinutes,
		DurationMaxMinutes: r.cfg.Validation.DurationMaxMinutes,
	})
	controller := session.NewControllerWithValidator(r.clk, r.notifier, r.app.repo, evaluator, validator)
	return ui.Run(controller, r.app.repo, r.clk)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	todayCmd := &cobra.Command{
		Use:   "today [date]",
		Short: "Show the daily log",
		Long:  "Show the events and completed focus sessions recorded for a day. Defaults to today.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			return NewTodayCommand(r.app, os.Stdout).Execute(ctx, args)
		},
	}

	var exportToFile bool
	exportCmd := &cobra.Command{
		Use:   "export [date]",
		Short: "Export a daily log as Markdown",
		Long: `Export the daily log as a Markdown document.

By default the document is written to standard output so it can be
piped or redirected. With --file it is written to <date>.md in the
current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			handler := NewExportCommand(r.app, os.Stdout)
			handler.ToFile = exportToFile
			return handler.Execute(ctx, args)
		},
	}
	exportCmd.Flags().BoolVar(&exportToFile, "file", false, "Write to <date>.md instead of stdout")

	stampsCmd := &cobra.Command{
		Use:   "stamps [month]",
		Short: "Show the stamp calendar for a month",
		Long: `Show a calendar of days that earned a stamp.

A day earns its stamp after 120 focused minutes or 4 completed
sessions. Months are given as YYYY-MM; the default is the current
month.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			return NewStampsCommand(r.app, os.Stdout).Execute(ctx, args)
		},
	}

	deleteTaskCmd := &cobra.Command{
		Use:   "delete-task <task-id> [date]",
		Short: "Remove a recorded task from a daily log",
		Long: `Remove a recorded focus session from a daily log by its id.

Task ids are shown by the today command. Stamps already earned for the
day are kept; deletion never revokes a stamp.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			return NewDeleteTaskCommand(r.app, os.Stdout).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		todayCmd,
		exportCmd,
		stampsCmd,
		deleteTaskCmd,
	)
}
