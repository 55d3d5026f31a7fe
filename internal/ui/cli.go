package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool
	noColor bool
	stderr  io.Writer
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, stderr: os.Stderr}

	a.root = &cobra.Command{
		Use:   "timetabler",
		Short: "Plan a weekly class timetable from the terminal",
		Long: `Timetabler lays lessons out on a Monday to Friday grid of 40 minute periods,
pairs adjacent periods into double lessons, and reports workload, pattern
and scheduling tips as you go.

Run without arguments to open the interactive grid editor.`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if a.noColor {
				DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.subjectCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.toggleCmd())
	a.root.AddCommand(a.pairCmd())
	a.root.AddCommand(a.notesCmd())
	a.root.AddCommand(a.clearCmd())
	a.root.AddCommand(a.templateCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.analyzeCmd())
	a.root.AddCommand(a.conflictsCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.insightCmd())
	a.root.AddCommand(a.saveCmd())
	a.root.AddCommand(a.loadCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.listCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timetabler %s (commit: %s)\n", Version, Commit)
		},
	}
}

// cliLogger writes text logs to stderr, warnings only unless --debug is set.
func (a *App) cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

func (a *App) runTUI(ctx context.Context) error {
	logger, closeLog, err := tui.NewDebugLogger(a.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ws, err := a.openWith(ctx, logger)
	if err != nil {
		return err
	}
	defer ws.close()

	runErr := tui.Run(ws.sess, tui.Options{
		Theme:  a.config.UI.Theme,
		Logger: logger,
		LLM:    a.config.LLM,
	})
	if err := ws.sess.Checkpoint(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("checkpoint on exit failed", "error", err)
	}
	return runErr
}

// SetArgs overrides the command line arguments, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output and logs, for tests.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(errOut)
	a.stderr = errOut
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
