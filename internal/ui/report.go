package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/summary"
)

const ruleWidth = 58

// view opens the workspace read-only and hands fn the summary.
func (a *App) view(cmd *cobra.Command, opts summary.BuildOptions, fn func(sum *summary.TimetableSummary, w io.Writer) error) error {
	ctx := cmd.Context()
	ws, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer ws.close()

	opts.Name = ws.sess.Name()
	sum, err := summary.Build(ctx, ws.sess.Store(), opts)
	if err != nil {
		return err
	}
	return fn(sum, cmd.OutOrStdout())
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the weekly grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, summary.BuildOptions{}, func(sum *summary.TimetableSummary, w io.Writer) error {
				_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(sum.Name))
				_, _ = fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
				printGrid(w, sum.Store)
				_, _ = fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
				printHeadline(w, sum.Analytics)
				return nil
			})
		},
	}
}

func (a *App) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Show workload, pattern and tips for the week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, summary.BuildOptions{}, func(sum *summary.TimetableSummary, w io.Writer) error {
				printAnalytics(w, sum)
				return nil
			})
		},
	}
}

func (a *App) conflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List double-booked cells and broken double lessons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, summary.BuildOptions{}, func(sum *summary.TimetableSummary, w io.Writer) error {
				if sum.Healthy() {
					_, _ = fmt.Fprintln(w, formatStats("No conflicts."))
					return nil
				}
				for _, key := range sum.Conflicts {
					_, _ = fmt.Fprintf(w, "  %s %s\n", formatWarning("double-booked"), key)
				}
				for _, key := range sum.OrphanedDoubles {
					_, _ = fmt.Fprintf(w, "  %s %s\n", formatWarning("orphaned double"), key)
				}
				return nil
			})
		},
	}
}

func (a *App) exportCmd() *cobra.Command {
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the grid as plain text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, summary.BuildOptions{}, func(sum *summary.TimetableSummary, w io.Writer) error {
				text := sum.Name + "\n\n" + FormatGrid(sum.Store)
				if !toClipboard {
					_, _ = fmt.Fprint(w, text)
					return nil
				}
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				_, _ = fmt.Fprintln(w, "Copied timetable to clipboard")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy to the clipboard instead of printing")
	return cmd
}

func (a *App) insightCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Ask the configured model for a short review of the week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if model == "" {
				model = a.config.LLM.Model
			}
			opts := summary.BuildOptions{
				IncludeInsight: true,
				Provider:       a.config.LLM.Provider,
				Model:          model,
				BaseURL:        a.config.LLM.BaseURL,
			}
			return a.view(cmd, opts, func(sum *summary.TimetableSummary, w io.Writer) error {
				printHeadline(w, sum.Analytics)
				if sum.Insight == "" {
					_, _ = fmt.Fprintln(w, formatMuted("Nothing to review yet."))
					return nil
				}
				_, _ = fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
				_, _ = fmt.Fprintln(w, formatInsight(sum.Insight))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model override")
	return cmd
}

func printHeadline(w io.Writer, a analytics.Analytics) {
	_, _ = fmt.Fprintf(w, "  %s sessions · %s h · %s\n",
		formatStats(fmt.Sprint(a.TotalSessions)),
		formatStats(fmt.Sprintf("%.1f", a.TotalHours)),
		a.PatternType)
}

func printAnalytics(w io.Writer, sum *summary.TimetableSummary) {
	a := sum.Analytics
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader("ANALYTICS"))
	_, _ = fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	_, _ = fmt.Fprintf(w, "  Sessions   %d (%d single, %d double, %d evening)\n",
		a.TotalSessions, a.SingleLessons, a.DoubleLessons, a.EveningLessons)
	_, _ = fmt.Fprintf(w, "  Hours      %.1f over %d day(s), %.1f per day\n",
		a.TotalHours, a.TotalDays, a.AverageSessionsPerDay)
	_, _ = fmt.Fprintf(w, "  Pattern    %s: %s\n", a.PatternType, a.PatternDescription)
	_, _ = fmt.Fprintf(w, "  Workload   %s %s %d%%\n", a.WorkloadLevel, Bar(a.WorkloadPercentage, 20), a.WorkloadPercentage)
	_, _ = fmt.Fprintf(w, "  Efficiency %d\n", a.Efficiency)
	_, _ = fmt.Fprintf(w, "  Days       %s\n", formatDays(a))
	if len(sum.Gaps) > 0 {
		_, _ = fmt.Fprintf(w, "  Gaps       %s\n", strings.Join(sum.Gaps, ", "))
	}

	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader("TIPS"))
	for _, t := range sum.Tips {
		title := t.Title
		if t.Kind == analytics.TipWarning {
			title = formatWarning(title)
		}
		_, _ = fmt.Fprintf(w, "  • %s\n    %s\n", title, formatMuted(t.Message))
	}

	_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader("RECOMMENDATIONS"))
	for _, r := range sum.Recommendations {
		_, _ = fmt.Fprintf(w, "  ➜  %s\n", r)
	}
	_, _ = fmt.Fprintf(w, "\n  %s\n", formatMuted("updated "+a.LastUpdated.Format(time.Kitchen)))
}

func formatDays(a analytics.Analytics) string {
	parts := make([]string, 0, 5)
	for _, d := range grid.Days() {
		parts = append(parts, fmt.Sprintf("%s %d", d, a.Sessions(d)))
	}
	return strings.Join(parts, "  ")
}

// Bar renders a percentage as a fixed-width bar.
func Bar(pct, width int) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
