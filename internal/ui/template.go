package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetabler/internal/presets"
	"github.com/javiermolinar/timetabler/internal/session"
)

func (a *App) templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List or apply quick-start layouts",
	}
	cmd.AddCommand(a.templateListCmd())
	cmd.AddCommand(a.templateApplyCmd())
	return cmd
}

func (a *App) templateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available templates",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			for _, t := range presets.All() {
				_, _ = fmt.Fprintf(w, "%-18s %s\n", t.ID, formatHeader(t.Name))
				_, _ = fmt.Fprintf(w, "%-18s %s\n", "", t.Description)
				_, _ = fmt.Fprintf(w, "%-18s %s · %d sessions · %s\n\n", "",
					t.Difficulty, t.Sessions(), formatMuted(t.BestFor))
			}
		},
	}
}

func (a *App) templateApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply ID",
		Short: "Replace the week with a template",
		Long: `Replace every lesson with the given template, using the current subject.

Example:
  timetabler template apply double-power`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				if err := s.ApplyTemplate(args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "Applied template %s\n", args[0])
				printGrid(w, s.Store())
				return nil
			})
		},
	}
}
