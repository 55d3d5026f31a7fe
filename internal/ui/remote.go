package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

var errNoRemote = errors.New("no remote configured (set remote.base_url)")

// online opens the workspace and fails early when there is no remote to talk to.
func (a *App) online(cmd *cobra.Command, fn func(ws *workspace, w io.Writer) error) error {
	if !a.config.HasRemote() {
		return errNoRemote
	}
	ws, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.close()
	return fn(ws, cmd.OutOrStdout())
}

func (a *App) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save the timetable to the remote service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.online(cmd, func(ws *workspace, w io.Writer) error {
				res := ws.sess.SaveNow(cmd.Context())
				printResult(w, "save", res)
				if err := ws.sess.Checkpoint(cmd.Context()); err != nil {
					return fmt.Errorf("saving locally: %w", err)
				}
				if !res.OK() && !res.Fallback {
					return res.Err
				}
				return nil
			})
		},
	}
}

func (a *App) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load ID",
		Short: "Replace the local timetable with a saved one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.online(cmd, func(ws *workspace, w io.Writer) error {
				res := ws.sess.Load(cmd.Context(), args[0])
				printResult(w, "load", res)
				if !res.OK() {
					return res.Err
				}
				if err := ws.sess.Checkpoint(cmd.Context()); err != nil {
					return fmt.Errorf("saving locally: %w", err)
				}
				_, _ = fmt.Fprintf(w, "\n  %s\n", formatHeader(ws.sess.Name()))
				printGrid(w, ws.sess.Store())
				return nil
			})
		},
	}
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved timetable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.online(cmd, func(ws *workspace, w io.Writer) error {
				res := ws.sess.Delete(cmd.Context(), args[0])
				printResult(w, "delete", res)
				if !res.OK() {
					return res.Err
				}
				return ws.sess.Checkpoint(cmd.Context())
			})
		},
	}
}

func (a *App) listCmd() *cobra.Command {
	var subjectID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved timetables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.online(cmd, func(ws *workspace, w io.Writer) error {
				items, err := ws.sess.List(cmd.Context(), subjectID)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(w, formatMuted("No saved timetables."))
					return nil
				}
				for _, it := range items {
					updated := "-"
					if !it.UpdatedAt.IsZero() {
						updated = it.UpdatedAt.Local().Format(time.DateTime)
					}
					_, _ = fmt.Fprintf(w, "%-12s %-28s %3d slots  %s\n",
						it.ID, truncate(it.Name, 28), it.Slots, formatMuted(updated))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&subjectID, "subject", 0, "Only list timetables for this subject id")
	return cmd
}
