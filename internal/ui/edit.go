package ui

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/session"
)

// mutate opens the workspace, applies fn, reports conflicts and commits.
func (a *App) mutate(cmd *cobra.Command, fn func(s *session.Session, w io.Writer) error) error {
	ctx := cmd.Context()
	ws, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer ws.close()

	w := cmd.OutOrStdout()
	if err := fn(ws.sess, w); err != nil {
		return err
	}
	if conflicts := ws.sess.Conflicts(); len(conflicts) > 0 {
		_, _ = fmt.Fprintf(w, "%s %v\n", formatWarning("conflicts:"), conflicts)
	}
	return ws.commit(ctx, w)
}

// parseCell validates a day and time slot argument pair.
func parseCell(dayArg, timeArg string) (grid.Coordinate, error) {
	day, err := grid.ParseDay(dayArg)
	if err != nil {
		return grid.Coordinate{}, err
	}
	if _, ok := grid.Resolve(day, timeArg); !ok {
		return grid.Coordinate{}, fmt.Errorf("%w: %s-%s", lesson.ErrUnknownCoordinate, day, timeArg)
	}
	return grid.Coordinate{Day: day, TimeSlotID: timeArg}, nil
}

func (a *App) subjectCmd() *cobra.Command {
	var subj lesson.Subject

	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Set the subject used for new lessons",
		Long: `Set the subject stamped onto lessons added from now on.

Example:
  timetabler subject --id=3 --name=Physics --code=PHY --color=#3b82f6`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if subj.ID == 0 {
				return fmt.Errorf("--id is required")
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				s.SetSubject(&subj)
				_, _ = fmt.Fprintf(w, "Subject set to %s (%s)\n", subj.Name, subjectLabel(&subj))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&subj.ID, "id", 0, "Subject id")
	cmd.Flags().StringVar(&subj.Name, "name", "", "Subject name")
	cmd.Flags().StringVar(&subj.Code, "code", "", "Short code shown in the grid")
	cmd.Flags().StringVar(&subj.Color, "color", "", "Display color (#RRGGBB)")
	return cmd
}

func (a *App) addCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add DAY TIME",
		Short: "Add a lesson of the current subject",
		Long: `Add a lesson at a grid cell.

Example:
  timetabler add mon 8:20 --notes="lab"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				if err := s.Place(c.Day, c.TimeSlotID); err != nil {
					return err
				}
				if notes != "" {
					if err := s.SetNotes(c.Day, c.TimeSlotID, notes); err != nil {
						return err
					}
				}
				_, _ = fmt.Fprintf(w, "Added lesson at %s\n", c)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the lesson")
	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove DAY TIME",
		Short: "Remove the lesson at a cell (and its double partner)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				if !s.RemoveSlot(c.Day, c.TimeSlotID) {
					_, _ = fmt.Fprintf(w, "Nothing scheduled at %s\n", c)
					return nil
				}
				_, _ = fmt.Fprintf(w, "Removed lesson at %s\n", c)
				return nil
			})
		},
	}
}

func (a *App) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle DAY TIME",
		Short: "Add a lesson to an empty cell or remove it from an occupied one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				added, err := s.Toggle(c.Day, c.TimeSlotID)
				if err != nil {
					return err
				}
				verb := "Removed"
				if added {
					verb = "Added"
				}
				_, _ = fmt.Fprintf(w, "%s lesson at %s\n", verb, c)
				return nil
			})
		},
	}
}

func (a *App) pairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pair DAY TIME [TIME]",
		Short: "Join two adjacent lessons into a double lesson",
		Long: `Join two adjacent lessons on the same day into a double lesson.
With one time, the lesson is paired with its occupied neighbor.

Example:
  timetabler pair tue 8:20 9:00
  timetabler pair tue 8:20`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				if len(args) == 2 {
					other, err := s.PairWithNeighbor(first.Day, first.TimeSlotID)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(w, "Paired %s with %s\n", first, other)
					return nil
				}
				second, err := parseCell(args[0], args[2])
				if err != nil {
					return err
				}
				if err := s.CreateDoublePair(first, second); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "Paired %s with %s\n", first, second)
				return nil
			})
		},
	}
}

func (a *App) notesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes DAY TIME TEXT",
		Short: "Set the notes of a lesson",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				if err := s.SetNotes(c.Day, c.TimeSlotID, args[2]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "Updated notes at %s\n", c)
				return nil
			})
		},
	}
}

func (a *App) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every lesson from the week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.mutate(cmd, func(s *session.Session, w io.Writer) error {
				s.ClearAll()
				_, _ = fmt.Fprintln(w, "Cleared the week")
				return nil
			})
		},
	}
}
