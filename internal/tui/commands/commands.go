// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/persist"
	"github.com/javiermolinar/timetabler/internal/summary"
)

// StatusInterval is how often the persistence status is polled.
const StatusInterval = time.Second

// Saver saves the timetable immediately.
type Saver interface {
	SaveNow(ctx context.Context) persist.Result
}

// StatusSource reports the persistence status.
type StatusSource interface {
	Status() persist.Status
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SavedMsg is sent when an explicit save finishes.
type SavedMsg struct {
	Result persist.Result
}

// StatusTickMsg carries a polled persistence status.
type StatusTickMsg struct {
	Status persist.Status
}

// InsightStartedMsg is sent when an insight request starts.
type InsightStartedMsg struct{}

// InsightMsg is sent when the summary with insight is ready.
type InsightMsg struct {
	Summary *summary.TimetableSummary
}

// SaveNow saves through s off the UI goroutine.
func SaveNow(s Saver) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{Result: s.SaveNow(context.Background())}
	}
}

// PollStatus reads the status of s after d.
func PollStatus(s StatusSource, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return StatusTickMsg{Status: s.Status()}
	})
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text, what string) tea.Cmd {
	return copyWith(clipboard.WriteAll, text, what)
}

func copyWith(write func(string) error, text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what + " to clipboard"}
	}
}

// Insight builds a summary of the week including the model's review.
func Insight(name string, s lesson.Store, cfg config.LLMConfig) tea.Cmd {
	return func() tea.Msg {
		sum, err := summary.Build(context.Background(), s, summary.BuildOptions{
			Name:           name,
			IncludeInsight: true,
			Provider:       cfg.Provider,
			Model:          cfg.Model,
			BaseURL:        cfg.BaseURL,
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("insight: %w", err)}
		}
		return InsightMsg{Summary: sum}
	}
}
