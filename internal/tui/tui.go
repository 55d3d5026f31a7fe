// Package tui provides the interactive grid editor for timetabler.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/session"
)

// Options configures the editor.
type Options struct {
	Theme  string
	Logger *slog.Logger
	// LLM enables the insight key when a model is set.
	LLM config.LLMConfig
}

// Run starts the editor on s and blocks until the user quits. The caller owns
// s and is responsible for checkpointing and disposing it afterwards.
func Run(s *session.Session, opts Options) error {
	model := New(s, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
