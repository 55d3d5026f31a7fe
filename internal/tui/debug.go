package tui

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/grid"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "timetabler-debug.log"

// NewDebugLogger returns a JSON logger writing to DebugLogPath when enabled,
// or a logger that discards everything. The TUI owns the terminal, so logs
// never go to stderr. The returned func closes the file.
func NewDebugLogger(enabled bool) (*slog.Logger, func(), error) {
	return newDebugLogger(enabled, DebugLogPath)
}

func newDebugLogger(enabled bool, path string) (*slog.Logger, func(), error) {
	if !enabled {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("debug start", "log_file", path)

	return logger, func() {
		logger.Debug("debug end")
		_ = f.Close()
	}, nil
}

func (m Model) logKeyPress(msg tea.KeyMsg) {
	m.logger.Debug("key press", "key", msg.String(), "mode", m.mode.String())
}

func (m Model) logCursor(reason string) {
	c := m.cell()
	m.logger.Debug("cursor move", "cell", c.Key(), "reason", reason)
}

func (m Model) logAction(action string, c grid.Coordinate, err error) {
	if err != nil {
		m.logger.Debug("action failed", "action", action, "cell", c.Key(), "error", err)
		return
	}
	m.logger.Debug("action", "action", action, "cell", c.Key(), "slots", m.sess.Store().Len())
}
