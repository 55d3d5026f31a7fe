package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.help.Width = msg.Width
		return m, nil

	case commands.StatusTickMsg:
		m.saveStatus = msg.Status
		return m, commands.PollStatus(m.sess, commands.StatusInterval)

	case commands.SavedMsg:
		m.saveStatus = m.sess.Status()
		res := msg.Result
		switch {
		case res.OK():
			return m.setStatus("Saved (id " + res.ID + ")")
		case res.Fallback:
			return m.setStatus("Remote unavailable, kept an offline copy")
		default:
			return m.setStatus(fmt.Sprintf("Save failed: %v", res.Err))
		}

	case commands.InsightMsg:
		m.insightLoading = false
		m.insight = msg.Summary.Insight
		if m.insight == "" {
			return m.setStatus("Nothing to review yet")
		}
		return m.setStatus("Insight ready")

	case commands.ErrMsg:
		m.insightLoading = false
		m.logger.Debug("command failed", "error", msg.Err)
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, commands.ClearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		return m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Cursor blink and other input messages while editing notes.
	if m.mode == ModeNotes {
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}
