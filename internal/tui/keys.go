package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/lesson"
	"github.com/javiermolinar/timetabler/internal/llm"
	"github.com/javiermolinar/timetabler/internal/presets"
	"github.com/javiermolinar/timetabler/internal/session"
	"github.com/javiermolinar/timetabler/internal/tui/commands"
)

const statusDuration = 3 * time.Second

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Pair     key.Binding
	Notes    key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Clear    key.Binding
	Save     key.Binding
	Template key.Binding
	Copy     key.Binding
	Insight  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev day")),
		Right:    key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next day")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "add/remove")),
		Pair:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Notes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear week")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Template: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next template")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Insight:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insight")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pair, k.Notes, k.Undo, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Pair, k.Notes, k.Clear},
		{k.Undo, k.Redo, k.Template, k.Save},
		{k.Copy, k.Insight, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeNotes:
		return m.handleNotesKeys(msg)
	case ModeConfirmClear:
		return m.handleConfirmClearKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, m.keys.Up):
		if m.cursor.Period > 0 {
			m.cursor.Period--
			m.logCursor("up")
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor.Period < len(grid.TimeSlots())-1 {
			m.cursor.Period++
			m.logCursor("down")
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor.Day > 0 {
			m.cursor.Day--
			m.logCursor("left")
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor.Day < len(grid.Days())-1 {
			m.cursor.Day++
			m.logCursor("right")
		}

	// Editing
	case key.Matches(msg, m.keys.Toggle):
		return m.handleToggle()
	case key.Matches(msg, m.keys.Pair):
		return m.handlePair()
	case key.Matches(msg, m.keys.Notes):
		return m.startNotes()
	case key.Matches(msg, m.keys.Undo):
		if !m.sess.Undo() {
			return m.setStatus("Nothing to undo")
		}
		return m.setStatus("Undone")
	case key.Matches(msg, m.keys.Redo):
		if !m.sess.Redo() {
			return m.setStatus("Nothing to redo")
		}
		return m.setStatus("Redone")
	case key.Matches(msg, m.keys.Clear):
		if m.sess.Store().IsEmpty() {
			return m.setStatus("Week is already empty")
		}
		m.mode = ModeConfirmClear
		return m, nil
	case key.Matches(msg, m.keys.Template):
		return m.handleTemplate()

	// Output
	case key.Matches(msg, m.keys.Save):
		m.statusMsg = "Saving..."
		return m, commands.SaveNow(m.sess)
	case key.Matches(msg, m.keys.Copy):
		text := m.sess.Name() + "\n\n" + llm.FormatWeek(m.sess.Store())
		return m, commands.CopyToClipboard(text, "timetable")
	case key.Matches(msg, m.keys.Insight):
		return m.handleInsight()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	c := m.cell()
	added, err := m.sess.Toggle(c.Day, c.TimeSlotID)
	m.logAction("toggle", c, err)
	if err != nil {
		return m.setError(err)
	}
	if added {
		return m.setStatus("Added lesson at " + c.String())
	}
	return m.setStatus("Removed lesson at " + c.String())
}

func (m Model) handlePair() (tea.Model, tea.Cmd) {
	c := m.cell()
	other, err := m.sess.PairWithNeighbor(c.Day, c.TimeSlotID)
	m.logAction("pair", c, err)
	if err != nil {
		return m.setError(err)
	}
	return m.setStatus(fmt.Sprintf("Paired %s with %s", c, other))
}

func (m Model) handleTemplate() (tea.Model, tea.Cmd) {
	t := presets.Next(m.template)
	if err := m.sess.ApplyTemplate(t.ID); err != nil {
		return m.setError(err)
	}
	m.template = t.ID
	m.logger.Debug("template applied", "id", t.ID)
	return m.setStatus(fmt.Sprintf("Template: %s (%s)", t.Name, t.Difficulty))
}

func (m Model) handleInsight() (tea.Model, tea.Cmd) {
	if m.llm.Model == "" {
		return m.setStatus("Set llm.model in the config to ask for an insight")
	}
	if m.sess.Store().IsEmpty() {
		return m.setStatus("Nothing to review yet")
	}
	m.insightLoading = true
	m.statusMsg = "Asking " + m.llm.Model + "..."
	return m, commands.Insight(m.sess.Name(), m.sess.Store(), m.llm)
}

func (m Model) startNotes() (tea.Model, tea.Cmd) {
	c := m.cell()
	slot, ok := m.sess.Store().Find(c.Day, c.TimeSlotID)
	if !ok {
		return m.setStatus("No lesson at " + c.String())
	}
	m.mode = ModeNotes
	m.notes.SetValue(slot.Notes)
	m.notes.CursorEnd()
	m.notes.Focus()
	return m, textinput.Blink
}

// handleNotesKeys handles keys while editing notes.
func (m Model) handleNotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.notes.Blur()
		return m, nil
	case "enter":
		m.mode = ModeNormal
		m.notes.Blur()
		c := m.cell()
		err := m.sess.SetNotes(c.Day, c.TimeSlotID, strings.TrimSpace(m.notes.Value()))
		m.logAction("notes", c, err)
		if err != nil {
			return m.setError(err)
		}
		return m.setStatus("Updated notes at " + c.String())
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

// handleConfirmClearKeys handles the clear-week confirmation.
func (m Model) handleConfirmClearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	switch msg.String() {
	case "y", "Y":
		m.sess.ClearAll()
		m.logger.Debug("week cleared")
		return m.setStatus("Cleared the week (u to undo)")
	default:
		return m.setStatus("Clear cancelled")
	}
}

func (m Model) setStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMsg = msg
	m.statusTime = m.now().Add(statusDuration)
	return m, commands.ClearStatusAfter(statusDuration)
}

func (m Model) setError(err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, session.ErrNoSubject):
		return m.setStatus("Set a subject first: timetabler subject --id N --name NAME")
	case errors.Is(err, lesson.ErrInvalidPairing):
		return m.setStatus("Cannot make a double lesson here")
	default:
		return m.setStatus("Error: " + err.Error())
	}
}
