package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetabler/internal/config"
	"github.com/javiermolinar/timetabler/internal/grid"
	"github.com/javiermolinar/timetabler/internal/persist"
	"github.com/javiermolinar/timetabler/internal/session"
	"github.com/javiermolinar/timetabler/internal/tui/commands"
	"github.com/javiermolinar/timetabler/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeNotes       // Editing the notes of the lesson under the cursor
	ModeConfirmClear
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeNotes:
		return "notes"
	case ModeConfirmClear:
		return "confirm-clear"
	default:
		return "unknown"
	}
}

// Position is the cursor cell: a day index (0=Monday) and a period index
// into grid.TimeSlots.
type Position struct {
	Day    int
	Period int
}

// Model is the main TUI model.
type Model struct {
	sess   *session.Session
	llm    config.LLMConfig
	logger *slog.Logger

	theme  *theme.Theme
	styles *Styles

	keys  keyMap
	help  help.Model
	notes textinput.Model

	cursor   Position
	mode     Mode
	template string // Last applied template id, for cycling

	saveStatus     persist.Status
	insight        string
	insightLoading bool

	width    int
	height   int
	colWidth int

	statusMsg  string
	statusTime time.Time
	now        func() time.Time
}

// New creates a new TUI model over s.
func New(s *session.Session, opts Options) Model {
	t, err := theme.Load(opts.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	notes := textinput.New()
	notes.Placeholder = "Notes for this lesson"
	notes.CharLimit = 200
	notes.Width = 40

	h := help.New()
	h.Styles.ShortKey = styles.ValueStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullKey = styles.ValueStyle
	h.Styles.FullDesc = styles.HelpStyle

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		sess:       s,
		llm:        opts.LLM,
		logger:     logger,
		theme:      t,
		styles:     styles,
		keys:       defaultKeyMap(),
		help:       h,
		notes:      notes,
		cursor:     Position{Day: 0, Period: firstMorningPeriod},
		saveStatus: s.Status(),
		colWidth:   defaultColWidth,
		now:        time.Now,
	}
}

// firstMorningPeriod places the cursor on 8:20, the usual first lesson.
const firstMorningPeriod = 2

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.PollStatus(m.sess, commands.StatusInterval)
}

// cell returns the grid coordinate under the cursor.
func (m Model) cell() grid.Coordinate {
	days := grid.Days()
	slots := grid.TimeSlots()
	return grid.Coordinate{Day: days[m.cursor.Day], TimeSlotID: slots[m.cursor.Period].ID}
}

func (m Model) calculateColWidth() int {
	if m.width <= 0 {
		return defaultColWidth
	}
	avail := m.width - timeColWidth - panelWidth - 6
	w := avail / len(grid.Days())
	return max(minColWidth, min(maxColWidth, w))
}
