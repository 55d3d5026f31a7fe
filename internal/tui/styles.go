package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timetabler/internal/tui/theme"
)

const (
	defaultColWidth = 10
	minColWidth     = 6
	maxColWidth     = 16
	timeColWidth    = 8
	panelWidth      = 34
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	TitleStyle lipgloss.Style

	// Grid
	DayHeaderStyle    lipgloss.Style
	TimeColumnStyle   lipgloss.Style
	TimeEveningStyle  lipgloss.Style
	CellStyle         lipgloss.Style
	EmptyCellStyle    lipgloss.Style
	SingleStyle       lipgloss.Style
	EveningStyle      lipgloss.Style
	DoubleStyle       lipgloss.Style
	DoubleAltStyle    lipgloss.Style // Alternate shade so adjacent doubles stay distinct
	ConflictStyle     lipgloss.Style
	OrphanStyle       lipgloss.Style
	CursorStyle       lipgloss.Style
	CursorFilledStyle lipgloss.Style

	// Side panel
	PanelStyle      lipgloss.Style
	PanelTitleStyle lipgloss.Style
	LabelStyle      lipgloss.Style
	ValueStyle      lipgloss.Style
	MutedStyle      lipgloss.Style
	WarningStyle    lipgloss.Style
	BarFillStyle    lipgloss.Style
	BarEmptyStyle   lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	PromptStyle lipgloss.Style
	HelpStyle   lipgloss.Style

	AppStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Width(timeColWidth)

	s.TimeEveningStyle = s.TimeColumnStyle.
		Foreground(palette.Evening)

	s.CellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.EmptyCellStyle = s.CellStyle.
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.SingleStyle = s.CellStyle.
		Background(palette.SingleBg).
		Foreground(s.colorFg).
		Bold(true)

	s.EveningStyle = s.CellStyle.
		Background(palette.EveningBg).
		Foreground(s.colorFg).
		Bold(true)

	s.DoubleStyle = s.CellStyle.
		Background(palette.DoubleBg).
		Foreground(s.colorFg).
		Bold(true)

	s.DoubleAltStyle = s.CellStyle.
		Background(palette.DoubleBgAlt).
		Foreground(s.colorFg).
		Bold(true)

	s.ConflictStyle = s.CellStyle.
		Background(s.colorWarning).
		Foreground(palette.TextOnWarning).
		Bold(true)

	s.OrphanStyle = s.CellStyle.
		Background(palette.WarningBg).
		Foreground(s.colorFg).
		Italic(true)

	s.CursorStyle = s.CellStyle.
		Background(palette.BgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	s.CursorFilledStyle = s.CellStyle.
		Background(s.colorAccent).
		Foreground(palette.TextOnAccent).
		Bold(true)

	s.PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted).
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1).
		Width(panelWidth)

	s.PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.LabelStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Width(11)

	s.ValueStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Bold(true)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Bold(true)

	s.BarFillStyle = lipgloss.NewStyle().
		Foreground(palette.Double)

	s.BarEmptyStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		Padding(0, 1)

	return s
}

// withWidth returns the cell styles resized to width.
func (s *Styles) withWidth(width int) *Styles {
	c := *s
	c.DayHeaderStyle = s.DayHeaderStyle.Width(width)
	c.CellStyle = s.CellStyle.Width(width)
	c.EmptyCellStyle = s.EmptyCellStyle.Width(width)
	c.SingleStyle = s.SingleStyle.Width(width)
	c.EveningStyle = s.EveningStyle.Width(width)
	c.DoubleStyle = s.DoubleStyle.Width(width)
	c.DoubleAltStyle = s.DoubleAltStyle.Width(width)
	c.ConflictStyle = s.ConflictStyle.Width(width)
	c.OrphanStyle = s.OrphanStyle.Width(width)
	c.CursorStyle = s.CursorStyle.Width(width)
	c.CursorFilledStyle = s.CursorFilledStyle.Width(width)
	return &c
}
