package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetabler/internal/analytics"
	"github.com/javiermolinar/timetabler/internal/grid"
)

const maxPanelTips = 5

// View renders the TUI.
func (m Model) View() string {
	styles := m.styles.withWidth(m.colWidth)

	title := styles.TitleStyle.Render("timetabler · " + m.sess.Name())
	if subj := m.sess.Subject(); subj != nil {
		title += styles.MutedStyle.Render(fmt.Sprintf("  [%s %s]", subjectLabel(subj), subj.Name))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGrid(styles),
		"  ",
		m.renderPanel(styles),
	)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderFooter(styles))
	return styles.AppStyle.Render(b.String())
}

// renderGrid draws the 16 periods by 5 days with the cursor highlighted.
func (m Model) renderGrid(s *Styles) string {
	cells := buildCells(m.sess.Store(), m.sess.OrphanedDoubles())
	days := grid.Days()

	var b strings.Builder
	b.WriteString(s.TimeColumnStyle.Render(""))
	for i, d := range days {
		h := s.DayHeaderStyle
		if i == m.cursor.Day {
			h = h.Foreground(s.colorAccent)
		}
		b.WriteString(h.Render(string(d)))
	}
	b.WriteString("\n")

	for p, ts := range grid.TimeSlots() {
		label := fmt.Sprintf("%5s", ts.ID)
		if ts.Evening {
			b.WriteString(s.TimeEveningStyle.Render(label + " *"))
		} else {
			b.WriteString(s.TimeColumnStyle.Render(label))
		}
		for i, d := range days {
			c := cells[grid.Coordinate{Day: d, TimeSlotID: ts.ID}.Key()]
			cursor := i == m.cursor.Day && p == m.cursor.Period
			text := ansi.Truncate(c.text(), m.colWidth-1, "…")
			b.WriteString(cellStyle(s, c, cursor).Render(text))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func cellStyle(s *Styles, c cellInfo, cursor bool) lipgloss.Style {
	switch {
	case cursor && c.kind == cellEmpty:
		return s.CursorStyle
	case cursor:
		return s.CursorFilledStyle
	case c.kind == cellConflict:
		return s.ConflictStyle
	case c.orphan:
		return s.OrphanStyle
	case c.kind == cellTop || c.kind == cellBottom:
		if c.alt {
			return s.DoubleAltStyle
		}
		return s.DoubleStyle
	case c.kind == cellSingle && c.evening:
		return s.EveningStyle
	case c.kind == cellSingle:
		return s.SingleStyle
	default:
		return s.EmptyCellStyle
	}
}

// renderPanel draws analytics, tips, conflicts and save status.
func (m Model) renderPanel(s *Styles) string {
	a := m.sess.Analytics()
	var lines []string
	row := func(label, value string) {
		lines = append(lines, s.LabelStyle.Render(label)+s.ValueStyle.Render(value))
	}
	section := func(title string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, s.PanelTitleStyle.Render(title))
	}

	section("WEEK")
	row("Sessions", fmt.Sprintf("%d (%d double)", a.TotalSessions, a.DoubleLessons))
	row("Hours", fmt.Sprintf("%.1f", a.TotalHours))
	row("Evening", fmt.Sprint(a.EveningLessons))
	row("Days", fmt.Sprintf("%d/%d", a.TotalDays, len(grid.Days())))
	row("Pattern", a.PatternType)
	row("Workload", fmt.Sprintf("%s %d%%", a.WorkloadLevel, a.WorkloadPercentage))
	lines = append(lines, s.LabelStyle.Render("")+m.renderBar(s, a.WorkloadPercentage, 16))
	row("Efficiency", fmt.Sprint(a.Efficiency))

	section("TIPS")
	tips := m.sess.Tips()
	for i, t := range tips {
		if i == maxPanelTips {
			break
		}
		title := t.Title
		if t.Kind == analytics.TipWarning {
			title = s.WarningStyle.Render(title)
		}
		lines = append(lines, "• "+title)
	}

	section("CONFLICTS")
	conflicts := m.sess.Conflicts()
	orphans := m.sess.OrphanedDoubles()
	if len(conflicts) == 0 && len(orphans) == 0 {
		lines = append(lines, s.MutedStyle.Render("none"))
	}
	for _, key := range conflicts {
		lines = append(lines, s.WarningStyle.Render("double-booked ")+key)
	}
	for _, key := range orphans {
		lines = append(lines, s.WarningStyle.Render("orphaned ")+key)
	}

	section("SAVE")
	row("State", m.saveStatus.State.String())
	if !m.saveStatus.LastSaveTime.IsZero() {
		row("Last save", m.saveStatus.LastSaveTime.Format("15:04:05"))
	}
	if m.saveStatus.ID != "" {
		row("Id", m.saveStatus.ID)
	}
	undo, redo := "-", "-"
	if m.sess.CanUndo() {
		undo = "u"
	}
	if m.sess.CanRedo() {
		redo = "ctrl+r"
	}
	row("Undo/redo", undo+" / "+redo)

	section("CELL")
	c := m.cell()
	if slot, ok := m.sess.Store().Find(c.Day, c.TimeSlotID); ok {
		kind := "single"
		if slot.IsDoubleLesson {
			kind = "double (" + string(slot.DoublePosition) + ")"
		}
		row(c.String(), kind)
		if slot.Notes != "" {
			lines = append(lines, s.MutedStyle.Render(slot.Notes))
		}
	} else {
		lines = append(lines, s.MutedStyle.Render(c.String()+" empty"))
	}

	if m.insightLoading || m.insight != "" {
		section("INSIGHT")
		if m.insightLoading {
			lines = append(lines, s.MutedStyle.Render("thinking..."))
		} else {
			lines = append(lines, m.insight)
		}
	}

	return s.PanelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderBar(s *Styles, pct, width int) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	return s.BarFillStyle.Render(strings.Repeat("█", filled)) +
		s.BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// renderFooter draws the prompt or confirmation, the status line and help.
func (m Model) renderFooter(s *Styles) string {
	var parts []string
	switch m.mode {
	case ModeNotes:
		parts = append(parts, s.PromptStyle.Render("Notes for "+m.cell().String()+": "+m.notes.View()))
	case ModeConfirmClear:
		parts = append(parts, s.StatusStyle.Render("Remove every lesson? y/n"))
	}
	if m.statusMsg != "" {
		parts = append(parts, s.StatusStyle.Render(m.statusMsg))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n")
}
