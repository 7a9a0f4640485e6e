package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitgrid/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state != stateCalendar && m.form != nil {
		body := m.form.View()
		if m.message != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.message), body)
		}
		return docStyle.Render(body)
	}

	header := titleStyle.Render(fmt.Sprintf("habitgrid · %d", m.year))
	if n := m.selection.Len(); n > 0 {
		header += "  " + filterStyle.Render(fmt.Sprintf("filtered to %d habit(s)", n))
	}

	grid := calendar.Render(m.year, m.statuses, calendar.RenderOptions{
		Today:  m.today,
		Legend: m.selection.Len() == 0,
	})
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, legendPanelStyle.Render(m.habitLegend()))

	parts := []string{header, "", body}
	if err := m.store.PersistErr(); err != nil {
		parts = append(parts, dangerStyle.Render("⚠ changes are not being saved: "+err.Error()))
	}
	if m.message != "" {
		parts = append(parts, mutedStyle.Render(m.message))
	}
	parts = append(parts, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// habitLegend lists habits with the cursor, filter state, color swatch and
// today's completion.
func (m Model) habitLegend() string {
	if len(m.habits) == 0 {
		return mutedStyle.Render("No habits yet.\nPress a to add one.")
	}

	var b strings.Builder
	b.WriteString("Habits\n")
	for i, h := range m.habits {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		selected := "[ ]"
		if m.selection.Has(h.ID) {
			selected = "[x]"
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(h.Color)).Render("  ")
		name := h.Name
		if h.Mandatory {
			name += " *"
		}
		done := " "
		if m.store.IsCompleted(h.ID, m.today) {
			done = "✓"
		}
		fmt.Fprintf(&b, "%s%s %s %s %s\n", cursor, selected, swatch, done, name)
	}
	b.WriteString(mutedStyle.Render("* mandatory"))
	return b.String()
}
