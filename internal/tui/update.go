package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/habitgrid/internal/errors"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	switch m.state {
	case stateAddHabit:
		return m.updateAddHabit(msg)
	case stateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PrevYear):
		m.setYear(m.year - 1)
	case key.Matches(keyMsg, m.keys.NextYear):
		m.setYear(m.year + 1)
	case key.Matches(keyMsg, m.keys.Filter):
		if h, ok := m.selectedHabit(); ok {
			m.selection.Toggle(h.ID)
			m.refresh()
		}
	case key.Matches(keyMsg, m.keys.Clear):
		m.selection.Clear()
		m.refresh()
	case key.Matches(keyMsg, m.keys.Today):
		m.toggleToday()
	case key.Matches(keyMsg, m.keys.Add):
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = stateAddHabit
		m.message = ""
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Delete):
		h, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		m.confirm = new(bool)
		m.form = newConfirmForm(fmt.Sprintf("Delete %q and all of its history?", h.Name), m.confirm)
		m.state = stateConfirmDelete
		return m, m.form.Init()
	}
	return m, nil
}

func (m *Model) setYear(year int) {
	m.year = year
	m.store.SetCurrentYear(year)
	m.refresh()
}

func (m *Model) toggleToday() {
	h, ok := m.selectedHabit()
	if !ok {
		return
	}
	done, err := m.store.Toggle(h.ID, m.today)
	if err != nil {
		m.message = apperrors.Format(err)
		return
	}
	if done {
		m.message = fmt.Sprintf("Marked %s for %s", h.Name, m.today)
	} else {
		m.message = fmt.Sprintf("Unmarked %s for %s", h.Name, m.today)
	}
	m.refresh()
}

// updateForm forwards msg to the active form. Esc aborts.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.form.State = huh.StateAborted
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		h, err := m.store.Create(m.habitForm.Input())
		if err != nil {
			// Stay in the form so the user can fix the input
			m.message = apperrors.Format(err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.message = fmt.Sprintf("Added habit %s", h.Name)
		m.closeForm()
		m.refresh()
		m.cursor = len(m.habits) - 1
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateForm(msg)

	switch m.form.State {
	case huh.StateCompleted:
		if *m.confirm {
			m.deleteSelected()
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) deleteSelected() {
	h, ok := m.selectedHabit()
	if !ok {
		return
	}
	if m.beforeDelete != nil {
		m.beforeDelete()
	}
	if m.store.Delete(h.ID) {
		m.message = fmt.Sprintf("Deleted habit %s", h.Name)
	}
	m.refresh()
}

func (m *Model) closeForm() {
	m.state = stateCalendar
	m.form = nil
	m.habitForm = nil
	m.confirm = nil
}
