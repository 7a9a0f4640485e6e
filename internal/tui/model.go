// Package tui is the interactive year view: a calendar grid next to a habit
// legend that can narrow the grid to selected habits.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitgrid/internal/calendar"
	"github.com/julianstephens/habitgrid/internal/filter"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/tracker"
)

type sessionState int

const (
	stateCalendar sessionState = iota
	stateAddHabit
	stateConfirmDelete
)

// HabitFormModel backs the add-habit form
type HabitFormModel struct {
	Name         string
	Color        string
	Mandatory    bool
	StartDate    string
	ReminderTime string
}

type Model struct {
	store        *tracker.Store
	beforeDelete func()

	state     sessionState
	keys      KeyMap
	help      help.Model
	form      *huh.Form
	habitForm *HabitFormModel
	confirm   *bool

	habits    []models.Habit
	statuses  map[string]models.DayStatus
	selection *filter.Selection
	cursor    int
	year      int
	today     string

	message  string
	quitting bool
	width    int
	height   int
}

// NewModel builds the year view for store. beforeDelete, when set, runs
// before a habit is deleted (used for automatic backups).
func NewModel(store *tracker.Store, today string, beforeDelete func()) Model {
	year := store.Settings().CurrentYear
	if year == 0 && len(today) >= 4 {
		year = yearOf(today)
	}
	m := Model{
		store:        store,
		beforeDelete: beforeDelete,
		state:        stateCalendar,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		selection:    &filter.Selection{},
		year:         year,
		today:        today,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-reads habits and recomputes every day status for the year.
func (m *Model) refresh() {
	m.habits = m.store.List()
	known := make(map[string]bool, len(m.habits))
	for _, h := range m.habits {
		known[h.ID] = true
	}
	m.selection.Retain(func(id string) bool { return known[id] })

	if m.cursor >= len(m.habits) {
		m.cursor = len(m.habits) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	m.statuses = calendar.Aggregate(m.year, m.habits, m.store.ForYear(m.year), m.selection.IDs())
}

func (m Model) selectedHabit() (models.Habit, bool) {
	if len(m.habits) == 0 {
		return models.Habit{}, false
	}
	return m.habits[m.cursor], true
}

func yearOf(date string) int {
	y := 0
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		y = y*10 + int(r-'0')
	}
	return y
}
