// Package calendar derives per-day completion status from habits and
// completion logs, classifies it, and renders year grids.
//
// Aggregation is a pure function of its inputs and is meant to be re-run
// after every mutation. Its cost is linear in the number of log entries for
// the requested year, which is bounded by habits × 366.
package calendar

import (
	"strings"

	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/utils"
)

// Aggregate computes the DayStatus of every date in year that has at least
// one log entry for an active habit.
//
// When filter is non-empty only habits whose id it contains are active and
// every status has IsFiltered set. Totals describe the active habit set and
// are the same for every date. Entries whose habit is not active (including
// habits that no longer exist) are ignored. Dates without active entries are
// absent from the result, while a date whose entries are all incomplete is
// present with zero completions.
func Aggregate(year int, habits []models.Habit, logs []models.LogEntry, filter []string) map[string]models.DayStatus {
	active := activeHabits(habits, filter)
	filtered := len(filter) > 0

	var mandatoryTotal, optionalTotal int
	for _, h := range active {
		if h.Mandatory {
			mandatoryTotal++
		} else {
			optionalTotal++
		}
	}

	result := make(map[string]models.DayStatus)
	for _, day := range groupByDate(year, active, logs) {
		status := models.DayStatus{
			Date:            day.date,
			MandatoryTotal:  mandatoryTotal,
			OptionalTotal:   optionalTotal,
			CompletedColors: []string{},
			IsFiltered:      filtered,
		}
		for _, entry := range day.entries {
			if entry.Completed {
				countCompletion(&status, active[entry.HabitID])
			}
		}
		result[day.date] = status
	}
	return result
}

// AggregateWithStartDates is Aggregate with each habit's activation window
// applied per date: a habit whose StartDate is after a date does not count
// towards that date's totals, completions or colors. Dates where no logged
// habit is active yet are omitted.
//
// Totals become date-specific, so this costs habits × dates rather than a
// single partition of the habit set.
func AggregateWithStartDates(year int, habits []models.Habit, logs []models.LogEntry, filter []string) map[string]models.DayStatus {
	active := activeHabits(habits, filter)
	filtered := len(filter) > 0

	result := make(map[string]models.DayStatus)
	for _, day := range groupByDate(year, active, logs) {
		status := models.DayStatus{
			Date:            day.date,
			CompletedColors: []string{},
			IsFiltered:      filtered,
		}
		for _, h := range active {
			if !h.ActiveOn(day.date) {
				continue
			}
			if h.Mandatory {
				status.MandatoryTotal++
			} else {
				status.OptionalTotal++
			}
		}

		relevant := false
		for _, entry := range day.entries {
			h := active[entry.HabitID]
			if !h.ActiveOn(day.date) {
				continue
			}
			relevant = true
			if entry.Completed {
				countCompletion(&status, h)
			}
		}
		if relevant {
			result[day.date] = status
		}
	}
	return result
}

func countCompletion(status *models.DayStatus, h models.Habit) {
	if h.Mandatory {
		status.MandatoryCompleted++
	} else {
		status.OptionalCompleted++
	}
	status.CompletedColors = append(status.CompletedColors, h.Color)
}

// activeHabits indexes the habits selected by filter (all when empty)
func activeHabits(habits []models.Habit, filter []string) map[string]models.Habit {
	var want map[string]bool
	if len(filter) > 0 {
		want = make(map[string]bool, len(filter))
		for _, id := range filter {
			want[id] = true
		}
	}

	active := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		if want == nil || want[h.ID] {
			active[h.ID] = h
		}
	}
	return active
}

type dayEntries struct {
	date    string
	entries []models.LogEntry
}

// groupByDate keeps entries of year whose habit is active, grouped by date
// in order of first appearance with log order preserved inside each date
func groupByDate(year int, active map[string]models.Habit, logs []models.LogEntry) []*dayEntries {
	prefix := utils.YearPrefix(year)
	index := make(map[string]*dayEntries)
	var days []*dayEntries

	for _, entry := range logs {
		if !strings.HasPrefix(entry.Date, prefix) {
			continue
		}
		if _, ok := active[entry.HabitID]; !ok {
			continue
		}
		day, ok := index[entry.Date]
		if !ok {
			day = &dayEntries{date: entry.Date}
			index[entry.Date] = day
			days = append(days, day)
		}
		day.entries = append(day.entries, entry)
	}
	return days
}
