package tracker

import (
	"strings"

	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/utils"
	"github.com/julianstephens/habitgrid/internal/validation"
)

// IsCompleted reports whether the habit is marked done on date. A missing
// entry counts as not completed.
func (s *Store) IsCompleted(habitID, date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.logIndex[logKey{habitID, date}]
	return ok && s.state.Logs[i].Completed
}

// Toggle flips the completion of habitID on date, creating a completed entry
// when none exists, and returns the new value.
func (s *Store) Toggle(habitID, date string) (bool, error) {
	if err := checkLogKey(habitID, date); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := logKey{habitID, date}
	completed := true
	if i, ok := s.logIndex[key]; ok {
		completed = !s.state.Logs[i].Completed
		s.state.Logs[i].Completed = completed
	} else {
		s.appendLog(models.LogEntry{HabitID: habitID, Date: date, Completed: true})
	}
	s.persist()
	return completed, nil
}

// Set records completed for habitID on date, creating the entry if needed.
// Future dates are accepted; callers that backfill enforce their own policy.
func (s *Store) Set(habitID, date string, completed bool) error {
	if err := checkLogKey(habitID, date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.logIndex[logKey{habitID, date}]; ok {
		s.state.Logs[i].Completed = completed
	} else {
		s.appendLog(models.LogEntry{HabitID: habitID, Date: date, Completed: completed})
	}
	s.persist()
	return nil
}

// ForYear returns the entries dated in year, in log order.
func (s *Store) ForYear(year int) []models.LogEntry {
	prefix := utils.YearPrefix(year)
	return s.collect(func(e models.LogEntry) bool { return strings.HasPrefix(e.Date, prefix) })
}

// ForDate returns the entries for a single day, in log order.
func (s *Store) ForDate(date string) []models.LogEntry {
	return s.collect(func(e models.LogEntry) bool { return e.Date == date })
}

// Logs returns every entry.
func (s *Store) Logs() []models.LogEntry {
	return s.collect(func(models.LogEntry) bool { return true })
}

func (s *Store) collect(keep func(models.LogEntry) bool) []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.LogEntry{}
	for _, e := range s.state.Logs {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) appendLog(e models.LogEntry) {
	s.state.Logs = append(s.state.Logs, e)
	s.logIndex[logKey{e.HabitID, e.Date}] = len(s.state.Logs) - 1
}

func checkLogKey(habitID, date string) error {
	if strings.TrimSpace(habitID) == "" {
		return apperrors.Invalid("habit", "is required")
	}
	return validation.ValidateDate(date)
}
