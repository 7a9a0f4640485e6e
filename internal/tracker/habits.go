package tracker

import (
	"strings"
	"time"

	"github.com/julianstephens/habitgrid/internal/constants"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/validation"
)

// Create validates input, stamps a fresh id and creation time, appends the
// habit and persists.
func (s *Store) Create(input models.HabitInput) (models.Habit, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.ValidateHabitInput(input); err != nil {
		return models.Habit{}, err
	}

	habit := models.Habit{
		ID:        s.newID(),
		Name:      input.Name,
		Color:     input.Color,
		Mandatory: input.Mandatory,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
		StartDate: input.StartDate,
	}
	if habit.Color == "" {
		habit.Color = constants.DefaultColor
	}
	if input.Reminder != nil {
		r := *input.Reminder
		habit.Reminder = &r
	}

	s.mu.Lock()
	s.state.Habits = append(s.state.Habits, habit)
	s.persist()
	notify := s.state.Settings.NotificationsOn()
	s.mu.Unlock()

	s.notifyScheduler(habit, notify)
	return habit, nil
}

// Update merges patch into the habit with the given id. It returns
// ErrNotFound when no such habit exists.
func (s *Store) Update(id string, patch models.HabitPatch) (models.Habit, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := validation.ValidateHabitPatch(patch); err != nil {
		return models.Habit{}, err
	}

	s.mu.Lock()
	i := s.habitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Habit{}, apperrors.ErrNotFound
	}
	updated := patch.Apply(s.state.Habits[i])
	s.state.Habits[i] = updated
	s.persist()
	notify := s.state.Settings.NotificationsOn()
	s.mu.Unlock()

	s.notifyScheduler(updated, notify)
	return cloneHabit(updated), nil
}

// Delete removes the habit and every log entry that references it. It
// reports whether a habit was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i := s.habitIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.state.Habits = append(s.state.Habits[:i:i], s.state.Habits[i+1:]...)

	kept := s.state.Logs[:0:0]
	for _, e := range s.state.Logs {
		if e.HabitID != id {
			kept = append(kept, e)
		}
	}
	s.state.Logs = kept
	s.reindex()
	s.persist()
	s.mu.Unlock()

	if s.scheduler != nil {
		s.scheduler.Cancel(id)
	}
	return true
}

// List returns the habits in insertion order.
func (s *Store) List() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Habit, len(s.state.Habits))
	for i, h := range s.state.Habits {
		out[i] = cloneHabit(h)
	}
	return out
}

func (s *Store) Get(id string) (models.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.habitIndex(id); i >= 0 {
		return cloneHabit(s.state.Habits[i]), nil
	}
	return models.Habit{}, apperrors.ErrNotFound
}

// FindByName looks a habit up by case-insensitive name. The first match in
// insertion order wins.
func (s *Store) FindByName(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.state.Habits {
		if strings.EqualFold(h.Name, name) {
			return cloneHabit(h), nil
		}
	}
	return models.Habit{}, apperrors.ErrNotFound
}

func (s *Store) habitIndex(id string) int {
	for i, h := range s.state.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func cloneHabit(h models.Habit) models.Habit {
	if h.Reminder != nil {
		r := *h.Reminder
		h.Reminder = &r
	}
	return h
}
