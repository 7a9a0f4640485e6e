// Package reminder fires daily habit reminders on a cron schedule.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitgrid/internal/logger"
	"github.com/julianstephens/habitgrid/internal/models"
)

// Notifier delivers reminder text to the user.
type Notifier interface {
	Notify(text string) error
}

type entry struct {
	id   cron.EntryID
	time string
}

// Scheduler keeps at most one cron entry per habit. It satisfies
// tracker.ReminderScheduler.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	notifier Notifier
	entries  map[string]entry
}

func NewScheduler(loc *time.Location, notifier Notifier) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		notifier: notifier,
		entries:  make(map[string]entry),
	}
}

// Schedule arms the daily reminder for habit, replacing any previous entry.
// Habits without an enabled reminder are cancelled instead.
func (s *Scheduler) Schedule(habit models.Habit) {
	if habit.Reminder == nil || !habit.Reminder.Enabled {
		s.Cancel(habit.ID)
		return
	}

	spec, err := buildDailySpec(habit.Reminder.Time)
	if err != nil {
		logger.Warn("Skipping reminder", "habit", habit.Name, "error", err)
		s.Cancel(habit.ID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[habit.ID]; ok {
		s.cron.Remove(existing.id)
		delete(s.entries, habit.ID)
	}

	name := habit.Name
	id, err := s.cron.AddFunc(spec, func() { s.fire(name) })
	if err != nil {
		logger.Error("Failed to schedule reminder", "habit", habit.Name, "error", err)
		return
	}
	s.entries[habit.ID] = entry{id: id, time: habit.Reminder.Time}
	logger.Debug("Reminder scheduled", "habit", habit.Name, "time", habit.Reminder.Time)
}

// Cancel drops the habit's reminder if one is scheduled.
func (s *Scheduler) Cancel(habitID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[habitID]; ok {
		s.cron.Remove(existing.id)
		delete(s.entries, habitID)
	}
}

// Sync makes the scheduled set match habits exactly.
func (s *Scheduler) Sync(habits []models.Habit) {
	keep := make(map[string]bool, len(habits))
	for _, h := range habits {
		keep[h.ID] = true
		s.Schedule(h)
	}

	s.mu.Lock()
	var stale []string
	for id := range s.entries {
		if !keep[id] {
			stale = append(stale, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		s.Cancel(id)
	}
}

// Next returns the next firing time of the habit's reminder after t.
func (s *Scheduler) Next(habitID string, t time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[habitID]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(e.id).Schedule.Next(t), true
}

// Len returns the number of scheduled reminders.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running reminders to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) fire(habitName string) {
	text := fmt.Sprintf("Time for %s", habitName)
	logger.Info("Reminder firing", "habit", habitName)
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(text); err != nil {
		logger.Warn("Reminder delivery failed", "habit", habitName, "error", err)
	}
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
