// Package tracker owns the in-memory habit and completion-log collections
// and keeps them in step with the persisted record.
//
// A Store is constructed once at startup with an explicit Persister and
// passed to whatever needs it. Every mutation saves the whole state before
// returning. A failed save does not roll back the in-memory change: it is
// logged and reported by PersistErr until the next successful save.
package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitgrid/internal/logger"
	"github.com/julianstephens/habitgrid/internal/models"
)

// Persister loads and saves the whole application state.
// storage.Gateway is the production implementation.
type Persister interface {
	Load() (models.AppState, error)
	Save(models.AppState) error
}

// ReminderScheduler is told about habit changes so it can (re)arm or drop
// the habit's reminder. Calls must not block.
type ReminderScheduler interface {
	Schedule(habit models.Habit)
	Cancel(habitID string)
}

type logKey struct {
	habitID string
	date    string
}

type Store struct {
	mu sync.RWMutex

	persister Persister
	scheduler ReminderScheduler
	now       func() time.Time
	newID     func() string

	state      models.AppState
	logIndex   map[logKey]int
	persistErr error
}

type Option func(*Store)

// WithScheduler registers the reminder scheduler notified on habit changes.
func WithScheduler(s ReminderScheduler) Option {
	return func(st *Store) { st.scheduler = s }
}

// WithClock overrides the clock used for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

// WithIDGenerator overrides habit id allocation.
func WithIDGenerator(fn func() string) Option {
	return func(st *Store) { st.newID = fn }
}

// New returns a store holding the empty state. Call Load to read the
// persisted record.
func New(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.replace(models.EmptyState(s.now().Year()))
	return s
}

// Open is New followed by Load. On a load error the returned store still
// holds the empty state so callers may choose to continue.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := New(p, opts...)
	return s, s.Load()
}

// Load replaces the in-memory state with the persisted record. On failure
// the current state is kept.
func (s *Store) Load() error {
	state, err := s.persister.Load()
	if err != nil {
		logger.Error("Failed to load state", "error", err)
		return err
	}

	s.mu.Lock()
	s.replace(state)
	s.mu.Unlock()
	return nil
}

func (s *Store) replace(state models.AppState) {
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	state.Logs = dedupeLogs(state.Logs)
	s.state = state
	s.reindex()
}

// dedupeLogs keeps one entry per (habit, date). The last entry wins and
// keeps its position.
func dedupeLogs(logs []models.LogEntry) []models.LogEntry {
	last := make(map[logKey]int, len(logs))
	for i, e := range logs {
		last[logKey{e.HabitID, e.Date}] = i
	}
	out := make([]models.LogEntry, 0, len(last))
	for i, e := range logs {
		if last[logKey{e.HabitID, e.Date}] == i {
			out = append(out, e)
		}
	}
	return out
}

// reindex rebuilds the (habit, date) lookup.
func (s *Store) reindex() {
	s.logIndex = make(map[logKey]int, len(s.state.Logs))
	for i, e := range s.state.Logs {
		s.logIndex[logKey{e.HabitID, e.Date}] = i
	}
}

// persist saves the current state. Callers hold the write lock.
func (s *Store) persist() {
	if err := s.persister.Save(s.state); err != nil {
		logger.Error("Failed to persist state; change kept in memory only", "error", err)
		s.persistErr = err
		return
	}
	s.persistErr = nil
}

// PersistErr returns the error from the most recent save, or nil if it
// succeeded.
func (s *Store) PersistErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Settings
}

// SetCurrentYear changes the year the calendar opens on.
func (s *Store) SetCurrentYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings.CurrentYear = year
	s.persist()
}

// SetNotificationsEnabled turns reminders on or off globally and re-syncs
// the scheduler.
func (s *Store) SetNotificationsEnabled(on bool) {
	s.mu.Lock()
	s.state.Settings.NotificationsEnabled = &on
	s.persist()
	habits := append([]models.Habit(nil), s.state.Habits...)
	s.mu.Unlock()

	for _, h := range habits {
		s.notifyScheduler(h, on)
	}
}

func (s *Store) notifyScheduler(h models.Habit, notificationsOn bool) {
	if s.scheduler == nil {
		return
	}
	if notificationsOn && h.Reminder != nil && h.Reminder.Enabled {
		s.scheduler.Schedule(h)
		return
	}
	s.scheduler.Cancel(h.ID)
}
