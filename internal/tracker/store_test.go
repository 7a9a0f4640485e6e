package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/habitgrid/internal/calendar"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/storage"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

// fakePersister records saves and can be told to fail.
type fakePersister struct {
	state   models.AppState
	loadErr error
	saveErr error
	saves   int
}

func (f *fakePersister) Load() (models.AppState, error) {
	if f.loadErr != nil {
		return models.AppState{}, f.loadErr
	}
	return f.state.Clone(), nil
}

func (f *fakePersister) Save(state models.AppState) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = state.Clone()
	return nil
}

type fakeScheduler struct {
	scheduled []string
	cancelled []string
}

func (f *fakeScheduler) Schedule(h models.Habit) { f.scheduled = append(f.scheduled, h.ID) }
func (f *fakeScheduler) Cancel(id string)        { f.cancelled = append(f.cancelled, id) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("h%d", n)
	}
}

func setupStore(t *testing.T, opts ...Option) (*Store, *fakePersister) {
	t.Helper()
	p := &fakePersister{state: models.EmptyState(2024)}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs())}, opts...)
	s, err := Open(p, opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s, p
}

func mustCreate(t *testing.T, s *Store, in models.HabitInput) models.Habit {
	t.Helper()
	h, err := s.Create(in)
	if err != nil {
		t.Fatalf("Create(%+v) error = %v", in, err)
	}
	return h
}

func TestOpenLoadsPersistedState(t *testing.T) {
	p := &fakePersister{state: models.AppState{
		Habits:   []models.Habit{{ID: "a", Name: "Run"}},
		Logs:     []models.LogEntry{{HabitID: "a", Date: "2024-01-01", Completed: true}},
		Settings: models.Settings{CurrentYear: 2023},
	}}

	s, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.List()) != 1 || !s.IsCompleted("a", "2024-01-01") {
		t.Errorf("state not loaded: %+v", s.Snapshot())
	}
	if s.Settings().CurrentYear != 2023 {
		t.Errorf("CurrentYear = %d", s.Settings().CurrentYear)
	}
}

func TestOpenCollapsesDuplicateLogs(t *testing.T) {
	p := &fakePersister{state: models.AppState{
		Habits: []models.Habit{{ID: "a", Name: "Run", Color: "#f00", Mandatory: true}},
		Logs: []models.LogEntry{
			{HabitID: "a", Date: "2024-01-01", Completed: true},
			{HabitID: "a", Date: "2024-01-02", Completed: true},
			{HabitID: "a", Date: "2024-01-01", Completed: true},
			{HabitID: "a", Date: "2024-01-03", Completed: true},
			{HabitID: "a", Date: "2024-01-03", Completed: false},
		},
		Settings: models.Settings{CurrentYear: 2024},
	}}

	s, err := Open(p, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}

	if got := s.ForYear(2024); len(got) != 3 {
		t.Fatalf("ForYear() = %+v, want one entry per habit and date", got)
	}
	if s.IsCompleted("a", "2024-01-03") {
		t.Error("the last entry for a date should win")
	}
	status := calendar.Aggregate(2024, s.List(), s.ForYear(2024), nil)["2024-01-01"]
	if status.MandatoryCompleted != 1 || status.MandatoryTotal != 1 {
		t.Errorf("status = %+v, want 1/1 mandatory", status)
	}
	if calendar.Classify(status) != calendar.SeverityAllComplete {
		t.Errorf("Classify() = %v, want all-complete", calendar.Classify(status))
	}

	done, err := s.Toggle("a", "2024-01-01")
	if err != nil || done {
		t.Fatalf("Toggle() = %v, %v; want false", done, err)
	}
	if s.IsCompleted("a", "2024-01-01") {
		t.Error("IsCompleted after toggle off")
	}
	if _, ok := calendar.Aggregate(2024, s.List(), s.ForYear(2024), nil)["2024-01-01"]; !ok {
		t.Error("day with a log entry should stay present")
	}
	status = calendar.Aggregate(2024, s.List(), s.ForYear(2024), nil)["2024-01-01"]
	if status.MandatoryCompleted != 0 {
		t.Errorf("aggregate still counts a completion: %+v", status)
	}
	if n := len(p.state.Logs); n != 3 {
		t.Errorf("saved record has %d logs, want 3", n)
	}
}

func TestOpenLoadFailureKeepsEmptyState(t *testing.T) {
	p := &fakePersister{loadErr: apperrors.Persistence("decode state", errors.New("bad json"))}

	s, err := Open(p, WithClock(func() time.Time { return fixedNow }))
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Fatalf("Open() error = %v, want persistence error", err)
	}
	if s == nil || len(s.List()) != 0 || s.Settings().CurrentYear != 2024 {
		t.Errorf("expected empty 2024 state, got %+v", s.Snapshot())
	}
}

func TestPersistenceFailureKeepsChangeInMemory(t *testing.T) {
	s, p := setupStore(t)
	p.saveErr = errors.New("disk full")

	h, err := s.Create(models.HabitInput{Name: "Run"})
	if err != nil {
		t.Fatalf("Create() should not fail on persistence, got %v", err)
	}
	if _, err := s.Get(h.ID); err != nil {
		t.Error("habit should still exist in memory")
	}
	if len(p.state.Habits) != 0 {
		t.Error("nothing should have been durably saved")
	}
	if err := s.PersistErr(); err == nil || err.Error() != "disk full" {
		t.Errorf("PersistErr() = %v", err)
	}

	if _, err := s.Toggle(h.ID, "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	if !s.IsCompleted(h.ID, "2024-01-01") {
		t.Error("toggle lost after failed save")
	}

	p.saveErr = nil
	if err := s.Set(h.ID, "2024-01-02", true); err != nil {
		t.Fatal(err)
	}
	if s.PersistErr() != nil {
		t.Error("PersistErr should clear after a successful save")
	}
	if len(p.state.Habits) != 1 || len(p.state.Logs) != 2 {
		t.Errorf("successful save should carry earlier changes: %+v", p.state)
	}
}

func TestStoreWithGatewayRoundTrip(t *testing.T) {
	kv := storage.NewMemoryKV()
	gw := storage.NewGateway(kv)

	s, err := Open(gw, WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatal(err)
	}
	h := mustCreate(t, s, models.HabitInput{Name: "Read", Color: "#3b82f6"})
	if err := s.Set(h.ID, "2024-02-02", true); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(storage.NewGateway(kv))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reopened.List(), s.List()) {
		t.Errorf("habits differ after reopen: %+v vs %+v", reopened.List(), s.List())
	}
	if !reopened.IsCompleted(h.ID, "2024-02-02") {
		t.Error("log entry lost after reopen")
	}
}

func TestSettings(t *testing.T) {
	sched := &fakeScheduler{}
	s, p := setupStore(t, WithScheduler(sched))

	s.SetCurrentYear(2025)
	if s.Settings().CurrentYear != 2025 || p.state.Settings.CurrentYear != 2025 {
		t.Error("current year not persisted")
	}

	h := mustCreate(t, s, models.HabitInput{Name: "Meditate", Reminder: &models.Reminder{Enabled: true, Time: "07:00"}})
	if len(sched.scheduled) != 0 {
		t.Error("reminders must not be scheduled while notifications are off")
	}

	s.SetNotificationsEnabled(true)
	if !p.state.Settings.NotificationsOn() {
		t.Error("notifications setting not persisted")
	}
	if !reflect.DeepEqual(sched.scheduled, []string{h.ID}) {
		t.Errorf("scheduled = %v", sched.scheduled)
	}

	s.SetNotificationsEnabled(false)
	if last := sched.cancelled[len(sched.cancelled)-1]; last != h.ID {
		t.Errorf("disabling notifications should cancel %s, cancelled %v", h.ID, sched.cancelled)
	}
}

// The three scenarios below follow a session: add two habits, complete one,
// filter, then delete.
func TestScenarioSession(t *testing.T) {
	s, _ := setupStore(t)
	run := mustCreate(t, s, models.HabitInput{Name: "Run", Color: "#f00", Mandatory: true})
	read := mustCreate(t, s, models.HabitInput{Name: "Read", Color: "#0f0"})

	if _, err := s.Toggle(run.ID, "2024-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(read.ID, "2024-01-01", false); err != nil {
		t.Fatal(err)
	}

	statuses := calendar.Aggregate(2024, s.List(), s.ForYear(2024), nil)
	want := models.DayStatus{
		Date:               "2024-01-01",
		MandatoryCompleted: 1,
		MandatoryTotal:     1,
		OptionalTotal:      1,
		CompletedColors:    []string{"#f00"},
	}
	if !reflect.DeepEqual(statuses["2024-01-01"], want) {
		t.Errorf("status = %+v, want %+v", statuses["2024-01-01"], want)
	}

	if !s.Delete(run.ID) {
		t.Fatal("Delete() = false")
	}
	statuses = calendar.Aggregate(2024, s.List(), s.ForYear(2024), nil)
	got := statuses["2024-01-01"]
	if got.MandatoryTotal != 0 || got.OptionalTotal != 1 || len(got.CompletedColors) != 0 {
		t.Errorf("deleted habit left a trace: %+v", got)
	}
}
