package storage

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/models"
)

// failingKV fails every operation
type failingKV struct{ MemoryKV }

var errDiskFull = errors.New("quota exceeded")

func (f *failingKV) Get(string) ([]byte, bool, error) { return nil, false, errDiskFull }
func (f *failingKV) Set(string, []byte) error         { return errDiskFull }
func (f *failingKV) Remove(string) error              { return errDiskFull }

func fixedClock() time.Time {
	return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)
}

func newTestGateway(kv KV) *Gateway {
	g := NewGateway(kv)
	g.now = fixedClock
	return g
}

func TestGatewayLoadAbsentRecord(t *testing.T) {
	g := newTestGateway(NewMemoryKV())

	state, err := g.Load()
	if err != nil {
		t.Fatalf("absent record must not be an error: %v", err)
	}
	if state.Habits == nil || len(state.Habits) != 0 {
		t.Errorf("expected empty non-nil habits, got %#v", state.Habits)
	}
	if state.Logs == nil || len(state.Logs) != 0 {
		t.Errorf("expected empty non-nil logs, got %#v", state.Logs)
	}
	if state.Settings.CurrentYear != 2024 {
		t.Errorf("expected default year 2024, got %d", state.Settings.CurrentYear)
	}
}

func TestGatewayRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	g := newTestGateway(kv)

	on := true
	state := models.AppState{
		Habits: []models.Habit{
			{ID: "a", Name: "Run", Color: "#f00", Mandatory: true, CreatedAt: "2024-01-01T08:00:00Z",
				Reminder: &models.Reminder{Enabled: true, Time: "07:00"}},
			{ID: "b", Name: "Read", Color: "#0f0", StartDate: "2024-02-01"},
		},
		Logs: []models.LogEntry{
			{HabitID: "a", Date: "2024-01-01", Completed: true},
			{HabitID: "b", Date: "2024-01-01", Completed: false},
		},
		Settings: models.Settings{CurrentYear: 2023, NotificationsEnabled: &on},
	}

	if err := g.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := g.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.Habits) != 2 || loaded.Habits[0].ID != "a" || loaded.Habits[1].ID != "b" {
		t.Fatalf("habit order not preserved: %#v", loaded.Habits)
	}
	if loaded.Habits[0].Reminder == nil || loaded.Habits[0].Reminder.Time != "07:00" {
		t.Errorf("reminder lost: %#v", loaded.Habits[0].Reminder)
	}
	if loaded.Habits[1].StartDate != "2024-02-01" {
		t.Errorf("start date lost: %q", loaded.Habits[1].StartDate)
	}
	if len(loaded.Logs) != 2 || loaded.Logs[1].Completed {
		t.Errorf("logs not preserved: %#v", loaded.Logs)
	}
	if loaded.Settings.CurrentYear != 2023 || !loaded.Settings.NotificationsOn() {
		t.Errorf("settings not preserved: %#v", loaded.Settings)
	}
}

func TestGatewayRecordFormat(t *testing.T) {
	kv := NewMemoryKV()
	g := newTestGateway(kv)
	state := models.EmptyState(2024)
	state.Logs = append(state.Logs, models.LogEntry{HabitID: "a", Date: "2024-01-01", Completed: true})
	if err := g.Save(state); err != nil {
		t.Fatal(err)
	}

	raw, ok, _ := kv.Get("habitgrid-data")
	if !ok {
		t.Fatal("expected record under the fixed storage key")
	}
	want := `{"habits":[],"logs":[{"habitId":"a","date":"2024-01-01","completed":true}],"settings":{"currentYear":2024}}`
	if string(raw) != want {
		t.Errorf("record =\n%s\nwant\n%s", raw, want)
	}
}

func TestGatewayCorruptRecord(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("habitgrid-data", []byte(`{"habits": [`))
	g := newTestGateway(kv)

	_, err := g.Load()
	if !errors.Is(err, apperrors.ErrPersistence) {
		t.Errorf("expected persistence error, got %v", err)
	}
}

func TestGatewayNullCollections(t *testing.T) {
	kv := NewMemoryKV()
	kv.Set("habitgrid-data", []byte(`{"habits":null,"logs":null,"settings":{}}`))
	g := newTestGateway(kv)

	state, err := g.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state.Habits == nil || state.Logs == nil {
		t.Error("expected nil collections to be normalized")
	}
	if state.Settings.CurrentYear != 2024 {
		t.Errorf("expected missing year to default, got %d", state.Settings.CurrentYear)
	}
}

func TestGatewayStorageFailures(t *testing.T) {
	g := newTestGateway(&failingKV{})

	if _, err := g.Load(); !errors.Is(err, apperrors.ErrPersistence) || !errors.Is(err, errDiskFull) {
		t.Errorf("Load error = %v, want persistence error wrapping cause", err)
	}
	if err := g.Save(models.EmptyState(2024)); !errors.Is(err, apperrors.ErrPersistence) {
		t.Errorf("Save error = %v, want persistence error", err)
	}
	if err := g.Reset(); !errors.Is(err, apperrors.ErrPersistence) {
		t.Errorf("Reset error = %v, want persistence error", err)
	}
}

func TestGatewayReset(t *testing.T) {
	kv := NewMemoryKV()
	g := newTestGateway(kv)
	state := models.EmptyState(2020)
	state.Habits = append(state.Habits, models.Habit{ID: "x", Name: "x"})
	if err := g.Save(state); err != nil {
		t.Fatal(err)
	}
	if err := g.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	loaded, _ := g.Load()
	if len(loaded.Habits) != 0 || loaded.Settings.CurrentYear != 2024 {
		t.Errorf("expected empty state after reset, got %#v", loaded)
	}
}
