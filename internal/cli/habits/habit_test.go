package habits

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/config"
	"github.com/julianstephens/habitgrid/internal/constants"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	out := &bytes.Buffer{}
	cfg := &config.Config{
		Backend:  constants.BackendSQLite,
		DataPath: filepath.Join(tempDir, "habitgrid.db"),
		Timezone: "UTC",
	}

	ctx, err := cli.NewContext(cfg, cli.Options{
		Out: out,
		In:  strings.NewReader(""),
		Now: func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}

	cleanup := func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func TestHabitAddCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	cmd := &HabitAddCmd{Name: "Read", Color: "blue", Mandatory: true, StartDate: "2024-02-01", Reminder: "21:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	habit, err := ctx.Store.FindByName("read")
	if err != nil {
		t.Fatalf("habit not stored: %v", err)
	}
	if habit.Color != "#3b82f6" || !habit.Mandatory || habit.StartDate != "2024-02-01" {
		t.Errorf("unexpected habit: %+v", habit)
	}
	if habit.Reminder == nil || habit.Reminder.Time != "21:00" || !habit.Reminder.Enabled {
		t.Errorf("unexpected reminder: %+v", habit.Reminder)
	}
	if !strings.Contains(out.String(), "Added habit: Read") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHabitAddCmdErrors(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	tests := []struct {
		name string
		cmd  HabitAddCmd
	}{
		{"duplicate name", HabitAddCmd{Name: "READ"}},
		{"unknown color", HabitAddCmd{Name: "Walk", Color: "mauve"}},
		{"bad start date", HabitAddCmd{Name: "Walk", StartDate: "2024-13-01"}},
		{"bad reminder", HabitAddCmd{Name: "Walk", Reminder: "25:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
		})
	}
	if n := len(ctx.Store.List()); n != 1 {
		t.Errorf("expected 1 habit after failed adds, got %d", n)
	}
}

func TestHabitListCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("unexpected empty output: %q", out.String())
	}

	out.Reset()
	if err := (&HabitAddCmd{Name: "Stretch", Mandatory: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"NAME", "Stretch", "mandatory", constants.DefaultColor} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("list output missing %q: %q", want, out.String())
		}
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Name: "Read", Reminder: "07:00"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	name := "Read more"
	color := "pink"
	cmd := &HabitEditCmd{Habit: "read", Name: &name, Color: &color, Kind: "mandatory", ClearReminder: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("habit edit failed: %v", err)
	}

	habit, err := ctx.Store.FindByName("Read more")
	if err != nil {
		t.Fatal(err)
	}
	if habit.Color != "#ec4899" || !habit.Mandatory || habit.Reminder != nil {
		t.Errorf("unexpected habit after edit: %+v", habit)
	}

	if err := (&HabitEditCmd{Habit: "Read more"}).Run(ctx); err == nil {
		t.Error("expected error for empty edit")
	}
	if err := (&HabitEditCmd{Habit: "Read more", Kind: "sometimes"}).Run(ctx); err == nil {
		t.Error("expected error for invalid kind")
	}
	if err := (&HabitEditCmd{Habit: "missing", Name: &name}).Run(ctx); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitEditCmd_RenameCollision(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	for _, name := range []string{"Read", "Run"} {
		if err := (&HabitAddCmd{Name: name}).Run(ctx); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		habit   string
		newName string
		wantErr bool
	}{
		{"taken by another habit", "Run", "Read", true},
		{"taken ignoring case", "Run", "  read ", true},
		{"own name with new case", "Run", "RUN", false},
		{"free name", "Read", "Read more", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newName := tt.newName
			err := (&HabitEditCmd{Habit: tt.habit, Name: &newName}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if n := len(ctx.Store.List()); n != 2 {
		t.Fatalf("expected 2 habits, got %d", n)
	}
	if _, err := ctx.Store.FindByName("Read more"); err != nil {
		t.Errorf("rename to a free name lost: %v", err)
	}
	if _, err := ctx.Store.FindByName("RUN"); err != nil {
		t.Errorf("case-only rename lost: %v", err)
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&MarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&HabitDeleteCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Store.List()) != 1 {
		t.Fatal("declined delete removed the habit")
	}
	if !strings.Contains(out.String(), "Delete cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&HabitDeleteCmd{Habit: "Read", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("habit delete failed: %v", err)
	}
	if len(ctx.Store.List()) != 0 {
		t.Error("habit still listed after delete")
	}
	if len(ctx.Store.Logs()) != 0 {
		t.Error("logs not removed with habit")
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) == 0 {
		t.Error("expected an automatic backup before delete")
	}
}

func TestMarkCmd(t *testing.T) {
	ctx, out, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HabitAddCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	habit, _ := ctx.Store.FindByName("Read")

	if err := (&MarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if !ctx.Store.IsCompleted(habit.ID, "2024-05-10") {
		t.Error("expected today to be completed")
	}
	if err := (&MarkCmd{Habit: "Read"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Store.IsCompleted(habit.ID, "2024-05-10") {
		t.Error("second mark should toggle off")
	}
	if !strings.Contains(out.String(), `Unmarked habit "Read" for 2024-05-10`) {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&MarkCmd{Habit: "Read", Date: "2024-01-15"}).Run(ctx); err != nil {
		t.Fatalf("backfill failed: %v", err)
	}
	if !ctx.Store.IsCompleted(habit.ID, "2024-01-15") {
		t.Error("expected backfilled date to be completed")
	}

	if err := (&MarkCmd{Habit: "Read", Date: "2024-05-11"}).Run(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for future date, got %v", err)
	}
	if err := (&MarkCmd{Habit: "Read", Date: "05/01/2024"}).Run(ctx); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for malformed date, got %v", err)
	}
}
