package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/storage"
	"github.com/julianstephens/habitgrid/internal/utils"
	"github.com/julianstephens/habitgrid/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks never fail the run
	warnOnly bool
	// needsData checks are skipped when the store is unreachable
	needsData bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsData: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Habit integrity", run: checkHabitsIntegrity, needsData: true},
	{name: "Log integrity", run: checkLogIntegrity, needsData: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := checkStorageReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsData && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if _, err := ctx.Gateway.Load(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	checker, ok := ctx.KV.(storage.SchemaChecker)
	if !ok {
		// JSON files have no schema version
		return nil
	}
	return checker.CheckSchema()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	var errs []error
	ids := make(map[string]bool)
	for _, h := range ctx.Store.Snapshot().Habits {
		if h.ID == "" {
			errs = append(errs, fmt.Errorf("habit %q has no id", h.Name))
			continue
		}
		if ids[h.ID] {
			errs = append(errs, fmt.Errorf("habit id %s is used more than once", h.ID))
		}
		ids[h.ID] = true

		if err := validation.ValidateHabitInput(habitInput(h)); err != nil {
			errs = append(errs, fmt.Errorf("habit %s: %w", h.ID, err))
		}
		if _, err := time.Parse(time.RFC3339, h.CreatedAt); err != nil {
			errs = append(errs, fmt.Errorf("habit %s has an invalid createdAt %q", h.ID, h.CreatedAt))
		}
		if !constants.InPalette(h.Color) {
			errs = append(errs, fmt.Errorf("habit %s uses color %s outside the palette", h.ID, h.Color))
		}
	}
	return errors.Join(errs...)
}

func habitInput(h models.Habit) models.HabitInput {
	return models.HabitInput{
		Name:      h.Name,
		Color:     h.Color,
		Mandatory: h.Mandatory,
		StartDate: h.StartDate,
		Reminder:  h.Reminder,
	}
}

// checkLogIntegrity reports dangling, duplicate and malformed log entries.
// Dangling entries are harmless to aggregation but indicate a failed cascade.
func checkLogIntegrity(ctx *cli.Context) error {
	// The store collapses duplicates on load, so read the persisted record.
	state, err := ctx.Gateway.Load()
	if err != nil {
		return err
	}
	habits := make(map[string]bool, len(state.Habits))
	for _, h := range state.Habits {
		habits[h.ID] = true
	}

	type key struct{ habitID, date string }
	seen := make(map[key]bool, len(state.Logs))
	var dangling, duplicates, malformed int
	for _, e := range state.Logs {
		if !habits[e.HabitID] {
			dangling++
		}
		if !utils.ValidateDateFormat(e.Date) {
			malformed++
		}
		k := key{e.HabitID, e.Date}
		if seen[k] {
			duplicates++
		}
		seen[k] = true
	}

	var errs []error
	if dangling > 0 {
		errs = append(errs, fmt.Errorf("%d log entries reference deleted habits", dangling))
	}
	if duplicates > 0 {
		errs = append(errs, fmt.Errorf("%d duplicate log entries for the same habit and date", duplicates))
	}
	if malformed > 0 {
		errs = append(errs, fmt.Errorf("%d log entries have malformed dates", malformed))
	}
	return errors.Join(errs...)
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	now := ctx.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
