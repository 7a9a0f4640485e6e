package habits

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/tui"
	"github.com/julianstephens/habitgrid/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name. Omit to fill in an interactive form."`
	Color     string `help:"Palette color name or hex value." default:""`
	Mandatory bool   `help:"Count the habit towards a fully completed day."`
	StartDate string `help:"First day the habit is tracked (YYYY-MM-DD)." default:""`
	Reminder  string `help:"Daily reminder time (HH:MM)." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var input models.HabitInput
	if c.Name == "" {
		fm := &tui.HabitFormModel{}
		if err := tui.NewHabitForm(fm).Run(); err != nil {
			return err
		}
		input = fm.Input()
	} else {
		var err error
		if input, err = c.input(); err != nil {
			return err
		}
	}

	if _, err := ctx.Store.FindByName(input.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", input.Name)
	}

	habit, err := ctx.Store.Create(input)
	if err != nil {
		return err
	}
	if err := ctx.Saved(); err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

func (c *HabitAddCmd) input() (models.HabitInput, error) {
	in := models.HabitInput{
		Name:      strings.TrimSpace(c.Name),
		Mandatory: c.Mandatory,
		StartDate: c.StartDate,
	}
	if c.Color != "" {
		color, err := parseColor(c.Color)
		if err != nil {
			return in, err
		}
		in.Color = color
	}
	if c.Reminder != "" {
		in.Reminder = &models.Reminder{Enabled: true, Time: c.Reminder}
	}
	return in, nil
}

func parseColor(s string) (string, error) {
	color, ok := constants.ColorByName(s)
	if !ok {
		return "", fmt.Errorf("unknown color %q (choose one of: %s)", s, strings.ToLower(strings.Join(constants.PaletteNames, ", ")))
	}
	return color, nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.List()
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tKIND\tSTART\tREMINDER")
	for _, h := range habits {
		kind := "optional"
		if h.Mandatory {
			kind = "mandatory"
		}
		start := h.StartDate
		if start == "" {
			start = "-"
		}
		reminder := "-"
		if h.Reminder != nil {
			reminder = h.Reminder.Time
			if !h.Reminder.Enabled {
				reminder += " (off)"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", shortID(h.ID), h.Name, h.Color, kind, start, reminder)
	}
	return w.Flush()
}

func boolPtr(b bool) *bool { return &b }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type HabitEditCmd struct {
	Habit         string  `arg:"" help:"Habit name or ID."`
	Name          *string `help:"New name."`
	Color         *string `help:"New palette color name or hex value."`
	Kind          string  `help:"Either mandatory or optional." default:""`
	StartDate     *string `help:"New start date (YYYY-MM-DD); empty to clear."`
	Reminder      *string `help:"New daily reminder time (HH:MM)."`
	ClearReminder bool    `help:"Remove the reminder."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if c.Name != nil {
		if other, err := ctx.Store.FindByName(*c.Name); err == nil && other.ID != habit.ID {
			return fmt.Errorf("habit with name %q already exists", other.Name)
		}
	}

	patch := models.HabitPatch{
		Name:          c.Name,
		StartDate:     c.StartDate,
		ClearReminder: c.ClearReminder,
	}
	switch strings.ToLower(c.Kind) {
	case "":
	case "mandatory":
		patch.Mandatory = boolPtr(true)
	case "optional":
		patch.Mandatory = boolPtr(false)
	default:
		return fmt.Errorf("invalid kind %q (expected mandatory or optional)", c.Kind)
	}
	if c.Color != nil {
		color, err := parseColor(*c.Color)
		if err != nil {
			return err
		}
		patch.Color = &color
	}
	if c.Reminder != nil {
		patch.Reminder = &models.Reminder{Enabled: true, Time: *c.Reminder}
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change: pass at least one of --name, --color, --kind, --start-date, --reminder, --clear-reminder")
	}

	updated, err := ctx.Store.Update(habit.ID, patch)
	if err != nil {
		return err
	}
	if err := ctx.Saved(); err != nil {
		return err
	}

	ctx.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Delete habit %q and all of its history?", habit.Name)) {
		ctx.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if !ctx.Store.Delete(habit.ID) {
		return fmt.Errorf("habit %q was already removed", habit.Name)
	}
	if err := ctx.Saved(); err != nil {
		return err
	}

	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type MarkCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

// Run toggles the habit for the day. Dates after today are rejected.
func (c *MarkCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = ctx.Today()
	}
	if err := validation.ValidateBackfillDate(day, ctx.Today()); err != nil {
		return err
	}

	done, err := ctx.Store.Toggle(habit.ID, day)
	if err != nil {
		return err
	}
	if err := ctx.Saved(); err != nil {
		return err
	}

	if done {
		ctx.Printf("Marked habit %q for %s\n", habit.Name, day)
	} else {
		ctx.Printf("Unmarked habit %q for %s\n", habit.Name, day)
	}
	return nil
}
