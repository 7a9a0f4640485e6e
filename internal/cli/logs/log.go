package logs

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/habitgrid/internal/calendar"
	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/validation"
)

type LogCmd struct {
	Set LogSetCmd `cmd:"" help:"Record whether a habit was done on a past day."`
}

type LogSetCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `arg:"" help:"Date in YYYY-MM-DD format (today or earlier)."`
	Done  bool   `help:"Completion state to record (--no-done to record a miss)." default:"true" negatable:""`
}

func (c *LogSetCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := validation.ValidateBackfillDate(c.Date, ctx.Today()); err != nil {
		return err
	}

	if err := ctx.Store.Set(habit.ID, c.Date, c.Done); err != nil {
		return err
	}
	if err := ctx.Saved(); err != nil {
		return err
	}

	state := "not done"
	if c.Done {
		state = "done"
	}
	ctx.Printf("Recorded %q as %s on %s\n", habit.Name, state, c.Date)
	return nil
}

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

// Run prints the habits active on the day with their completion and the
// day's classification. Habits that start after the day are not counted.
func (c *DayCmd) Run(ctx *cli.Context) error {
	day := c.Date
	if day == "" {
		day = ctx.Today()
	}
	if err := validation.ValidateDate(day); err != nil {
		return err
	}
	year, _ := strconv.Atoi(day[:4])

	habits := ctx.Store.List()
	statuses := calendar.AggregateWithStartDates(year, habits, ctx.Store.ForDate(day), nil)
	status := statuses[day]

	ctx.Printf("%s: %s\n", day, calendar.ClassifyDate(statuses, day))

	active := 0
	for _, h := range habits {
		if !h.ActiveOn(day) {
			continue
		}
		active++
		mark := " "
		if ctx.Store.IsCompleted(h.ID, day) {
			mark = "x"
		}
		kind := ""
		if h.Mandatory {
			kind = " (mandatory)"
		}
		ctx.Printf("  [%s] %s%s\n", mark, h.Name, kind)
	}
	if active == 0 {
		ctx.Println("  No habits are tracked on this day.")
		return nil
	}

	if status.Total() > 0 {
		ctx.Printf("Completed %d/%d (mandatory %d/%d, optional %d/%d)\n",
			status.Completed(), status.Total(),
			status.MandatoryCompleted, status.MandatoryTotal,
			status.OptionalCompleted, status.OptionalTotal)
	}
	return nil
}

type CalendarCmd struct {
	Year       int      `help:"Year to show (default: the saved current year)."`
	Filter     []string `help:"Only count these habits (names or IDs)." sep:","`
	StartDates bool     `help:"Leave habits out of days before their start date."`
	NoLegend   bool     `help:"Hide the color legend."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Store.Settings().CurrentYear
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("invalid year %d", year)
	}

	var ids []string
	for _, ref := range c.Filter {
		habit, err := ctx.ResolveHabit(ref)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	aggregate := calendar.Aggregate
	if c.StartDates {
		aggregate = calendar.AggregateWithStartDates
	}
	statuses := aggregate(year, ctx.Store.List(), ctx.Store.ForYear(year), ids)

	ctx.Println(calendar.Render(year, statuses, calendar.RenderOptions{
		Today:  ctx.Today(),
		Legend: !c.NoLegend,
	}))
	return nil
}
