package settings

import (
	"fmt"

	"github.com/julianstephens/habitgrid/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Year          *int  `help:"Year shown by the calendar and TUI."`
	Notifications *bool `help:"Enable or disable habit reminders."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.Store.Settings()

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Current Year:          %d\n", settings.CurrentYear)
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsOn())
		ctx.Println("\nConfiguration:")
		ctx.Printf("  Backend:               %s\n", ctx.Config.Backend)
		ctx.Printf("  Storage:               %s\n", ctx.Gateway.Location())
		ctx.Printf("  Timezone:              %s\n", ctx.Location)
		return nil
	}

	updated := false
	if c.Year != nil {
		if *c.Year < 1 || *c.Year > 9999 {
			return fmt.Errorf("invalid year %d", *c.Year)
		}
		ctx.Store.SetCurrentYear(*c.Year)
		updated = true
	}
	if c.Notifications != nil {
		ctx.Store.SetNotificationsEnabled(*c.Notifications)
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Saved(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
