package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/tui"
)

type TuiCmd struct{}

// Run opens the year view. Reminders fire while it is open.
func (c *TuiCmd) Run(ctx *cli.Context) error {
	if ctx.RemindersOn() {
		ctx.Scheduler.Sync(ctx.Store.List())
		ctx.Scheduler.Start()
		defer ctx.Scheduler.Stop()
	}

	m := tui.NewModel(ctx.Store, ctx.Today(), ctx.PerformAutomaticBackup)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
