package system

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/logger"
)

var errNotificationsDisabled = errors.New("reminders are disabled; enable them with 'habitgrid settings --notifications' and reminders.enabled in the config file")

type RemindersCmd struct {
	Start RemindersRunCmd  `cmd:"" name:"run" help:"Run the reminder scheduler in the foreground."`
	List  RemindersListCmd `cmd:"" help:"List habit reminders and when they fire next."`
}

type RemindersRunCmd struct{}

func (c *RemindersRunCmd) Run(ctx *cli.Context) error {
	if !ctx.RemindersOn() {
		return errNotificationsDisabled
	}

	ctx.Scheduler.Sync(ctx.Store.List())
	if ctx.Scheduler.Len() == 0 {
		ctx.Println("No habits have an enabled reminder.")
		return nil
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Scheduler.Start()
	logger.Info("Reminder scheduler started", "reminders", ctx.Scheduler.Len())
	ctx.Printf("Scheduled %d reminder(s). Press Ctrl+C to stop.\n", ctx.Scheduler.Len())

	<-sigCtx.Done()
	ctx.Scheduler.Stop()
	logger.Info("Reminder scheduler stopped")
	return nil
}

type RemindersListCmd struct{}

func (c *RemindersListCmd) Run(ctx *cli.Context) error {
	on := ctx.RemindersOn()
	if !on {
		ctx.Println("Reminders are disabled and will not fire.")
	}

	ctx.Scheduler.Sync(ctx.Store.List())
	now := ctx.Now()
	found := false
	for _, h := range ctx.Store.List() {
		if h.Reminder == nil {
			continue
		}
		found = true
		if !h.Reminder.Enabled {
			ctx.Printf("  %s  %s  (disabled)\n", h.Reminder.Time, h.Name)
			continue
		}
		if next, ok := ctx.Scheduler.Next(h.ID, now); ok && on {
			ctx.Printf("  %s  %s  next: %s\n", h.Reminder.Time, h.Name, next.Format("2006-01-02 15:04"))
		} else {
			ctx.Printf("  %s  %s\n", h.Reminder.Time, h.Name)
		}
	}
	if !found {
		ctx.Println("No habits have a reminder.")
	}
	return nil
}
