package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitgrid/internal/backup"
	"github.com/julianstephens/habitgrid/internal/config"
	"github.com/julianstephens/habitgrid/internal/constants"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/logger"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/notifier"
	"github.com/julianstephens/habitgrid/internal/reminder"
	"github.com/julianstephens/habitgrid/internal/storage"
	"github.com/julianstephens/habitgrid/internal/tracker"
	"github.com/julianstephens/habitgrid/internal/utils"
)

// Context is handed to every command. It owns the opened store and the
// tracker built on top of it.
type Context struct {
	Config    *config.Config
	KV        storage.KV
	Gateway   *storage.Gateway
	Store     *tracker.Store
	Scheduler *reminder.Scheduler
	Location  *time.Location

	// LoadErr is set when the persisted state could not be read. Only init
	// may run in that case.
	LoadErr error

	Out io.Writer
	In  io.Reader
	now func() time.Time
}

// Options overrides the process defaults, mostly for tests.
type Options struct {
	Out      io.Writer
	In       io.Reader
	Now      func() time.Time
	Notifier reminder.Notifier
}

// NewContext opens the configured store and loads the tracker state.
func NewContext(cfg *config.Config, opts Options) (*Context, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	location, err := cfg.StorageLocation()
	if err != nil {
		return nil, err
	}
	if cfg.Backend == constants.BackendPostgres {
		// Credentials from the environment or keyring are allowed
		if err := storage.ValidateConnString(location); err != nil && !errors.Is(err, storage.ErrEmbeddedCredentials) {
			return nil, err
		}
	}

	kv, err := storage.New(cfg.Backend, location)
	if err != nil {
		return nil, err
	}
	if err := kv.Open(); err != nil {
		return nil, err
	}

	n := opts.Notifier
	if n == nil {
		if cfg.Reminders.LogOnly {
			n = notifier.LogNotifier{}
		} else {
			n = notifier.New()
		}
	}
	sched := reminder.NewScheduler(loc, n)

	gw := storage.NewGateway(kv)
	storeOpts := []tracker.Option{tracker.WithClock(opts.Now)}
	if cfg.Reminders.Enabled {
		storeOpts = append(storeOpts, tracker.WithScheduler(sched))
	}
	store, loadErr := tracker.Open(gw, storeOpts...)

	return &Context{
		Config:    cfg,
		KV:        kv,
		Gateway:   gw,
		Store:     store,
		Scheduler: sched,
		Location:  loc,
		LoadErr:   loadErr,
		Out:       opts.Out,
		In:        opts.In,
		now:       opts.Now,
	}, nil
}

// RemindersOn reports whether reminders are enabled in both the config
// file and the stored settings.
func (c *Context) RemindersOn() bool {
	return c.Config.Reminders.Enabled && c.Store.Settings().NotificationsOn()
}

func (c *Context) Close() error {
	return c.KV.Close()
}

// Now returns the current time in the configured timezone.
func (c *Context) Now() time.Time {
	return c.now().In(c.Location)
}

// Today returns today's date in the configured timezone.
func (c *Context) Today() string {
	return c.Now().Format(constants.DateFormat)
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Saved reports a failed save after a mutation. The change stays in memory
// for this process only.
func (c *Context) Saved() error {
	if err := c.Store.PersistErr(); err != nil {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return nil
}

// ResolveHabit finds a habit by id, case-insensitive name or unique id
// prefix.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if h, err := c.Store.Get(ref); err == nil {
		return h, nil
	}
	if h, err := c.Store.FindByName(ref); err == nil {
		return h, nil
	}

	var match []models.Habit
	if len(ref) >= 4 {
		for _, h := range c.Store.List() {
			if strings.HasPrefix(h.ID, ref) {
				match = append(match, h)
			}
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperrors.ErrNotFound)
	default:
		return models.Habit{}, fmt.Errorf("habit id prefix %q is ambiguous", ref)
	}
}

// BackupManager returns the backup manager for file-based stores.
func (c *Context) BackupManager() (*backup.Manager, error) {
	return backup.NewManager(c.Config.Backend, c.KV.Location())
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := os.Stat(c.KV.Location()); errors.Is(err, os.ErrNotExist) {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on In; anything but y or yes is no.
func (c *Context) Confirm(prompt string) bool {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
