package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/cli/backups"
	"github.com/julianstephens/habitgrid/internal/cli/habits"
	"github.com/julianstephens/habitgrid/internal/cli/logs"
	"github.com/julianstephens/habitgrid/internal/cli/settings"
	"github.com/julianstephens/habitgrid/internal/cli/system"
	"github.com/julianstephens/habitgrid/internal/config"
	"github.com/julianstephens/habitgrid/internal/constants"
	apperrors "github.com/julianstephens/habitgrid/internal/errors"
	"github.com/julianstephens/habitgrid/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Backend string `help:"Override the storage backend (json, sqlite or postgres)." default:""`
	Data    string `help:"Override the data file path. PostgreSQL connection strings must not embed credentials; use the keyring or ${env_conn} instead." default:""`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitgrid storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive year view." default:"1"`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits."`
	Mark     habits.MarkCmd       `cmd:"" help:"Toggle a habit for today or a past day."`
	Log      logs.LogCmd          `cmd:"" help:"Edit the completion log."`
	Day      logs.DayCmd          `cmd:"" help:"Show habit status for a day."`
	Calendar logs.CalendarCmd     `cmd:"" help:"Print the year calendar."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Reminders system.RemindersCmd `cmd:"" help:"Habit reminders."`
	Keyring   system.KeyringCmd   `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with a year-at-a-glance calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
			"env_conn":    constants.EnvDBConnection,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Backend != "" && CLI.Backend != cfg.Backend {
		cfg.Backend = CLI.Backend
		// The configured file path means nothing to postgres
		if CLI.Backend == constants.BackendPostgres {
			cfg.DataPath = ""
		}
	}
	if CLI.Data != "" {
		cfg.DataPath = CLI.Data
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx, err := cli.NewContext(cfg, cli.Options{})
	if err != nil {
		apperrors.Fatal(err)
	}

	// Only init may run against data that failed to load; anything else
	// could overwrite it with the empty state
	if appCtx.LoadErr != nil && ctx.Command() != "init" {
		appCtx.Close()
		apperrors.Fatal(fmt.Errorf("%w (run '%s init --force' to reset, or restore a backup)", appCtx.LoadErr, constants.AppName))
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}
