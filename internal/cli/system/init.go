package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitgrid/internal/cli"
	"github.com/julianstephens/habitgrid/internal/constants"
	"github.com/julianstephens/habitgrid/internal/models"
	"github.com/julianstephens/habitgrid/internal/storage"
)

type InitCmd struct {
	Force         bool   `help:"Reset existing data (a backup is taken first)."`
	Source        string `help:"Path or connection string of a habitgrid store to import from."`
	SourceBackend string `help:"Backend of the import source (json, sqlite or postgres); guessed when empty." default:""`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	_, exists, err := ctx.KV.Get(constants.StorageKey)
	if err != nil {
		if !c.Force {
			return fmt.Errorf("failed to access storage: %w; rerun with --force to reset it", err)
		}
		exists = true
	}

	if exists && !c.Force {
		if ctx.LoadErr != nil {
			return fmt.Errorf("existing data at %s cannot be read (%v); rerun with --force to reset it", ctx.Gateway.Location(), ctx.LoadErr)
		}
		ctx.Printf("habitgrid is already initialized at: %s\n", ctx.Gateway.Location())
		return nil
	}

	// Import before touching existing data so a bad source leaves it intact
	state := models.EmptyState(ctx.Now().Year())
	if c.Source != "" {
		ctx.Printf("Importing data from: %s\n", c.Source)
		if state, err = c.importState(ctx); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		ctx.Printf("  Imported %d habits and %d log entries\n", len(state.Habits), len(state.Logs))
	}

	if exists {
		ctx.PerformAutomaticBackup()
		if err := c.reset(ctx); err != nil {
			return fmt.Errorf("failed to reset existing data: %w", err)
		}
		ctx.Printf("Reset existing data at: %s\n", ctx.Gateway.Location())
	}

	if err := ctx.Gateway.Save(state); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.LoadErr = nil

	ctx.Printf("Initialized habitgrid storage at: %s\n", ctx.Gateway.Location())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	err := ctx.Gateway.Reset()
	if err == nil || ctx.Config.Backend != constants.BackendJSON {
		return err
	}
	// An unreadable JSON file is replaced wholesale
	if err := os.Remove(ctx.KV.Location()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *InitCmd) importState(ctx *cli.Context) (models.AppState, error) {
	backend := c.SourceBackend
	if backend == "" {
		backend = guessBackend(c.Source)
	}

	if backend == constants.BackendPostgres {
		if err := storage.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return models.AppState{}, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return models.AppState{}, err
		}
	} else if samePath(c.Source, ctx.Gateway.Location()) {
		return models.AppState{}, fmt.Errorf("source and destination are the same: %s", c.Source)
	}

	source, err := storage.New(backend, c.Source)
	if err != nil {
		return models.AppState{}, err
	}
	if err := source.Open(); err != nil {
		return models.AppState{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer source.Close()

	_, ok, err := source.Get(constants.StorageKey)
	if err != nil {
		return models.AppState{}, err
	}
	if !ok {
		return models.AppState{}, fmt.Errorf("no habitgrid data found in %s", c.Source)
	}
	return storage.NewGateway(source).Load()
}

func guessBackend(location string) string {
	switch {
	case storage.IsPostgresConnString(location) || strings.Contains(location, "host="):
		return constants.BackendPostgres
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return constants.BackendJSON
	default:
		return constants.BackendSQLite
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
