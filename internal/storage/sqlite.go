package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitgrid/internal/logger"
	"github.com/julianstephens/habitgrid/internal/migration"
	"github.com/julianstephens/habitgrid/migrations"
)

// SQLiteKV stores values in the kv_store table of an embedded SQLite database.
type SQLiteKV struct {
	path string
	db   *sql.DB
}

func NewSQLiteKV(path string) *SQLiteKV {
	return &SQLiteKV{
		path: path,
	}
}

func (s *SQLiteKV) Open() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		db.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteKV) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *SQLiteKV) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg, "backend", "sqlite")
	})
	return err
}

// CheckSchema verifies the database schema version against the embedded
// migrations.
func (s *SQLiteKV) CheckSchema() error {
	if s.db == nil {
		return fmt.Errorf("storage not opened")
	}
	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLiteKV) Get(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("storage not opened")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLiteKV) Set(key string, value []byte) error {
	if s.db == nil {
		return fmt.Errorf("storage not opened")
	}

	_, err := s.db.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteKV) Remove(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not opened")
	}
	_, err := s.db.Exec("DELETE FROM kv_store WHERE key = ?", key)
	return err
}

func (s *SQLiteKV) Location() string {
	return s.path
}
