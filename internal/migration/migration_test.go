package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	migrationFS := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"002_more.sql": {Data: []byte("CREATE TABLE b (id INTEGER PRIMARY KEY);")},
		"README.md":    {Data: []byte("ignored")},
	}
	runner := NewRunner(db, migrationFS, SQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Re-running is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no migrations on rerun, got %d", applied)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := openTestDB(t)
	migrationFS := fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE nonsense (")},
	}
	runner := NewRunner(db, migrationFS, SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}
	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
		want string
	}{
		{"bad name", fstest.MapFS{"init.sql": {Data: []byte("")}}, "invalid migration filename"},
		{"bad version", fstest.MapFS{"abc_init.sql": {Data: []byte("")}}, "invalid version number"},
		{"zero version", fstest.MapFS{"000_init.sql": {Data: []byte("")}}, "at least 1"},
		{"duplicate", fstest.MapFS{
			"001_a.sql":  {Data: []byte("")},
			"0001_b.sql": {Data: []byte("")},
		}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, tt.fs, SQLite)
			_, err := runner.ReadMigrationFiles()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, fstest.MapFS{"001_init.sql": {Data: []byte("SELECT 1;")}}, SQLite)
	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (5)"); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for database newer than the application")
	}
}
