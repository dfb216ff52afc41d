package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAllMigrations(t *testing.T) {
	db := openTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	version, err := GetCurrentVersion(db)
	if err != nil {
		t.Fatalf("GetCurrentVersion() error: %v", err)
	}
	want := AllMigrations[len(AllMigrations)-1].Version
	if version != want {
		t.Errorf("version = %d, want %d", version, want)
	}
}

func TestRun_Idempotent(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Run(db); err != nil {
			t.Fatalf("Run() pass %d error: %v", i, err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(AllMigrations) {
		t.Errorf("recorded %d migrations, want %d", count, len(AllMigrations))
	}
}

func TestAllMigrations_Ordered(t *testing.T) {
	for i, m := range AllMigrations {
		if m.Version != i+1 {
			t.Errorf("migration %q has version %d, want %d", m.Name, m.Version, i+1)
		}
	}
}
