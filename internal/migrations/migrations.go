package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add field/timestamp index for history listing",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_shortcut_history_field_id ON shortcut_history(field, id DESC);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_shortcut_history_field_id;
		`,
	},
	{
		Version: 2,
		Name:    "Add keys index for shortcut matching",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_shortcuts_keys ON shortcuts(keys);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_shortcuts_keys;
		`,
	},
	{
		Version: 3,
		Name:    "Add session index to history",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_shortcut_history_session ON shortcut_history(session_id);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_shortcut_history_session;
		`,
	},
}

// InitSchema creates all tables required across all modules
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	-- Current value of every shortcut field
	CREATE TABLE IF NOT EXISTS shortcuts (
		field TEXT PRIMARY KEY,
		mode TEXT NOT NULL DEFAULT 'code',
		keys TEXT NOT NULL DEFAULT '',
		keys_text TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	-- Every committed value, one row per persist
	CREATE TABLE IF NOT EXISTS shortcut_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		field TEXT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL,
		keys TEXT NOT NULL,
		keys_text TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shortcut_history_field ON shortcut_history(field);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		if _, err := db.Exec(migration.Up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
