// Package store persists shortcut fields and their commit history in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/keycap/internal/config"
	"github.com/studiowebux/keycap/internal/migrations"
	"github.com/studiowebux/keycap/internal/types"
)

// ErrNotFound is returned when a field has no stored shortcut
var ErrNotFound = errors.New("shortcut not found")

const timestampLayout = time.RFC3339Nano

// Commit is one persisted value of a field
type Commit struct {
	Field     string
	Mode      types.CaptureMode // Empty keeps the stored mode
	Shortcut  types.Shortcut
	SessionID string
	Reason    types.CommitReason
}

type Manager struct {
	db  *sql.DB
	now func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to store database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// Save upserts the field's current value and appends a history row
func (m *Manager) Save(c Commit) error {
	if c.Field == "" {
		return fmt.Errorf("field name is required")
	}

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveTx(tx, c, m.now().UTC().Format(timestampLayout)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shortcut: %w", err)
	}
	return nil
}

// SaveAll stores every commit in a single transaction
func (m *Manager) SaveAll(commits []Commit) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ts := m.now().UTC().Format(timestampLayout)
	for _, c := range commits {
		if c.Field == "" {
			return fmt.Errorf("field name is required")
		}
		if err := saveTx(tx, c, ts); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shortcuts: %w", err)
	}
	return nil
}

func saveTx(tx *sql.Tx, c Commit, ts string) error {
	_, err := tx.Exec(`
		INSERT INTO shortcuts (field, mode, keys, keys_text, updated_at)
		VALUES (?, COALESCE(NULLIF(?, ''), ?), ?, ?, ?)
		ON CONFLICT(field) DO UPDATE SET
			mode = CASE WHEN ? = '' THEN shortcuts.mode ELSE excluded.mode END,
			keys = excluded.keys,
			keys_text = excluded.keys_text,
			updated_at = excluded.updated_at
	`, c.Field, string(c.Mode), string(types.ModeCode), c.Shortcut.Keys, c.Shortcut.KeysText, ts, string(c.Mode))
	if err != nil {
		return fmt.Errorf("failed to save shortcut %q: %w", c.Field, err)
	}

	_, err = tx.Exec(`
		INSERT INTO shortcut_history (field, session_id, reason, keys, keys_text, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.Field, c.SessionID, string(c.Reason), c.Shortcut.Keys, c.Shortcut.KeysText, ts)
	if err != nil {
		return fmt.Errorf("failed to save history for %q: %w", c.Field, err)
	}
	return nil
}

// SetMode changes the capture mode of a field, creating an empty field if needed
func (m *Manager) SetMode(field string, mode types.CaptureMode) error {
	_, err := m.db.Exec(`
		INSERT INTO shortcuts (field, mode, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(field) DO UPDATE SET mode = excluded.mode
	`, field, string(mode), m.now().UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("failed to set mode for %q: %w", field, err)
	}
	return nil
}

func (m *Manager) Get(field string) (*types.ShortcutRecord, error) {
	row := m.db.QueryRow(`
		SELECT field, mode, keys, keys_text, updated_at
		FROM shortcuts WHERE field = ?
	`, field)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", field, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shortcut %q: %w", field, err)
	}
	return rec, nil
}

// List returns all stored fields ordered by name
func (m *Manager) List() ([]types.ShortcutRecord, error) {
	rows, err := m.db.Query(`
		SELECT field, mode, keys, keys_text, updated_at
		FROM shortcuts ORDER BY field
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindByKeys returns the fields whose raw keys equal keys
func (m *Manager) FindByKeys(keys string) ([]types.ShortcutRecord, error) {
	rows, err := m.db.Query(`
		SELECT field, mode, keys, keys_text, updated_at
		FROM shortcuts WHERE keys = ? AND keys != '' ORDER BY field
	`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to match shortcut: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// History returns the commits of a field, newest first. limit <= 0 returns all.
func (m *Manager) History(field string, limit int) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, field, session_id, reason, keys, keys_text, timestamp
		FROM shortcut_history
		WHERE field = ?
		ORDER BY id DESC
	`
	args := []any{field}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var entry types.HistoryEntry
		var reason, timestamp string
		if err := rows.Scan(
			&entry.ID,
			&entry.Field,
			&entry.SessionID,
			&reason,
			&entry.Shortcut.Keys,
			&entry.Shortcut.KeysText,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.Reason = types.CommitReason(reason)
		entry.Timestamp = parseTimestamp(timestamp)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Delete removes a field and its history
func (m *Manager) Delete(field string) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM shortcuts WHERE field = ?", field)
	if err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", field, ErrNotFound)
	}

	if _, err := tx.Exec("DELETE FROM shortcut_history WHERE field = ?", field); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}

	return tx.Commit()
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM shortcuts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get shortcut count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*types.ShortcutRecord, error) {
	var rec types.ShortcutRecord
	var mode, updatedAt string
	if err := row.Scan(&rec.Field, &mode, &rec.Shortcut.Keys, &rec.Shortcut.KeysText, &updatedAt); err != nil {
		return nil, err
	}
	rec.Mode = types.CaptureMode(mode)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]types.ShortcutRecord, error) {
	var records []types.ShortcutRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shortcut: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(timestampLayout, value)
	if err != nil {
		// Rows written by sqlite defaults
		parsed, err = time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
		if err != nil {
			return time.Time{}
		}
	}
	return parsed
}
