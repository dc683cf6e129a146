package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Event kinds recorded per save/autosave decision.
const (
	EventBackupForced      = "BACKUP_FORCED"
	EventBackupRelocated   = "BACKUP_RELOCATED"
	EventAutosaveRelocated = "AUTOSAVE_RELOCATED"
	EventAutosaveOnKill    = "AUTOSAVE_ON_KILL"
)

// Journal is an append-only record of relocation and throttle decisions.
// It exists for inspection ('saveguard history'); no policy decision ever
// reads it back, so losing or clearing it changes nothing about behavior.
type Journal struct {
	db *sql.DB
}

type Entry struct {
	ID         int64
	Path       string
	Event      string
	Detail     string
	RecordedAt time.Time
}

func Open(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal at %s: %w", dbPath, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS save_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		event TEXT NOT NULL,
		detail TEXT,
		recorded_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_save_log_path ON save_log(file_path);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one event. Best effort: journal write failures are logged,
// never propagated, since observability must not interfere with a save.
func (j *Journal) Record(path, event, detail string) {
	_, err := j.db.Exec(
		"INSERT INTO save_log (file_path, event, detail, recorded_at) VALUES (?, ?, ?, ?)",
		path, event, detail, time.Now(),
	)
	if err != nil {
		log.Printf("[journal] write failed: %v", err)
	}
}

// Entries returns the most recent events, newest first, optionally filtered
// to a single file path. limit <= 0 means no limit.
func (j *Journal) Entries(path string, limit int) ([]Entry, error) {
	query := "SELECT id, file_path, event, detail, recorded_at FROM save_log"
	args := []any{}
	if path != "" {
		query += " WHERE file_path = ?"
		args = append(args, path)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal read failed: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.Path, &e.Event, &detail, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("journal read failed: %w", err)
		}
		e.Detail = detail.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset clears history for one path, or everything when path is empty.
func (j *Journal) Reset(path string) error {
	var err error
	if path != "" {
		_, err = j.db.Exec("DELETE FROM save_log WHERE file_path = ?", path)
	} else {
		_, err = j.db.Exec("DELETE FROM save_log")
	}
	if err != nil {
		return fmt.Errorf("failed to reset journal: %w", err)
	}
	return nil
}
