package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/mbalaz/dennyzen/internal/models"
)

// schemaVersion is stamped into PRAGMA user_version on init. The store is a
// small per-day cache, so the schema lives inline rather than in external
// migration files.
const schemaVersion = 1

const schemaDDL = `
CREATE TABLE IF NOT EXISTS markers (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS day_states (
	day       TEXT PRIMARY KEY,
	current   TEXT,
	remaining TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	id         TEXT PRIMARY KEY,
	day        TEXT NOT NULL,
	motto      TEXT NOT NULL,
	thought    TEXT NOT NULL,
	motivation TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_day ON history(day);
`

const (
	markerLastVisit    = "last_visit_date"
	markerLastNotified = "last_notified_date"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dennyzen init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", version, schemaVersion)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetDB returns the underlying database handle for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) GetDayState(day string) (models.DayState, error) {
	if s.db == nil {
		return models.DayState{}, fmt.Errorf("storage not loaded")
	}

	var current sql.NullString
	var remaining string
	err := s.db.QueryRow("SELECT current, remaining FROM day_states WHERE day = ?", day).Scan(&current, &remaining)
	if err == sql.ErrNoRows {
		return models.DayState{}, fmt.Errorf("%w: %s", ErrNoDayState, day)
	}
	if err != nil {
		return models.DayState{}, fmt.Errorf("failed to read day state: %w", err)
	}

	state := models.DayState{Remaining: []models.Item{}}
	if current.Valid && current.String != "" {
		var item models.Item
		if err := json.Unmarshal([]byte(current.String), &item); err != nil {
			return models.DayState{}, fmt.Errorf("failed to parse current item: %w", err)
		}
		state.Current = &item
	}
	if err := json.Unmarshal([]byte(remaining), &state.Remaining); err != nil {
		return models.DayState{}, fmt.Errorf("failed to parse remaining queue: %w", err)
	}

	return state, nil
}

func (s *SQLiteStore) SaveDayState(day string, state models.DayState) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if !state.Valid() {
		return ErrInvalidDayState
	}

	var current any
	if state.Current != nil {
		data, err := json.Marshal(state.Current)
		if err != nil {
			return fmt.Errorf("failed to serialize current item: %w", err)
		}
		current = string(data)
	}

	remaining := state.Remaining
	if remaining == nil {
		remaining = []models.Item{}
	}
	remainingData, err := json.Marshal(remaining)
	if err != nil {
		return fmt.Errorf("failed to serialize remaining queue: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO day_states (day, current, remaining) VALUES (?, ?, ?) ON CONFLICT(day) DO UPDATE SET current = excluded.current, remaining = excluded.remaining",
		day, current, string(remainingData),
	)
	if err != nil {
		return fmt.Errorf("failed to save day state: %w", err)
	}

	return nil
}

func (s *SQLiteStore) PruneBefore(day string) (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	// Date keys are YYYY-MM-DD, so string comparison is chronological.
	res, err := s.db.Exec("DELETE FROM day_states WHERE day < ?", day)
	if err != nil {
		return 0, fmt.Errorf("failed to prune day states: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(removed), nil
}

func (s *SQLiteStore) getMarker(key string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM markers WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read marker %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) setMarker(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(
		"INSERT INTO markers (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set marker %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetLastVisit() (string, error) {
	return s.getMarker(markerLastVisit)
}

func (s *SQLiteStore) SetLastVisit(day string) error {
	return s.setMarker(markerLastVisit, day)
}

func (s *SQLiteStore) GetLastNotified() (string, error) {
	return s.getMarker(markerLastNotified)
}

func (s *SQLiteStore) SetLastNotified(day string) error {
	return s.setMarker(markerLastNotified, day)
}

func (s *SQLiteStore) AddHistoryEntry(entry models.HistoryEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(
		"INSERT INTO history (id, day, motto, thought, motivation) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.Day, entry.Item.Motto, entry.Item.Thought, entry.Item.Motivation,
	)
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetHistory(limit int) ([]models.HistoryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	query := "SELECT id, day, motto, thought, motivation FROM history ORDER BY day DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Day, &entry.Item.Motto, &entry.Item.Thought, &entry.Item.Motivation); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
