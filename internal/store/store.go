package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dayflow/internal/model"
	_ "modernc.org/sqlite"
)

const (
	tasksKey       = "tasks"
	preferencesKey = "taskPreferences"
)

// Store persists the task collection and preferences as JSON blobs in a
// key/value table, one key per record. Reads and writes always cover the
// whole collection; two overlapping read-modify-write sequences resolve
// as last-write-wins on the entire blob.
type Store struct {
	db *sql.DB
}

func defaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "dayflow")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "dayflow.db"), nil
}

// Open opens (or creates) the database and ensures the schema exists.
// An empty path selects the XDG default location.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("determine db path: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// get decodes the value stored under key into out; a missing key
// leaves out untouched.
func (s *Store) get(key string, out any) error {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Tasks returns the full stored collection, empty if nothing has been
// written yet. Legacy bare-string subtasks are coerced to the structured
// shape during decoding, so callers only ever see one shape.
func (s *Store) Tasks() ([]model.Task, error) {
	var tasks []model.Task
	if err := s.get(tasksKey, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Subtasks = model.NormalizeSubtasks(tasks[i].Subtasks)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// SetTasks replaces the whole stored collection.
func (s *Store) SetTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return s.set(tasksKey, tasks)
}

// Preferences returns the stored task-type preference map, empty if unset.
func (s *Store) Preferences() (model.Preferences, error) {
	prefs := model.Preferences{}
	if err := s.get(preferencesKey, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SetPreferences replaces the stored preference map.
func (s *Store) SetPreferences(prefs model.Preferences) error {
	if prefs == nil {
		prefs = model.Preferences{}
	}
	return s.set(preferencesKey, prefs)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
