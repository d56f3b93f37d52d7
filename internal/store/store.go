package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dayplan/internal/model"
)

const (
	dbFileName     = "db.json"
	sqliteFileName = "state.sqlite"
)

// DB is the full planner state: every list with its task tree.
// It is a plain value; concurrency discipline lives in Shared.
type DB struct {
	Version int              `json:"version"`
	Lists   []model.TaskList `json:"lists"`
}

type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".dayplan")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".dayplan"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

// Load reads the planner state. SQLite is the source of truth; a legacy
// db.json is imported once when the SQLite state is still empty.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// LoadJSON reads a full snapshot from a db.json file. Used for the
// one-time import and by tests; normal loads go through SQLite.
func (s Store) LoadJSON() (*DB, error) {
	b, err := os.ReadFile(s.dbPath())
	if err != nil {
		return nil, err
	}
	db, err := decodeDB(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dbFileName, err)
	}
	return db, nil
}

// SaveJSON writes a full snapshot to db.json. Export/backup path only.
func (s Store) SaveJSON(db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	tmp := s.dbPath() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.dbPath())
}

func decodeDB(b []byte) (*DB, error) {
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	return &db, nil
}

// Clone returns a deep copy of the state, suitable as a read-only
// snapshot for exporters. Entities are plain data, so a JSON round trip
// copies everything faithfully (the round-trip property exporters rely on).
func (db *DB) Clone() (*DB, error) {
	b, err := json.Marshal(db)
	if err != nil {
		return nil, err
	}
	var out DB
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
