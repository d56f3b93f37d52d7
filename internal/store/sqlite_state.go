package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dayplan/internal/model"

	_ "modernc.org/sqlite"
)

// LoadSQLite loads the planner state from the workspace SQLite db.
// If the SQLite state is empty but a legacy db.json exists, it imports
// db.json into SQLite once and then loads from SQLite.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			legacy, err := decodeDB(b)
			if err != nil {
				return nil, err
			}
			if err := s.SaveSQLite(ctx, legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", fmt.Sprintf("%d", st.Version)); err != nil {
		return err
	}

	// Replace-all strategy: each list row carries its full task tree as a
	// JSON blob. Simple and safe for a single local writer.
	if _, err := tx.ExecContext(ctx, `DELETE FROM lists`); err != nil {
		return err
	}

	nowMs := time.Now().UTC().UnixMilli()
	for i, l := range st.Lists {
		raw, err := json.Marshal(l)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO lists(id, name, pos, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			l.ID, l.Name, i, string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a TUI and a CLI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pos INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lists`).Scan(&n); err != nil {
		// If tables don't exist yet, treat as empty.
		return false, nil
	}
	return n > 0, nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1}

	var v string
	_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "version").Scan(&v)
	if v = strings.TrimSpace(v); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}

	rows, err := db.QueryContext(ctx, `SELECT json FROM lists ORDER BY pos ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var l model.TaskList
		if err := json.Unmarshal([]byte(js), &l); err != nil {
			return nil, err
		}
		out.Lists = append(out.Lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
