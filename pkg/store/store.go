// Package store persists project documents to a local SQLite database.
// One row per project, keyed by name, holding the serialized snapshot.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vellumhq/vellum/pkg/idgen"
	"github.com/vellumhq/vellum/pkg/scene"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT NOT NULL UNIQUE,
	name       TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`

// ErrNotFound is returned by Load when no project has the given name.
var ErrNotFound = errors.New("store: project not found")

// ProjectInfo is a listing entry. ID is stamped on first save and stays
// stable across renames and re-saves.
type ProjectInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store wraps the SQLite handle.
type Store struct {
	db    *sql.DB
	newID idgen.Generator
}

// Open opens (or creates) the project database at path with WAL and the
// usual local-db pragmas applied. ":memory:" opens an in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if path == ":memory:" {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{db: db, newID: idgen.UUIDv7()}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save upserts a project snapshot under its name. A new project gets a
// UUIDv7 id; re-saving keeps the existing one.
func (s *Store) Save(ctx context.Context, name string, snap *scene.Snapshot) error {
	if name == "" {
		return fmt.Errorf("store: empty project name")
	}
	data, err := scene.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("store: encode %q: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, data, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.newID(), name, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: save %q: %w", name, err)
	}
	return nil
}

// Load reads a project snapshot by name.
func (s *Store) Load(ctx context.Context, name string) (*scene.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM projects WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: load %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", name, err)
	}
	snap, err := scene.UnmarshalSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode %q: %w", name, err)
	}
	return snap, nil
}

// Delete removes a project. Deleting a missing project is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE name = ?`, name); err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	return nil
}

// List returns all saved projects, most recently updated first.
func (s *Store) List(ctx context.Context) ([]ProjectInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, updated_at FROM projects ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []ProjectInfo
	for rows.Next() {
		var info ProjectInfo
		var ts string
		if err := rows.Scan(&info.ID, &info.Name, &ts); err != nil {
			return nil, fmt.Errorf("store: list scan: %w", err)
		}
		if info.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("store: list timestamp %q: %w", ts, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
