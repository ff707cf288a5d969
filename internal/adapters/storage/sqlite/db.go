package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // driver sqlite en Go puro
)

// MemoryPath abre una base efímera (tests, demos).
const MemoryPath = ":memory:"

// Open abre (o crea) el archivo sqlite y aplica el schema.
// Una sola conexión: sqlite serializa las escrituras igual, y ":memory:" vive por conexión.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "found-pets.db"
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS pets (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	species    TEXT NOT NULL DEFAULT '',
	address    TEXT NOT NULL DEFAULT '',
	found_on   TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create pets table: %w", err)
	}
	return nil
}
