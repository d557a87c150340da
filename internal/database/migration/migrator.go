package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Run applies all pending goose migrations from the embedded filesystem.
// goose keeps its own version table and locks, so concurrent starters are
// safe against each other.
func Run(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	if db == nil {
		return errors.New("nil db")
	}

	prov, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	if _, err := prov.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Version reports the currently applied migration version.
func Version(ctx context.Context, db *sql.DB, fsys fs.FS) (int64, error) {
	prov, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("create migration provider: %w", err)
	}
	v, err := prov.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return v, nil
}
