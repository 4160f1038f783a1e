package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var _ domain.Database = (*DB)(nil)

// DB wraps a SQLite connection and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %q: %w", pragma, err)
		}
	}

	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Slides() domain.SlideRepository     { return NewSlideRepository(d) }
func (d *DB) Articles() domain.ArticleRepository { return NewArticleRepository(d) }
func (d *DB) Users() domain.UserRepository       { return NewUserRepository(d) }

// constraintError translates SQLite constraint failures into domain errors.
// The driver reports them as "UNIQUE constraint failed: table.column".
func constraintError(err error, unique map[string]error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		for column, mapped := range unique {
			if strings.Contains(msg, column) {
				return mapped
			}
		}
	}
	if strings.Contains(msg, "CHECK constraint failed") {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return nil
}
