package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/rdpmanager/internal/client/migrations"
	"github.com/dmitrijs2005/rdpmanager/internal/client/repositories/categories"
	"github.com/dmitrijs2005/rdpmanager/internal/client/repositories/connections"
	"github.com/dmitrijs2005/rdpmanager/internal/client/repositories/settings"
	"github.com/dmitrijs2005/rdpmanager/internal/dbx"
	"github.com/dmitrijs2005/rdpmanager/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repositories groups the repositories sharing one DBTX.
type Repositories struct {
	Settings    settings.Repository
	Categories  categories.Repository
	Connections connections.Repository
}

// Bind returns repositories operating on db, which may be a transaction.
func Bind(db dbx.DBTX) *Repositories {
	return &Repositories{
		Settings:    settings.NewSQLiteRepository(db),
		Categories:  categories.NewSQLiteRepository(db),
		Connections: connections.NewSQLiteRepository(db),
	}
}

// Database owns the *sql.DB handle.
type Database struct {
	*Repositories
	db *sql.DB
}

// DSN builds the modernc.org/sqlite data source name for path with foreign
// keys enforced and a busy timeout.
func DSN(path string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == MemoryPath {
		return "file::memory:?" + pragmas
	}
	return "file:" + filepath.ToSlash(path) + "?" + pragmas
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Database, error) {
	if path != MemoryPath {
		if _, err := filex.EnsureDir(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Database{Repositories: Bind(db), db: db}, nil
}

// WithTx runs fn with repositories bound to one transaction. Either every
// write in fn becomes visible or none does.
func (d *Database) WithTx(ctx context.Context, fn func(ctx context.Context, r *Repositories) error) error {
	return dbx.WithTx(ctx, d.db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, Bind(tx))
	})
}

// DB exposes the underlying handle.
func (d *Database) DB() *sql.DB {
	return d.db
}

func (d *Database) Close() error {
	return d.db.Close()
}
