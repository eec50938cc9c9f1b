// Package repomanager wires repository constructors and goose migrations
// for each supported database.
package repomanager

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/entries"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseUp is a seam for testing migrations without a database.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// PostgresRepositoryManager vends PostgreSQL-backed repositories.
type PostgresRepositoryManager struct{}

// Entries returns an entries.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

// RunMigrations applies the embedded PostgreSQL migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := migrations.Postgres()
	if err != nil {
		return err
	}
	return gooseUp(ctx, goose.DialectPostgres, db, fsys)
}
