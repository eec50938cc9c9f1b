package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/server/migrations"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/entries"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories for local runs.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := migrations.SQLite()
	if err != nil {
		return err
	}
	return gooseUp(ctx, goose.DialectSQLite3, db, fsys)
}
