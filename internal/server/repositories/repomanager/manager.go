package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/scpcatalog/internal/dbx"
	"github.com/dmitrijs2005/scpcatalog/internal/server/repositories/entries"
)

// RepositoryManager vends repositories bound to a DBTX and migrates the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Entries(db dbx.DBTX) entries.Repository
}

// New returns the manager for a database driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case dbx.DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
