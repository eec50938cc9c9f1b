// Package migrations embeds the goose schema migrations for each supported
// database dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Postgres returns the PostgreSQL migration set.
func Postgres() (fs.FS, error) {
	return fs.Sub(Migrations, "postgres")
}

// SQLite returns the SQLite migration set.
func SQLite() (fs.FS, error) {
	return fs.Sub(Migrations, "sqlite")
}
