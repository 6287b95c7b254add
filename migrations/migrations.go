// Package migrations embeds the versioned schema files for each supported driver.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the migration files for the SQLite store.
func SQLite() (fs.FS, error) {
	return fs.Sub(FS, "sqlite")
}

// Postgres returns the migration files for the PostgreSQL store.
func Postgres() (fs.FS, error) {
	return fs.Sub(FS, "postgres")
}
