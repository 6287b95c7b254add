package cli

import (
	"path/filepath"

	"github.com/julianstephens/nocturne/internal/config"
	"github.com/julianstephens/nocturne/internal/keyring"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/storage/postgres"
	"github.com/julianstephens/nocturne/internal/storage/sqlite"
)

// Source is the database a command runs against.
type Source struct {
	// Conn is a SQLite path or a PostgreSQL connection string.
	Conn string
	// secret is set when Conn came from the keyring or environment and may
	// carry a password.
	secret bool
}

// ResolveSource picks the database. An explicit --db value wins, then a
// connection string from NOCTURNE_DB_CONNECTION or the OS keyring, then the
// configured database path. Only the keyring and environment may supply a
// password.
func ResolveSource(dbFlag string, cfg *config.Config) Source {
	if dbFlag != "" {
		return Source{Conn: dbFlag}
	}

	connStr, ok, err := keyring.ResolveConnectionString()
	if err != nil {
		logger.Debug("Keyring lookup failed, using configured database", "error", err)
	}
	if ok {
		return Source{Conn: connStr, secret: true}
	}
	return Source{Conn: cfg.DatabasePath}
}

// Open builds the storage provider for s.
func (s Source) Open() (storage.Provider, error) {
	if s.secret {
		return postgres.NewFromSecret(s.Conn)
	}
	if config.IsPostgresConn(s.Conn) {
		return postgres.New(s.Conn)
	}
	return sqlite.NewStore(config.ExpandHome(s.Conn)), nil
}

// ID identifies the database across processes. SQLite paths are made
// absolute so the same file gives the same ID from any directory.
func (s Source) ID() string {
	if s.secret || config.IsPostgresConn(s.Conn) {
		return s.Conn
	}
	path := config.ExpandHome(s.Conn)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "sqlite:" + path
}

// OpenStore resolves and opens the database in one step.
func OpenStore(dbFlag string, cfg *config.Config) (storage.Provider, error) {
	return ResolveSource(dbFlag, cfg).Open()
}
