package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/migration"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/migrations"
)

// DriverName identifies this backend in snapshot data-source versions.
const DriverName = "sqlite"

var _ storage.Provider = (*Store)(nil)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) dsn() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		s.path, constants.SQLiteBusyTimeoutMs)
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return errors.Database("sqlite.open", err)
	}
	db.SetMaxOpenConns(constants.SQLiteMaxOpenConns)
	s.db = db
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Io("create config directory", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	_, err := s.Migrate(context.Background(), func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return errors.NotFound("storage not initialized, run 'nocturne init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion(context.Background())
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := migrations.SQLite()
	if err != nil {
		return nil, errors.Migration("access sqlite migrations", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectSQLite), nil
}

// MigrationStatus reports the schema version and pending migrations.
func (s *Store) MigrationStatus(ctx context.Context) (migration.Status, error) {
	runner, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return runner.Status(ctx)
}

// Migrate applies pending migrations, reporting progress through logFn.
func (s *Store) Migrate(ctx context.Context, logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(ctx, logFn)
}

// DataVersion reports "sqlite:<schema version>".
func (s *Store) DataVersion(ctx context.Context) (string, error) {
	runner, err := s.runner()
	if err != nil {
		return "", err
	}
	version, err := runner.CurrentVersion(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", DriverName, version), nil
}

// TableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func (s *Store) TableExists(ctx context.Context, tableName string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, errors.Database("sqlite.TableExists", err)
	}
	return count > 0, nil
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Database(op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return errors.Database(op, err)
	}
	return errors.Database(op, tx.Commit())
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
