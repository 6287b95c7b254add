package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/migration"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/migrations"
)

// DriverName identifies this backend in snapshot data-source versions.
const DriverName = "postgres"

var _ storage.Provider = (*Store)(nil)

type Store struct {
	connStr string
	db      *sql.DB
}

// New validates connStr and returns a store bound to the application schema.
// Connection strings passed on the command line must not carry a password.
func New(connStr string) (*Store, error) {
	if err := ValidateConnString(connStr); err != nil {
		return nil, err
	}
	return newStore(connStr)
}

// NewFromSecret is New for connection strings read from the OS keyring or the
// environment, which may embed a password.
func NewFromSecret(connStr string) (*Store, error) {
	if err := ValidateConnString(connStr); err != nil && !stderrors.Is(err, ErrEmbeddedCredentials) {
		return nil, err
	}
	return newStore(connStr)
}

func newStore(connStr string) (*Store, error) {
	pinned, err := withSearchPath(connStr)
	if err != nil {
		return nil, errors.Validation("%v", err)
	}
	return &Store{connStr: pinned}, nil
}

func (s *Store) open(ctx context.Context) error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return errors.Database("postgres.open", err)
	}

	db.SetMaxOpenConns(constants.PostgresMaxOpenConns)
	db.SetMaxIdleConns(constants.PostgresMaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return errors.Database("postgres.connect", fmt.Errorf("%w (hint: try adding ?sslmode=disable to your connection string)", err))
		}
		return errors.Database("postgres.connect", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	ctx := context.Background()
	if err := s.open(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		return errors.Database("postgres.createSchema", err)
	}

	_, err := s.Migrate(ctx, func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	ctx := context.Background()
	if err := s.open(ctx); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion(ctx)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := migrations.Postgres()
	if err != nil {
		return nil, errors.Migration("access postgres migrations", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres), nil
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

// DataVersion reports "postgres:<schema version>".
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

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Database("postgres.RowsAffected", err)
	}
	if n == 0 {
		return errors.NotFound("%s %s", kind, id)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}
