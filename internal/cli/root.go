package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/julianstephens/nocturne/internal/backup"
	"github.com/julianstephens/nocturne/internal/config"
	"github.com/julianstephens/nocturne/internal/dashboard"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/goals"
	"github.com/julianstephens/nocturne/internal/habits"
	"github.com/julianstephens/nocturne/internal/jobs"
	"github.com/julianstephens/nocturne/internal/journal"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/migration"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/storage/sqlite"
	"github.com/julianstephens/nocturne/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	Config   *config.Config
	Location *time.Location

	// Mirror is nil unless a redis address is configured and reachable.
	Mirror dashboard.Mirror

	// Ctx is cancelled on interrupt. Out defaults to stdout and Clock to
	// time.Now.
	Ctx   context.Context
	Out   io.Writer
	Clock func() time.Time
}

// Migrator is implemented by both storage backends.
type Migrator interface {
	MigrationStatus(ctx context.Context) (migration.Status, error)
	Migrate(ctx context.Context, logFn func(string)) (int, error)
}

func (c *Context) RunContext() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Loc is the configured timezone, time.Local when unset.
func (c *Context) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Context) clock() func() time.Time {
	if c.Clock == nil {
		return time.Now
	}
	return c.Clock
}

func (c *Context) Now() time.Time {
	return c.clock()()
}

// Today is the current date in the configured timezone.
func (c *Context) Today() string {
	return utils.DayOf(c.Now(), c.Loc())
}

func (c *Context) Journal() *journal.Service {
	return journal.NewService(c.Store, journal.WithLocation(c.Loc()), journal.WithClock(c.clock()))
}

func (c *Context) Scaffolder() *journal.Scaffolder {
	return journal.NewScaffolder(c.Store, journal.WithLocation(c.Loc()), journal.WithClock(c.clock()))
}

func (c *Context) Habits() *habits.Service {
	return habits.NewService(c.Store, c.Loc()).WithClock(c.clock())
}

func (c *Context) Goals() *goals.Service {
	return goals.NewService(c.Store, c.Loc()).WithClock(c.clock())
}

func (c *Context) Jobs() *jobs.Service {
	return jobs.NewService(c.Store, c.Loc()).WithClock(c.clock())
}

// Dashboard wires the aggregation engine and the snapshot cache to the store,
// sharing snapshots through the mirror when one is configured.
func (c *Context) Dashboard() *dashboard.Cache {
	opts := []dashboard.Option{
		dashboard.WithLocation(c.Loc()),
		dashboard.WithClock(c.clock()),
		dashboard.WithDataVersion(c.Store),
	}
	if c.Mirror != nil {
		opts = append(opts, dashboard.WithMirror(c.Mirror))
	}
	engine := dashboard.NewEngine(dashboard.Sources{
		Journal: c.Store,
		Habits:  c.Store,
		Goals:   c.Store,
		Jobs:    c.Store,
	}, opts...)
	return dashboard.NewCache(engine, c.Store, opts...)
}

// BackupManager returns nil for backends other than SQLite.
func (c *Context) BackupManager() *backup.Manager {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil
	}
	return backup.NewManager(c.Store.GetConfigPath())
}

// PerformAutomaticBackup backs up a SQLite database before a bulk write.
// Failures are logged and otherwise ignored.
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// EnsureSchema applies pending migrations.
func (c *Context) EnsureSchema(ctx context.Context) error {
	m, ok := c.Store.(Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus(ctx)
	if err != nil {
		return err
	}
	if len(st.Pending) == 0 {
		return nil
	}
	c.PerformAutomaticBackup(ctx)
	_, err = m.Migrate(ctx, func(msg string) { logger.Info(msg) })
	return err
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v any) error {
	enc := json.NewEncoder(c.Writer())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Internal("encode json", err)
	}
	return nil
}
