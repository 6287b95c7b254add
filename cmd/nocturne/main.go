package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/cli/backups"
	"github.com/julianstephens/nocturne/internal/cli/dashboards"
	"github.com/julianstephens/nocturne/internal/cli/goals"
	"github.com/julianstephens/nocturne/internal/cli/habits"
	"github.com/julianstephens/nocturne/internal/cli/jobs"
	"github.com/julianstephens/nocturne/internal/cli/journals"
	"github.com/julianstephens/nocturne/internal/cli/system"
	"github.com/julianstephens/nocturne/internal/config"
	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/storage/rediscache"
	"github.com/julianstephens/nocturne/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `name:"db" help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, NOCTURNE_DB_CONNECTION or .pgpass."`
	Config   string `help:"Config file path." default:"${config_file}"`
	EnvFile  string `name:"env-file" help:"Optional .env file." default:".env"`
	Timezone string `help:"IANA timezone that decides the current day."`
	LogLevel string `name:"log-level" help:"debug, info, warn or error."`
	Debug    bool   `help:"Log to stderr at debug level."`
	Redis    string `name:"redis" help:"Redis address for sharing dashboard snapshots."`

	Init      system.InitCmd    `cmd:"" help:"Initialize nocturne storage."`
	Migrate   system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Dashboard struct {
		Show  dashboards.ShowCmd  `cmd:"" help:"Show the dashboard snapshot." default:"withargs"`
		Prune dashboards.PruneCmd `cmd:"" help:"Delete old dashboard snapshots."`
	} `cmd:"" help:"Cross-domain dashboard."`
	Habit   habits.HabitCmd     `cmd:"" help:"Manage habits and habit logs."`
	Journal journals.JournalCmd `cmd:"" help:"Manage journal pages."`
	Goal    goals.GoalCmd       `cmd:"" help:"Manage goals."`
	Job     jobs.JobCmd         `cmd:"" help:"Manage job applications."`
	Backup  struct {
		Create backups.BackupCreateCmd `cmd:"" help:"Create a manual backup." default:"1"`
		List   backups.BackupListCmd   `cmd:"" help:"List available backups."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Cross-domain life tracking: journal, habits, goals and job search"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": config.DefaultFile,
		},
	)

	os.Exit(run(kctx))
}

// run executes the parsed command and returns the exit code. Errors are
// reported here rather than by exiting so deferred cleanup runs.
func run(kctx *kong.Context) int {
	cfg, err := config.Load(CLI.Config, CLI.EnvFile)
	if err != nil {
		return fail(err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fail(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Level: cfg.LogLevel, ConfigDir: cfg.Dir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return fail(errors.Validation("invalid timezone %q", cfg.Timezone))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := kctx.Command()
	appCtx := &cli.Context{
		Config:   cfg,
		Location: loc,
		Ctx:      ctx,
	}

	var source cli.Source
	if !strings.HasPrefix(command, "keyring") {
		source = cli.ResolveSource(CLI.DB, cfg)
		store, err := source.Open()
		if err != nil {
			return fail(err)
		}
		defer store.Close()
		appCtx.Store = store

		// Init handles its own loading.
		if command != "init" {
			if err := store.Load(); err != nil {
				return fail(err)
			}
			if command != "migrate" && command != "doctor" {
				if err := appCtx.EnsureSchema(ctx); err != nil {
					return fail(err)
				}
			}
		}
	}

	if cfg.RedisAddr != "" && appCtx.Store != nil {
		mirror, err := rediscache.Connect(ctx, rediscache.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: rediscache.Namespace(source.ID(), loc.String()),
		})
		if err != nil {
			logger.Warn("Redis unavailable, dashboard snapshots will not be shared", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer mirror.Close()
			appCtx.Mirror = mirror
		}
	}

	if err := kctx.Run(appCtx); err != nil {
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	return errors.Report(os.Stderr, err)
}

// applyFlags lets explicit command-line flags override every other source.
func applyFlags(cfg *config.Config) {
	if CLI.DB != "" {
		cfg.DatabasePath = config.ExpandHome(CLI.DB)
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Redis != "" {
		cfg.RedisAddr = CLI.Redis
	}
}
