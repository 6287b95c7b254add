package constants

import "time"

const (
	AppName            = "nocturne"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/nocturne/nocturne.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variable prefix for configuration overrides
	EnvPrefix = "NOCTURNE_"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "nocturne-"
	BackupFileSuffix = ".db"

	// Dashboard constants
	SnapshotSchemaVersion   = 1
	SnapshotValidity        = time.Hour
	DefaultSnapshotKeep     = 30
	JobStallWindow          = 14 * 24 * time.Hour
	DashboardCacheKey       = "nocturne:dashboard:latest"
	DashboardRefreshLock    = "nocturne:dashboard:refresh"
	DashboardRefreshLockTTL = 30 * time.Second

	// SQLite connection settings
	SQLiteMaxOpenConns  = 5
	SQLiteBusyTimeoutMs = 5000

	// Postgres connection settings
	PostgresMaxOpenConns = 25

	// Journal constants
	MinJournalYear        = 2026
	EmptyJournalContent   = `[{"type":"paragraph","content":[]}]`
	ReflectionTitlePrefix = "Reflection: "

	// Slug suffix length taken from a random UUID
	SlugSuffixLen = 8
)
