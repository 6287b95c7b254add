package storage

import (
	"context"

	"github.com/julianstephens/nocturne/internal/models"
)

// JournalSource is the journal slice of the domain data source.
type JournalSource interface {
	// JournalDay counts the non-deleted entries dated day and sums their words.
	JournalDay(ctx context.Context, day string) (models.JournalDay, error)
	// PrimaryEntryDates returns the dates in [from, to] that already have a
	// primary page, deleted or not.
	PrimaryEntryDates(ctx context.Context, from, to string) ([]string, error)
	// AddJournalEntries inserts entries in one transaction, skipping primary
	// pages whose date is already taken, and returns how many were inserted.
	AddJournalEntries(ctx context.Context, entries []models.JournalEntry) (int, error)
	AddJournalEntry(ctx context.Context, entry models.JournalEntry) error
	GetJournalEntry(ctx context.Context, id string) (models.JournalEntry, error)
	ListPrimaryEntries(ctx context.Context, limit int) ([]models.JournalEntry, error)
	ListSubPages(ctx context.Context, parentID string) ([]models.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, entry models.JournalEntry) error
}

// HabitSource is the habit slice of the domain data source.
type HabitSource interface {
	HabitCounts(ctx context.Context, day string) (models.HabitCounts, error)
	AddHabit(ctx context.Context, habit models.Habit) error
	GetHabit(ctx context.Context, id string) (models.Habit, error)
	ListHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error)
	// UpsertHabitLog writes the log for (HabitID, LogDate), replacing any
	// existing one while keeping its id and created_at, and returns the row.
	UpsertHabitLog(ctx context.Context, log models.HabitLog) (models.HabitLog, error)
	GetHabitLog(ctx context.Context, habitID, day string) (models.HabitLog, error)
	// HabitLogs returns the logs of a habit in [start, end], oldest first.
	HabitLogs(ctx context.Context, habitID, start, end string) ([]models.HabitLog, error)
}

// GoalSource is the goal slice of the domain data source.
type GoalSource interface {
	// GoalCounts aggregates active goals; goals with a target date before
	// today that are not completed count as at risk.
	GoalCounts(ctx context.Context, today string) (models.GoalCounts, error)
	AddGoal(ctx context.Context, goal models.Goal) error
	GetGoal(ctx context.Context, id string) (models.Goal, error)
	ListActiveGoals(ctx context.Context) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal models.Goal) error
}

// JobSource is the job-application slice of the domain data source.
type JobSource interface {
	// JobCounts aggregates active applications; RecentlyUpdated counts those
	// updated at or after since (RFC3339).
	JobCounts(ctx context.Context, since string) (models.JobCounts, error)
	AddJob(ctx context.Context, job models.JobApplication) error
	GetJob(ctx context.Context, id string) (models.JobApplication, error)
	ListActiveJobs(ctx context.Context) ([]models.JobApplication, error)
	UpdateJob(ctx context.Context, job models.JobApplication) error
}

// SnapshotStore persists dashboard snapshots. Rows are append-only.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error
	// LatestSnapshot returns the snapshot with the greatest generation time.
	// The boolean is false when none exists.
	LatestSnapshot(ctx context.Context) (models.Snapshot, bool, error)
	ListSnapshots(ctx context.Context, limit int) ([]models.Snapshot, error)
	// PruneSnapshots deletes snapshots generated before the cutoff (epoch
	// seconds), never the latest one, and returns how many were removed.
	PruneSnapshots(ctx context.Context, before int64) (int64, error)
}

// Versioner reports which backend and schema version produced the data.
type Versioner interface {
	DataVersion(ctx context.Context) (string, error)
}

// Provider is a complete storage backend.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	JournalSource
	HabitSource
	GoalSource
	JobSource
	SnapshotStore
	Versioner

	// Utils
	GetConfigPath() string
}
