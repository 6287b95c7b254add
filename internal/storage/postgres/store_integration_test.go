package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nocturne/internal/models"
)

// setupTestStore initializes a store against NOCTURNE_TEST_POSTGRES. The
// connection string must not embed a password; use PGPASSWORD instead.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	connStr := os.Getenv("NOCTURNE_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("NOCTURNE_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store, err := New(connStr)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	t.Cleanup(func() {
		store.db.Exec("DROP SCHEMA IF EXISTS nocturne CASCADE")
		store.Close()
	})
	return store
}

func TestPostgresDataVersion(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.DataVersion(context.Background())
	if err != nil {
		t.Fatalf("DataVersion() error: %v", err)
	}
	if !strings.HasPrefix(version, "postgres:") {
		t.Errorf("DataVersion() = %q, want postgres prefix", version)
	}
}

func TestPostgresHabitsAndSnapshots(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2027, 3, 10, 9, 0, 0, 0, time.UTC)

	habit := models.Habit{
		ID: "h1", Name: "Read", Type: models.HabitTypeBoolean, Visibility: models.VisibilityActive,
		ScheduleType: "daily", CreatedAt: now, UpdatedAt: now,
	}
	if err := store.AddHabit(ctx, habit); err != nil {
		t.Fatalf("AddHabit() error: %v", err)
	}

	log := models.HabitLog{
		ID: "l1", HabitID: "h1", LogDate: "2027-03-10", Status: models.LogPartial,
		LoggedAt: now, CreatedAt: now, UpdatedAt: now,
	}
	if _, err := store.UpsertHabitLog(ctx, log); err != nil {
		t.Fatalf("UpsertHabitLog() error: %v", err)
	}
	log.ID = "l2"
	log.Status = models.LogCompleted
	stored, err := store.UpsertHabitLog(ctx, log)
	if err != nil {
		t.Fatalf("UpsertHabitLog() error: %v", err)
	}
	if stored.ID != "l1" || stored.Status != models.LogCompleted {
		t.Errorf("UpsertHabitLog() = %s/%s, want l1/completed", stored.ID, stored.Status)
	}

	counts, err := store.HabitCounts(ctx, "2027-03-10")
	if err != nil {
		t.Fatalf("HabitCounts() error: %v", err)
	}
	if counts != (models.HabitCounts{Total: 1, Active: 1, CompletedToday: 1}) {
		t.Errorf("HabitCounts() = %+v", counts)
	}

	snap := models.Snapshot{
		ID: "s1", Date: "2027-03-10", Timezone: "UTC", SchemaVersion: 1,
		ProductivityScore: models.Pending(), PipelineVelocity: models.Computed(0),
		Health: models.HealthExcellent, GeneratedAt: now.Unix(), ValidUntil: now.Unix() + 3600,
		DataSourceVersion: "postgres:1",
	}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	got, ok, err := store.LatestSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("LatestSnapshot() = %v, %v", ok, err)
	}
	if got != snap {
		t.Errorf("LatestSnapshot() = %+v\nwant %+v", got, snap)
	}

	pruned, err := store.PruneSnapshots(ctx, now.Unix()+10_000)
	if err != nil {
		t.Fatalf("PruneSnapshots() error: %v", err)
	}
	if pruned != 0 {
		t.Errorf("PruneSnapshots() removed %d, want the latest kept", pruned)
	}
}

func TestPostgresScaffoldBatchSkipsTakenDates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	entry := func(id, day string) models.JournalEntry {
		return models.JournalEntry{
			ID: id, EntryDate: day, Title: "Reflection: " + day, Content: "[]",
			Year: 2027, Month: 1, IsPrimary: true, CreatedAt: now, UpdatedAt: now,
		}
	}

	n, err := store.AddJournalEntries(ctx, []models.JournalEntry{entry("a", "2027-01-01"), entry("b", "2027-01-02")})
	if err != nil || n != 2 {
		t.Fatalf("AddJournalEntries() = %d, %v; want 2", n, err)
	}
	n, err = store.AddJournalEntries(ctx, []models.JournalEntry{entry("c", "2027-01-02"), entry("d", "2027-01-03")})
	if err != nil || n != 1 {
		t.Fatalf("AddJournalEntries() = %d, %v; want 1", n, err)
	}
}
