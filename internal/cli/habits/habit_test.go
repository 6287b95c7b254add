package habits

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "nocturne.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Location: time.UTC,
		Out:      out,
		Clock:    func() time.Time { return time.Date(2027, 3, 10, 20, 0, 0, 0, time.UTC) },
	}, out
}

func addHabit(t *testing.T, ctx *cli.Context, name string) models.Habit {
	t.Helper()
	if err := (&HabitAddCmd{Name: name, Type: "boolean", Schedule: "daily"}).Run(ctx); err != nil {
		t.Fatalf("HabitAddCmd.Run(%s) error: %v", name, err)
	}
	habits, err := ctx.Habits().List(ctx.RunContext(), false)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for _, h := range habits {
		if h.Name == name {
			return h
		}
	}
	t.Fatalf("habit %s not stored", name)
	return models.Habit{}
}

func TestHabitTodayAndLog(t *testing.T) {
	ctx, out := setupTestContext(t)
	read := addHabit(t, ctx, "Read")
	addHabit(t, ctx, "Stretch")
	out.Reset()

	if err := (&HabitLogCmd{HabitID: read.ID, Status: "completed"}).Run(ctx); err != nil {
		t.Fatalf("HabitLogCmd.Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "Logged completed for 2027-03-10") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&HabitTodayCmd{}).Run(ctx); err != nil {
		t.Fatalf("HabitTodayCmd.Run() error: %v", err)
	}
	for _, want := range []string{"[x] Read", "[ ] Stretch", "Recorded: 1/2"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestHabitList(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("HabitListCmd.Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "No habits found.") {
		t.Errorf("output = %q", out.String())
	}

	addHabit(t, ctx, "Read")
	out.Reset()
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("HabitListCmd.Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "Read (boolean, daily)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHabitAnalyticsJSON(t *testing.T) {
	ctx, out := setupTestContext(t)
	h := addHabit(t, ctx, "Read")

	for _, day := range []string{"2027-03-08", "2027-03-09", "2027-03-10"} {
		if err := (&HabitLogCmd{HabitID: h.ID, Date: day, Status: "completed"}).Run(ctx); err != nil {
			t.Fatalf("HabitLogCmd.Run(%s) error: %v", day, err)
		}
	}
	if err := (&HabitLogCmd{HabitID: h.ID, Date: "2027-03-07", Status: "partial"}).Run(ctx); err != nil {
		t.Fatalf("HabitLogCmd.Run() error: %v", err)
	}
	out.Reset()

	if err := (&HabitAnalyticsCmd{HabitID: h.ID, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("HabitAnalyticsCmd.Run() error: %v", err)
	}
	var a models.HabitAnalytics
	if err := json.Unmarshal(out.Bytes(), &a); err != nil {
		t.Fatalf("decode analytics: %v\n%s", err, out.String())
	}
	if a.StartDate != "2027-02-09" || a.EndDate != "2027-03-10" {
		t.Errorf("range = %s..%s, want 2027-02-09..2027-03-10", a.StartDate, a.EndDate)
	}
	if a.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", a.CurrentStreak)
	}
	if a.CompletionRate != 0.75 {
		t.Errorf("CompletionRate = %v, want 0.75", a.CompletionRate)
	}
	if len(a.Heatmap) != 4 {
		t.Errorf("len(Heatmap) = %d, want 4", len(a.Heatmap))
	}
}

func TestHeatmapRow(t *testing.T) {
	days := []models.HeatmapDay{
		{Date: "2027-03-08", Count: 1, Intensity: 1},
		{Date: "2027-03-09", Intensity: 0.5},
		{Date: "2027-03-10"},
	}
	if got := heatmapRow(days); got != "█▒·" {
		t.Errorf("heatmapRow() = %q, want █▒·", got)
	}
}
