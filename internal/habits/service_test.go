package habits

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage/sqlite"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "nocturne.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewService(store, time.UTC).WithClock(func() time.Time {
		return time.Date(2027, 3, 10, 20, 0, 0, 0, time.UTC)
	})
}

func createHabit(t *testing.T, svc *Service, name string) models.Habit {
	t.Helper()
	h, err := svc.Create(context.Background(), models.CreateHabitInput{Name: name, Type: "boolean"})
	if err != nil {
		t.Fatalf("Create(%s) error: %v", name, err)
	}
	return h
}

func logHabit(t *testing.T, svc *Service, habitID, day, status string) models.HabitLog {
	t.Helper()
	l, err := svc.Log(context.Background(), models.CreateHabitLogInput{HabitID: habitID, LogDate: day, Status: status})
	if err != nil {
		t.Fatalf("Log(%s, %s) error: %v", day, status, err)
	}
	return l
}

func TestCreate(t *testing.T) {
	svc := setupService(t)

	h := createHabit(t, svc, "Read")
	if h.ScheduleType != "daily" || h.Visibility != models.VisibilityActive || h.Type != models.HabitTypeBoolean {
		t.Errorf("Create() = %+v", h)
	}

	invalid := []models.CreateHabitInput{
		{Name: "", Type: "boolean"},
		{Name: "Run", Type: "sometimes"},
		{Name: "Run", Type: "boolean", ScheduleType: "hourly"},
	}
	for _, in := range invalid {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("Create(%+v) error = %v, want validation", in, err)
		}
	}
}

func TestLogReplacesSameDay(t *testing.T) {
	svc := setupService(t)
	h := createHabit(t, svc, "Read")

	first := logHabit(t, svc, h.ID, "2027-03-10", "partial")
	second := logHabit(t, svc, h.ID, "2027-03-10", "completed")

	if second.ID != first.ID {
		t.Errorf("second log id = %s, want original %s", second.ID, first.ID)
	}
	if second.Status != models.LogCompleted {
		t.Errorf("status = %s, want completed", second.Status)
	}
	if !second.IsManual || second.Source != "manual" {
		t.Errorf("source = %q manual=%v", second.Source, second.IsManual)
	}
}

func TestLogUnknownHabit(t *testing.T) {
	svc := setupService(t)
	_, err := svc.Log(context.Background(), models.CreateHabitLogInput{HabitID: "missing", LogDate: "2027-03-10", Status: "completed"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Log() error = %v, want not found", err)
	}
}

func TestToday(t *testing.T) {
	svc := setupService(t)
	read := createHabit(t, svc, "Read")
	createHabit(t, svc, "Stretch")
	logHabit(t, svc, read.ID, "2027-03-10", "completed")
	logHabit(t, svc, read.ID, "2027-03-09", "failed")

	today, err := svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today() error: %v", err)
	}
	if len(today) != 2 {
		t.Fatalf("Today() returned %d habits, want 2", len(today))
	}
	for _, item := range today {
		switch item.Habit.Name {
		case "Read":
			if item.Log == nil || item.Log.LogDate != "2027-03-10" {
				t.Errorf("Read log = %+v, want today's", item.Log)
			}
		case "Stretch":
			if item.Log != nil {
				t.Errorf("Stretch log = %+v, want none", item.Log)
			}
		}
	}
}

func TestAnalytics(t *testing.T) {
	svc := setupService(t)
	h := createHabit(t, svc, "Read")
	for day, status := range map[string]string{
		"2027-03-06": "failed",
		"2027-03-07": "partial",
		"2027-03-08": "completed",
		"2027-03-09": "completed",
		"2027-03-10": "completed",
	} {
		logHabit(t, svc, h.ID, day, status)
	}

	got, err := svc.Analytics(context.Background(), h.ID, "2027-03-01", "2027-03-10")
	if err != nil {
		t.Fatalf("Analytics() error: %v", err)
	}
	if got.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got.CurrentStreak)
	}
	if got.CompletionRate != 0.6 {
		t.Errorf("CompletionRate = %v, want 0.6", got.CompletionRate)
	}
	if got.ConsistencyScore != 60 {
		t.Errorf("ConsistencyScore = %v, want 60", got.ConsistencyScore)
	}
	if len(got.Heatmap) != 5 || got.Heatmap[0].Date != "2027-03-06" || got.Heatmap[1].Intensity != 0.5 {
		t.Errorf("Heatmap = %+v", got.Heatmap)
	}
}

func TestAnalyticsEmptyRange(t *testing.T) {
	svc := setupService(t)
	h := createHabit(t, svc, "Read")

	got, err := svc.Analytics(context.Background(), h.ID, "2027-01-01", "2027-01-31")
	if err != nil {
		t.Fatalf("Analytics() error: %v", err)
	}
	if got.CurrentStreak != 0 || got.CompletionRate != 0 || got.Heatmap == nil || len(got.Heatmap) != 0 {
		t.Errorf("Analytics() = %+v, want zero values and empty heatmap", got)
	}
}

func TestAnalyticsErrors(t *testing.T) {
	svc := setupService(t)
	h := createHabit(t, svc, "Read")
	ctx := context.Background()

	tests := []struct {
		name       string
		habitID    string
		start, end string
		want       error
	}{
		{"unknown habit", "missing", "2027-03-01", "2027-03-10", apperrors.ErrNotFound},
		{"start after end", h.ID, "2027-03-10", "2027-03-01", apperrors.ErrValidation},
		{"bad start", h.ID, "03/01/2027", "2027-03-10", apperrors.ErrValidation},
		{"bad end", h.ID, "2027-03-01", "2027-13-01", apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Analytics(ctx, tt.habitID, tt.start, tt.end); !errors.Is(err, tt.want) {
				t.Errorf("Analytics() error = %v, want %v", err, tt.want)
			}
		})
	}
}
