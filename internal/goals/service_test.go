package goals

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
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
		return time.Date(2027, 3, 10, 9, 0, 0, 0, time.UTC)
	})
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	svc := setupService(t)

	g, err := svc.Create(context.Background(), models.CreateGoalInput{Title: "Run a Marathon", Type: "outcome", TargetDate: "2027-10-01"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !regexp.MustCompile(`^run-a-marathon-[0-9a-f]{8}$`).MatchString(g.Slug) {
		t.Errorf("Slug = %q", g.Slug)
	}
	if g.Status != models.GoalNotStarted || !g.IsOnTrack || g.CreatedDate != "2027-03-10" {
		t.Errorf("Create() = %+v", g)
	}

	got, err := svc.Get(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.TargetDate != "2027-10-01" {
		t.Errorf("TargetDate = %q", got.TargetDate)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := setupService(t)
	invalid := []models.CreateGoalInput{
		{Title: " ", Type: "outcome"},
		{Title: "Ship it", Type: "wish"},
		{Title: "Ship it", Type: "outcome", TargetDate: "next week"},
	}
	for _, in := range invalid {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("Create(%+v) error = %v, want validation", in, err)
		}
	}
}

func TestUpdateProgress(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	g, err := svc.Create(ctx, models.CreateGoalInput{Title: "Learn Go", Type: "learning"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	g, err = svc.Update(ctx, models.UpdateGoalInput{ID: g.ID, Progress: floatPtr(40)})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if g.Status != models.GoalInProgress || g.Progress != 40 {
		t.Errorf("after 40%%: %s %.0f", g.Status, g.Progress)
	}

	g, err = svc.Update(ctx, models.UpdateGoalInput{ID: g.ID, Progress: floatPtr(100)})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if g.Status != models.GoalCompleted {
		t.Errorf("after 100%%: %s, want completed", g.Status)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() = %d goals, completed goals should be hidden", len(list))
	}
}

func TestUpdateErrors(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	g, err := svc.Create(ctx, models.CreateGoalInput{Title: "Learn Go", Type: "learning"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := svc.Update(ctx, models.UpdateGoalInput{ID: g.ID, Progress: floatPtr(120)}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("progress 120 error = %v, want validation", err)
	}
	if _, err := svc.Update(ctx, models.UpdateGoalInput{ID: g.ID, Status: strPtr("paused")}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("bad status error = %v, want validation", err)
	}
	if _, err := svc.Update(ctx, models.UpdateGoalInput{ID: "missing", Progress: floatPtr(10)}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing goal error = %v, want not found", err)
	}
}
