package dashboards

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/config"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, now *time.Time) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "nocturne.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Config:   config.Default(),
		Location: time.UTC,
		Out:      out,
		Clock:    func() time.Time { return *now },
	}, out
}

func decode(t *testing.T, buf *bytes.Buffer) models.Snapshot {
	t.Helper()
	var snap models.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v\n%s", err, buf.String())
	}
	buf.Reset()
	return snap
}

func TestShowCmdCachesAndRefreshes(t *testing.T) {
	now := time.Date(2027, 3, 10, 9, 0, 0, 0, time.UTC)
	ctx, out := setupTestContext(t, &now)

	if err := (&ShowCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("ShowCmd.Run() error: %v", err)
	}
	first := decode(t, out)
	if first.Date != "2027-03-10" {
		t.Errorf("Date = %q, want 2027-03-10", first.Date)
	}
	if !first.ProductivityScore.IsPending() {
		t.Error("ProductivityScore computed, want pending")
	}

	now = now.Add(30 * time.Minute)
	if err := (&ShowCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("ShowCmd.Run() error: %v", err)
	}
	if cached := decode(t, out); cached.ID != first.ID {
		t.Errorf("cached ID = %q, want %q", cached.ID, first.ID)
	}

	if err := (&ShowCmd{JSON: true, Refresh: true}).Run(ctx); err != nil {
		t.Fatalf("ShowCmd.Run(refresh) error: %v", err)
	}
	if fresh := decode(t, out); fresh.ID == first.ID {
		t.Error("refresh returned the cached snapshot")
	}
}

func TestShowCmdRendersText(t *testing.T) {
	now := time.Date(2027, 3, 10, 9, 0, 0, 0, time.UTC)
	ctx, out := setupTestContext(t, &now)

	if err := (&ShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("ShowCmd.Run() error: %v", err)
	}
	for _, want := range []string{"Dashboard 2027-03-10", "pending", "nothing journaled today"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPruneCmd(t *testing.T) {
	now := time.Date(2027, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx, out := setupTestContext(t, &now)

	for i := 0; i < 3; i++ {
		if err := (&ShowCmd{JSON: true, Refresh: true}).Run(ctx); err != nil {
			t.Fatalf("ShowCmd.Run() error: %v", err)
		}
		now = now.AddDate(0, 0, 5)
	}
	out.Reset()

	// Snapshots at 03-01, 03-06 and 03-11; now is 03-16.
	if err := (&PruneCmd{KeepDays: 7}).Run(ctx); err != nil {
		t.Fatalf("PruneCmd.Run() error: %v", err)
	}
	if !strings.Contains(out.String(), "Pruned 2 snapshot(s)") {
		t.Errorf("output = %q, want 2 pruned", out.String())
	}

	out.Reset()
	if err := (&PruneCmd{}).Run(ctx); err != nil {
		t.Fatalf("PruneCmd.Run(default) error: %v", err)
	}
	if !strings.Contains(out.String(), "older than 30 days") {
		t.Errorf("output = %q, want config default", out.String())
	}
}
