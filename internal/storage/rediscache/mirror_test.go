package rediscache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/models"
)

// setupMirror connects to NOCTURNE_TEST_REDIS, e.g. "localhost:6379".
func setupMirror(t *testing.T) *Mirror {
	t.Helper()
	addr := os.Getenv("NOCTURNE_TEST_REDIS")
	if addr == "" {
		t.Skip("NOCTURNE_TEST_REDIS not set, skipping Redis integration test")
	}

	return connectMirror(t, addr, Namespace("test:"+t.Name(), "UTC"))
}

func connectMirror(t *testing.T, addr, namespace string) *Mirror {
	t.Helper()
	m, err := Connect(context.Background(), Options{Addr: addr, DB: 15, Namespace: namespace})
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() {
		m.rdb.Del(context.Background(), m.key)
		m.Close()
	})
	return m
}

func TestPublishAndLatest(t *testing.T) {
	m := setupMirror(t)
	ctx := context.Background()
	now := time.Now()

	if _, ok, err := m.Latest(ctx); err != nil || ok {
		t.Fatalf("Latest() on empty key = %v, %v", ok, err)
	}

	snap := models.Snapshot{
		ID: "s1", Date: "2027-03-10", Timezone: "UTC", SchemaVersion: 1,
		ProductivityScore: models.Pending(), PipelineVelocity: models.Computed(0.25),
		Health: models.HealthGood, GeneratedAt: now.Unix(), ValidUntil: now.Unix() + 3600,
	}
	if err := m.Publish(ctx, snap, now); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	got, ok, err := m.Latest(ctx)
	if err != nil || !ok {
		t.Fatalf("Latest() = %v, %v", ok, err)
	}
	if got != snap {
		t.Errorf("Latest() = %+v\nwant %+v", got, snap)
	}

	ttl := m.rdb.TTL(ctx, m.key).Val()
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within the validity window", ttl)
	}
}

func TestPublishSkipsStaleSnapshot(t *testing.T) {
	m := setupMirror(t)
	ctx := context.Background()
	now := time.Now()

	stale := models.Snapshot{ID: "old", GeneratedAt: now.Unix() - 7200, ValidUntil: now.Unix() - 3600}
	if err := m.Publish(ctx, stale, now); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if _, ok, _ := m.Latest(ctx); ok {
		t.Error("stale snapshot was mirrored")
	}
}

func TestLockIsAdvisory(t *testing.T) {
	m := setupMirror(t)
	ctx := context.Background()

	release, err := m.Obtain(ctx)
	if err != nil {
		t.Fatalf("Obtain() error: %v", err)
	}
	defer release()

	second, err := m.Obtain(ctx)
	if err != nil {
		t.Fatalf("second Obtain() error = %v, want proceed without lock", err)
	}
	second()
}

func TestNamespace(t *testing.T) {
	base := Namespace("/home/a/nocturne.db", "UTC")

	tests := []struct {
		name     string
		source   string
		timezone string
		same     bool
	}{
		{"same inputs", "/home/a/nocturne.db", "UTC", true},
		{"other sqlite file", "/home/b/nocturne.db", "UTC", false},
		{"postgres source", "postgres://alice@localhost/nocturne", "UTC", false},
		{"other timezone", "/home/a/nocturne.db", "America/New_York", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Namespace(tt.source, tt.timezone)
			if (got == base) != tt.same {
				t.Errorf("Namespace(%q, %q) = %s, base %s, want same=%v", tt.source, tt.timezone, got, base, tt.same)
			}
		})
	}
}

func TestNamespaceHidesSource(t *testing.T) {
	ns := Namespace("postgres://alice:secret@db/nocturne", "UTC")
	if strings.Contains(ns, "secret") || strings.Contains(ns, "alice") {
		t.Errorf("Namespace() = %q leaks the source", ns)
	}
}

func TestNewScopesKeys(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer rdb.Close()

	a := New(rdb, Namespace("/a.db", "UTC"))
	b := New(rdb, Namespace("/b.db", "UTC"))

	if a.key == b.key || a.lockKey == b.lockKey {
		t.Errorf("mirrors share keys: %s/%s and %s/%s", a.key, a.lockKey, b.key, b.lockKey)
	}
	if !strings.HasPrefix(a.key, constants.DashboardCacheKey+":") {
		t.Errorf("key = %q, want prefix %q", a.key, constants.DashboardCacheKey)
	}
	if !strings.HasPrefix(a.lockKey, constants.DashboardRefreshLock+":") {
		t.Errorf("lock key = %q, want prefix %q", a.lockKey, constants.DashboardRefreshLock)
	}
}

func TestNamespacesDoNotShareSnapshots(t *testing.T) {
	addr := os.Getenv("NOCTURNE_TEST_REDIS")
	if addr == "" {
		t.Skip("NOCTURNE_TEST_REDIS not set, skipping Redis integration test")
	}
	ctx := context.Background()
	now := time.Now()

	first := connectMirror(t, addr, Namespace("test:"+t.Name()+":one.db", "UTC"))
	second := connectMirror(t, addr, Namespace("test:"+t.Name()+":two.db", "UTC"))

	snap := models.Snapshot{ID: "one", Timezone: "UTC", GeneratedAt: now.Unix(), ValidUntil: now.Unix() + 3600}
	if err := first.Publish(ctx, snap, now); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if _, ok, err := second.Latest(ctx); err != nil || ok {
		t.Errorf("other namespace Latest() = %v, %v; want nothing", ok, err)
	}
}
