package dashboard

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeDomains answers the aggregate reads from fixed values. The embedded
// interfaces are nil; calling anything else panics.
type fakeDomains struct {
	storage.JournalSource
	storage.HabitSource
	storage.GoalSource
	storage.JobSource

	journal models.JournalDay
	habits  models.HabitCounts
	goals   models.GoalCounts
	jobs    models.JobCounts
	err     error

	mu       sync.Mutex
	days     []string
	since    string
	journals atomic.Int32
}

func (f *fakeDomains) sources() Sources {
	return Sources{Journal: f, Habits: f, Goals: f, Jobs: f}
}

func (f *fakeDomains) record(day string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
}

func (f *fakeDomains) JournalDay(_ context.Context, day string) (models.JournalDay, error) {
	f.journals.Add(1)
	f.record(day)
	return f.journal, nil
}

func (f *fakeDomains) HabitCounts(_ context.Context, day string) (models.HabitCounts, error) {
	f.record(day)
	return f.habits, nil
}

func (f *fakeDomains) GoalCounts(_ context.Context, day string) (models.GoalCounts, error) {
	f.record(day)
	return f.goals, f.err
}

func (f *fakeDomains) JobCounts(_ context.Context, since string) (models.JobCounts, error) {
	f.mu.Lock()
	f.since = since
	f.mu.Unlock()
	return f.jobs, nil
}

type fakeVersion string

func (v fakeVersion) DataVersion(context.Context) (string, error) { return string(v), nil }

// memSnapshots is an append-only in-memory SnapshotStore.
type memSnapshots struct {
	mu      sync.Mutex
	rows    []models.Snapshot
	saveErr error
}

func (m *memSnapshots) SaveSnapshot(_ context.Context, s models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows = append(m.rows, s)
	return nil
}

func (m *memSnapshots) LatestSnapshot(context.Context) (models.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return models.Snapshot{}, false, nil
	}
	latest := 0
	for i, s := range m.rows {
		if s.GeneratedAt >= m.rows[latest].GeneratedAt {
			latest = i
		}
	}
	return m.rows[latest], true, nil
}

func (m *memSnapshots) ListSnapshots(_ context.Context, limit int) ([]models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Snapshot(nil), m.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].GeneratedAt > out[j].GeneratedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSnapshots) PruneSnapshots(_ context.Context, before int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return 0, nil
	}
	latest := 0
	for i, s := range m.rows {
		if s.GeneratedAt >= m.rows[latest].GeneratedAt {
			latest = i
		}
	}
	var kept []models.Snapshot
	var removed int64
	for i, s := range m.rows {
		if i != latest && s.GeneratedAt < before {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	m.rows = kept
	return removed, nil
}

func (m *memSnapshots) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeMirror struct {
	mu        sync.Mutex
	snap      models.Snapshot
	has       bool
	latestErr error
	published int
	locks     int
}

func (f *fakeMirror) Latest(context.Context) (models.Snapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.has, f.latestErr
}

func (f *fakeMirror) Publish(_ context.Context, s models.Snapshot, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.has = s, true
	f.published++
	return nil
}

func (f *fakeMirror) Obtain(context.Context) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return func() {}, nil
}
