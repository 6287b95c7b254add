package dashboard

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

// Computer produces a fresh snapshot. *Engine implements it.
type Computer interface {
	Compute(ctx context.Context) (models.Snapshot, error)
}

// Mirror is an optional shared copy of the latest snapshot.
// *rediscache.Mirror implements it.
type Mirror interface {
	Latest(ctx context.Context) (models.Snapshot, bool, error)
	Publish(ctx context.Context, snap models.Snapshot, now time.Time) error
	// Obtain takes a cross-process refresh lock and returns its release.
	Obtain(ctx context.Context) (func(), error)
}

// Cache serves the latest snapshot while it is valid and recomputes it
// otherwise. Every recomputation appends a new row; rows are never updated.
type Cache struct {
	engine Computer
	store  storage.SnapshotStore
	mirror Mirror
	loc    *time.Location
	now    func() time.Time

	flight singleflight.Group
	mu     sync.Mutex // serialises refreshes
}

func NewCache(engine Computer, store storage.SnapshotStore, opts ...Option) *Cache {
	o := applyOptions(opts)
	return &Cache{engine: engine, store: store, mirror: o.mirror, loc: o.loc, now: o.now}
}

// Get returns the current snapshot. Without force, a snapshot whose validity
// window still covers now is returned unchanged and concurrent misses share
// one aggregation. With force, a new snapshot is always computed and stored.
func (c *Cache) Get(ctx context.Context, force bool) (snap models.Snapshot, err error) {
	ctx, span := tracer.Start(ctx, "dashboard.get", trace.WithAttributes(attribute.Bool("force", force)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if force {
		return c.refresh(ctx, true)
	}

	snap, ok, err := c.current(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	if ok {
		logger.Debug("Dashboard cache hit", "id", snap.ID, "valid_until", snap.ValidUntil)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return snap, nil
	}

	logger.Debug("Dashboard cache miss")
	v, err, shared := c.flight.Do("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx), false)
	})
	if err != nil {
		return models.Snapshot{}, err
	}
	span.SetAttributes(attribute.Bool("cache.shared", shared))
	return v.(models.Snapshot), nil
}

// current returns the latest snapshot if it is still valid. The mirror is
// consulted first; if it fails or holds a snapshot for another timezone the
// store answers.
func (c *Cache) current(ctx context.Context) (models.Snapshot, bool, error) {
	now := c.now()

	if c.mirror != nil {
		snap, ok, err := c.mirror.Latest(ctx)
		switch {
		case err != nil:
			logger.Warn("Dashboard mirror read failed, using store", "err", err)
		case ok && snap.Timezone != c.loc.String():
			logger.Debug("Ignoring mirrored snapshot for another timezone", "id", snap.ID, "timezone", snap.Timezone)
		case ok && snap.ValidAt(now):
			return snap, true, nil
		}
	}

	snap, ok, err := c.store.LatestSnapshot(ctx)
	if err != nil {
		return models.Snapshot{}, false, err
	}
	if !ok || !snap.ValidAt(now) {
		return models.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (c *Cache) refresh(ctx context.Context, force bool) (models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mirror != nil {
		release, err := c.mirror.Obtain(ctx)
		if err != nil {
			logger.Warn("Dashboard refresh lock unavailable", "err", err)
		}
		if release != nil {
			defer release()
		}
	}

	// Another caller may have refreshed while this one waited.
	if !force {
		snap, ok, err := c.current(ctx)
		if err != nil {
			return models.Snapshot{}, err
		}
		if ok {
			return snap, nil
		}
	}

	snap, err := c.engine.Compute(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	if err := c.store.SaveSnapshot(ctx, snap); err != nil {
		return models.Snapshot{}, err
	}

	if c.mirror != nil {
		if err := c.mirror.Publish(ctx, snap, c.now()); err != nil {
			logger.Warn("Dashboard mirror publish failed", "id", snap.ID, "err", err)
		}
	}

	logger.Info("Dashboard snapshot refreshed", "id", snap.ID, "forced", force, "health", snap.Health, "duration_ms", snap.ComputationDuration)
	return snap, nil
}
