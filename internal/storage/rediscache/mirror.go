// Package rediscache mirrors the latest dashboard snapshot into Redis so that
// several processes can share one validity window.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/models"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Namespace separates databases and timezones that share one Redis.
	// Build it with Namespace.
	Namespace string
}

type Mirror struct {
	rdb     *redis.Client
	locker  *redislock.Client
	key     string
	lockKey string
}

// Namespace derives a short stable key suffix from the database source and
// the timezone name. The source may hold credentials, so only its hash is
// used.
func Namespace(source, timezone string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{source, timezone}, "\x00")))
	return hex.EncodeToString(sum[:8])
}

// Connect dials Redis and fails if it does not answer a ping within five
// seconds.
func Connect(ctx context.Context, opts Options) (*Mirror, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Io("redis.ping", err)
	}

	return New(rdb, opts.Namespace), nil
}

// New wraps an existing client. Snapshot and lock keys are scoped to
// namespace.
func New(rdb *redis.Client, namespace string) *Mirror {
	return &Mirror{
		rdb:     rdb,
		locker:  redislock.New(rdb),
		key:     constants.DashboardCacheKey + ":" + namespace,
		lockKey: constants.DashboardRefreshLock + ":" + namespace,
	}
}

func (m *Mirror) Close() error {
	return m.rdb.Close()
}

// Latest returns the mirrored snapshot. The boolean is false when nothing is
// mirrored or the entry expired.
func (m *Mirror) Latest(ctx context.Context) (models.Snapshot, bool, error) {
	raw, err := m.rdb.Get(ctx, m.key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, errors.Io("redis.get", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.Snapshot{}, false, errors.Internal("redis.decode", err)
	}
	return snap, true, nil
}

// Publish stores snap until its validity window closes. Snapshots that are
// already stale at now are not mirrored.
func (m *Mirror) Publish(ctx context.Context, snap models.Snapshot, now time.Time) error {
	ttl := time.Unix(snap.ValidUntil, 0).Sub(now)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Internal("redis.encode", err)
	}
	if err := m.rdb.Set(ctx, m.key, raw, ttl).Err(); err != nil {
		return errors.Io("redis.set", err)
	}
	return nil
}

// Obtain takes the cross-process refresh lock. The lock is advisory: when
// another process holds it the returned release is a no-op and the caller
// proceeds anyway.
func (m *Mirror) Obtain(ctx context.Context) (func(), error) {
	lock, err := m.locker.Obtain(ctx, m.lockKey, constants.DashboardRefreshLockTTL, nil)
	if stderrors.Is(err, redislock.ErrNotObtained) {
		logger.Warn("Dashboard refresh lock held elsewhere, refreshing anyway")
		return func() {}, nil
	}
	if err != nil {
		return func() {}, errors.Io("redis.lock", err)
	}

	return func() {
		if err := lock.Release(context.Background()); err != nil && !stderrors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warn("Failed to release dashboard refresh lock", "err", err)
		}
	}, nil
}
