package dashboard

import (
	"context"
	"time"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/storage"
)

// Prune deletes snapshots generated more than keepDays before now. The latest
// snapshot always survives.
func Prune(ctx context.Context, store storage.SnapshotStore, keepDays int, now time.Time) (int64, error) {
	if keepDays < 1 {
		return 0, errors.Validation("keep days must be at least 1, got %d", keepDays)
	}

	cutoff := now.AddDate(0, 0, -keepDays).Unix()
	removed, err := store.PruneSnapshots(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	logger.Info("Pruned dashboard snapshots", "removed", removed, "keep_days", keepDays)
	return removed, nil
}
