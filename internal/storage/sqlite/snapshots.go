package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

func (s *Store) SaveSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO dashboard_snapshots (`+storage.SnapshotColumns+`) VALUES (`+
		storage.Placeholders(storage.SnapshotColumnCount, 1, false)+`)`, storage.SnapshotArgs(snapshot)...)
	return errors.Database("sqlite.SaveSnapshot", err)
}

func (s *Store) LatestSnapshot(ctx context.Context) (models.Snapshot, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.SnapshotColumns+` FROM dashboard_snapshots
		ORDER BY generated_at DESC, seq DESC
		LIMIT 1`)
	snap, err := storage.ScanSnapshot(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, false, nil
	}
	if err != nil {
		return models.Snapshot{}, false, errors.Database("sqlite.LatestSnapshot", err)
	}
	return snap, true, nil
}

func (s *Store) ListSnapshots(ctx context.Context, limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.SnapshotColumns+` FROM dashboard_snapshots
		ORDER BY generated_at DESC, seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Database("sqlite.ListSnapshots", err)
	}
	defer rows.Close()

	snaps := []models.Snapshot{}
	for rows.Next() {
		snap, err := storage.ScanSnapshot(rows)
		if err != nil {
			return nil, errors.Database("sqlite.ListSnapshots", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, errors.Database("sqlite.ListSnapshots", rows.Err())
}

func (s *Store) PruneSnapshots(ctx context.Context, before int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM dashboard_snapshots
		WHERE generated_at < ?
		  AND seq != (SELECT seq FROM dashboard_snapshots ORDER BY generated_at DESC, seq DESC LIMIT 1)`, before)
	if err != nil {
		return 0, errors.Database("sqlite.PruneSnapshots", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Database("sqlite.PruneSnapshots", err)
	}
	return n, nil
}
