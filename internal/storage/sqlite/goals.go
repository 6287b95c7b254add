package sqlite

import (
	"context"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

func (s *Store) GoalCounts(ctx context.Context, today string) (models.GoalCounts, error) {
	var c models.GoalCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'completed' AND is_on_track = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status != 'completed' AND target_date IS NOT NULL AND target_date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(progress_percentage), 0)
		FROM goals
		WHERE visibility = 'active'`, today).Scan(&c.Active, &c.Completed, &c.OnTrack, &c.AtRisk, &c.AvgProgress)
	if err != nil {
		return models.GoalCounts{}, errors.Database("sqlite.GoalCounts", err)
	}
	return c, nil
}

func (s *Store) AddGoal(ctx context.Context, goal models.Goal) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals (`+storage.GoalColumns+`) VALUES (`+
		storage.Placeholders(14, 1, false)+`)`, storage.GoalArgs(goal)...)
	return errors.Database("sqlite.AddGoal", err)
}

func (s *Store) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.GoalColumns+` FROM goals WHERE id = ?`, id)
	g, err := storage.ScanGoal(row)
	if err != nil {
		return models.Goal{}, errors.Database("sqlite.GetGoal", err)
	}
	return g, nil
}

func (s *Store) ListActiveGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.GoalColumns+` FROM goals
		WHERE visibility = 'active' AND status != 'completed'
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Database("sqlite.ListActiveGoals", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := storage.ScanGoal(rows)
		if err != nil {
			return nil, errors.Database("sqlite.ListActiveGoals", err)
		}
		goals = append(goals, g)
	}
	return goals, errors.Database("sqlite.ListActiveGoals", rows.Err())
}

func (s *Store) UpdateGoal(ctx context.Context, g models.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET
			title = ?, description = ?, category = ?, visibility = ?, status = ?,
			progress_percentage = ?, is_on_track = ?, target_date = ?, updated_at = ?
		WHERE id = ?`,
		g.Title, g.Description, g.Category, string(g.Visibility), string(g.Status),
		g.Progress, g.IsOnTrack, storage.NullString(g.TargetDate), storage.FormatTime(g.UpdatedAt), g.ID)
	if err != nil {
		return errors.Database("sqlite.UpdateGoal", err)
	}
	return requireRow(res, "goal", g.ID)
}
