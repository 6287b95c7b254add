package postgres

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
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status <> 'completed' AND is_on_track),
			COUNT(*) FILTER (WHERE status <> 'completed' AND target_date IS NOT NULL AND target_date < $1),
			COALESCE(AVG(progress_percentage), 0)
		FROM goals
		WHERE visibility = 'active'`, today).Scan(&c.Active, &c.Completed, &c.OnTrack, &c.AtRisk, &c.AvgProgress)
	if err != nil {
		return models.GoalCounts{}, errors.Database("postgres.GoalCounts", err)
	}
	return c, nil
}

func (s *Store) AddGoal(ctx context.Context, goal models.Goal) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO goals (`+storage.GoalColumns+`) VALUES (`+
		storage.Placeholders(14, 1, true)+`)`, storage.GoalArgs(goal)...)
	return errors.Database("postgres.AddGoal", err)
}

func (s *Store) GetGoal(ctx context.Context, id string) (models.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.GoalColumns+` FROM goals WHERE id = $1`, id)
	g, err := storage.ScanGoal(row)
	if err != nil {
		return models.Goal{}, errors.Database("postgres.GetGoal", err)
	}
	return g, nil
}

func (s *Store) ListActiveGoals(ctx context.Context) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.GoalColumns+` FROM goals
		WHERE visibility = 'active' AND status <> 'completed'
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Database("postgres.ListActiveGoals", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := storage.ScanGoal(rows)
		if err != nil {
			return nil, errors.Database("postgres.ListActiveGoals", err)
		}
		goals = append(goals, g)
	}
	return goals, errors.Database("postgres.ListActiveGoals", rows.Err())
}

func (s *Store) UpdateGoal(ctx context.Context, g models.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET
			title = $1, description = $2, category = $3, visibility = $4, status = $5,
			progress_percentage = $6, is_on_track = $7, target_date = $8, updated_at = $9
		WHERE id = $10`,
		g.Title, g.Description, g.Category, string(g.Visibility), string(g.Status),
		g.Progress, g.IsOnTrack, storage.NullString(g.TargetDate), storage.FormatTime(g.UpdatedAt), g.ID)
	if err != nil {
		return errors.Database("postgres.UpdateGoal", err)
	}
	return requireRow(res, "goal", g.ID)
}
