package postgres

import (
	"context"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

func (s *Store) HabitCounts(ctx context.Context, day string) (models.HabitCounts, error) {
	var c models.HabitCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE visibility = 'active'),
			(SELECT COUNT(DISTINCT l.habit_id)
			 FROM habit_logs l JOIN habits h ON h.id = l.habit_id
			 WHERE l.log_date = $1 AND l.status = 'completed' AND h.visibility = 'active')
		FROM habits`, day).Scan(&c.Total, &c.Active, &c.CompletedToday)
	if err != nil {
		return models.HabitCounts{}, errors.Database("postgres.HabitCounts", err)
	}
	return c, nil
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO habits (`+storage.HabitColumns+`) VALUES (`+
		storage.Placeholders(8, 1, true)+`)`, storage.HabitArgs(habit)...)
	return errors.Database("postgres.AddHabit", err)
}

func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.HabitColumns+` FROM habits WHERE id = $1`, id)
	h, err := storage.ScanHabit(row)
	if err != nil {
		return models.Habit{}, errors.Database("postgres.GetHabit", err)
	}
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	query := `SELECT ` + storage.HabitColumns + ` FROM habits`
	if !includeArchived {
		query += ` WHERE visibility <> 'archived'`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Database("postgres.ListHabits", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := storage.ScanHabit(rows)
		if err != nil {
			return nil, errors.Database("postgres.ListHabits", err)
		}
		habits = append(habits, h)
	}
	return habits, errors.Database("postgres.ListHabits", rows.Err())
}

func (s *Store) UpsertHabitLog(ctx context.Context, log models.HabitLog) (models.HabitLog, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO habit_logs (`+storage.HabitLogColumns+`)
		VALUES (`+storage.Placeholders(14, 1, true)+`)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET
			status = EXCLUDED.status,
			value = EXCLUDED.value,
			note = EXCLUDED.note,
			mood = EXCLUDED.mood,
			energy_level = EXCLUDED.energy_level,
			context = EXCLUDED.context,
			is_manual = EXCLUDED.is_manual,
			source = EXCLUDED.source,
			logged_at = EXCLUDED.logged_at,
			updated_at = EXCLUDED.updated_at
		RETURNING `+storage.HabitLogColumns,
		storage.HabitLogArgs(log)...)
	stored, err := storage.ScanHabitLog(row)
	if err != nil {
		return models.HabitLog{}, errors.Database("postgres.UpsertHabitLog", err)
	}
	return stored, nil
}

func (s *Store) GetHabitLog(ctx context.Context, habitID, day string) (models.HabitLog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.HabitLogColumns+` FROM habit_logs
		WHERE habit_id = $1 AND log_date = $2`, habitID, day)
	l, err := storage.ScanHabitLog(row)
	if err != nil {
		return models.HabitLog{}, errors.Database("postgres.GetHabitLog", err)
	}
	return l, nil
}

func (s *Store) HabitLogs(ctx context.Context, habitID, start, end string) ([]models.HabitLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.HabitLogColumns+` FROM habit_logs
		WHERE habit_id = $1 AND log_date BETWEEN $2 AND $3
		ORDER BY log_date ASC`, habitID, start, end)
	if err != nil {
		return nil, errors.Database("postgres.HabitLogs", err)
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		l, err := storage.ScanHabitLog(rows)
		if err != nil {
			return nil, errors.Database("postgres.HabitLogs", err)
		}
		logs = append(logs, l)
	}
	return logs, errors.Database("postgres.HabitLogs", rows.Err())
}
