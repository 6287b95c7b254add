package sqlite

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
			COALESCE(SUM(CASE WHEN visibility = 'active' THEN 1 ELSE 0 END), 0),
			(SELECT COUNT(DISTINCT l.habit_id)
			 FROM habit_logs l JOIN habits h ON h.id = l.habit_id
			 WHERE l.log_date = ? AND l.status = 'completed' AND h.visibility = 'active')
		FROM habits`, day).Scan(&c.Total, &c.Active, &c.CompletedToday)
	if err != nil {
		return models.HabitCounts{}, errors.Database("sqlite.HabitCounts", err)
	}
	return c, nil
}

func (s *Store) AddHabit(ctx context.Context, habit models.Habit) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO habits (`+storage.HabitColumns+`) VALUES (`+
		storage.Placeholders(8, 1, false)+`)`, storage.HabitArgs(habit)...)
	return errors.Database("sqlite.AddHabit", err)
}

func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.HabitColumns+` FROM habits WHERE id = ?`, id)
	h, err := storage.ScanHabit(row)
	if err != nil {
		return models.Habit{}, errors.Database("sqlite.GetHabit", err)
	}
	return h, nil
}

func (s *Store) ListHabits(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	query := `SELECT ` + storage.HabitColumns + ` FROM habits`
	if !includeArchived {
		query += ` WHERE visibility != 'archived'`
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Database("sqlite.ListHabits", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := storage.ScanHabit(rows)
		if err != nil {
			return nil, errors.Database("sqlite.ListHabits", err)
		}
		habits = append(habits, h)
	}
	return habits, errors.Database("sqlite.ListHabits", rows.Err())
}

func (s *Store) UpsertHabitLog(ctx context.Context, log models.HabitLog) (models.HabitLog, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_logs (`+storage.HabitLogColumns+`)
		VALUES (`+storage.Placeholders(14, 1, false)+`)
		ON CONFLICT(habit_id, log_date) DO UPDATE SET
			status = excluded.status,
			value = excluded.value,
			note = excluded.note,
			mood = excluded.mood,
			energy_level = excluded.energy_level,
			context = excluded.context,
			is_manual = excluded.is_manual,
			source = excluded.source,
			logged_at = excluded.logged_at,
			updated_at = excluded.updated_at`,
		storage.HabitLogArgs(log)...)
	if err != nil {
		return models.HabitLog{}, errors.Database("sqlite.UpsertHabitLog", err)
	}
	return s.GetHabitLog(ctx, log.HabitID, log.LogDate)
}

func (s *Store) GetHabitLog(ctx context.Context, habitID, day string) (models.HabitLog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.HabitLogColumns+` FROM habit_logs
		WHERE habit_id = ? AND log_date = ?`, habitID, day)
	l, err := storage.ScanHabitLog(row)
	if err != nil {
		return models.HabitLog{}, errors.Database("sqlite.GetHabitLog", err)
	}
	return l, nil
}

func (s *Store) HabitLogs(ctx context.Context, habitID, start, end string) ([]models.HabitLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.HabitLogColumns+` FROM habit_logs
		WHERE habit_id = ? AND log_date BETWEEN ? AND ?
		ORDER BY log_date ASC`, habitID, start, end)
	if err != nil {
		return nil, errors.Database("sqlite.HabitLogs", err)
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		l, err := storage.ScanHabitLog(rows)
		if err != nil {
			return nil, errors.Database("sqlite.HabitLogs", err)
		}
		logs = append(logs, l)
	}
	return logs, errors.Database("sqlite.HabitLogs", rows.Err())
}
