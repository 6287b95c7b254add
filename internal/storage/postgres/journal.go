package postgres

import (
	"context"
	"database/sql"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

var insertJournalSQL = `INSERT INTO journal_entries (` + storage.JournalColumns + `) VALUES (` +
	storage.Placeholders(20, 1, true) + `)`

func (s *Store) JournalDay(ctx context.Context, day string) (models.JournalDay, error) {
	var out models.JournalDay
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(word_count), 0)
		FROM journal_entries
		WHERE entry_date = $1 AND NOT is_deleted`, day).Scan(&out.Entries, &out.WordCount)
	if err != nil {
		return models.JournalDay{}, errors.Database("postgres.JournalDay", err)
	}
	return out, nil
}

func (s *Store) PrimaryEntryDates(ctx context.Context, from, to string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_date FROM journal_entries
		WHERE is_primary_page AND entry_date BETWEEN $1 AND $2
		ORDER BY entry_date`, from, to)
	if err != nil {
		return nil, errors.Database("postgres.PrimaryEntryDates", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, errors.Database("postgres.PrimaryEntryDates", err)
		}
		dates = append(dates, d)
	}
	return dates, errors.Database("postgres.PrimaryEntryDates", rows.Err())
}

func (s *Store) AddJournalEntries(ctx context.Context, entries []models.JournalEntry) (int, error) {
	created := 0
	err := s.withTx(ctx, "postgres.AddJournalEntries", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, insertJournalSQL+` ON CONFLICT DO NOTHING`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			res, err := stmt.ExecContext(ctx, storage.JournalArgs(e)...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			created += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (s *Store) AddJournalEntry(ctx context.Context, entry models.JournalEntry) error {
	_, err := s.db.ExecContext(ctx, insertJournalSQL, storage.JournalArgs(entry)...)
	return errors.Database("postgres.AddJournalEntry", err)
}

func (s *Store) GetJournalEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.JournalColumns+` FROM journal_entries WHERE id = $1`, id)
	e, err := storage.ScanJournalEntry(row)
	if err != nil {
		return models.JournalEntry{}, errors.Database("postgres.GetJournalEntry", err)
	}
	return e, nil
}

func (s *Store) ListPrimaryEntries(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.JournalColumns+` FROM journal_entries
		WHERE is_primary_page AND NOT is_deleted
		ORDER BY entry_date DESC
		LIMIT $1`, limitArg)
	if err != nil {
		return nil, errors.Database("postgres.ListPrimaryEntries", err)
	}
	return collectJournal(rows, "postgres.ListPrimaryEntries")
}

func (s *Store) ListSubPages(ctx context.Context, parentID string) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.JournalColumns+` FROM journal_entries
		WHERE parent_page_id = $1 AND NOT is_deleted
		ORDER BY created_at, id`, parentID)
	if err != nil {
		return nil, errors.Database("postgres.ListSubPages", err)
	}
	return collectJournal(rows, "postgres.ListSubPages")
}

func (s *Store) UpdateJournalEntry(ctx context.Context, e models.JournalEntry) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries SET
			title = $1, content = $2, word_count = $3, mood_label = $4, mood_rating = $5,
			energy_level = $6, stress_level = $7, importance = $8, is_deleted = $9, updated_at = $10
		WHERE id = $11`,
		e.Title, e.Content, e.WordCount, e.MoodLabel, storage.NullInt(e.MoodRating),
		storage.NullInt(e.Energy), storage.NullInt(e.Stress), storage.NullInt(e.Importance),
		e.IsDeleted, storage.FormatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return errors.Database("postgres.UpdateJournalEntry", err)
	}
	return requireRow(res, "journal entry", e.ID)
}

func collectJournal(rows *sql.Rows, op string) ([]models.JournalEntry, error) {
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		e, err := storage.ScanJournalEntry(rows)
		if err != nil {
			return nil, errors.Database(op, err)
		}
		entries = append(entries, e)
	}
	return entries, errors.Database(op, rows.Err())
}
