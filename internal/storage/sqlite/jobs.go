package sqlite

import (
	"context"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
)

func (s *Store) JobCounts(ctx context.Context, since string) (models.JobCounts, error) {
	var c models.JobCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'interviewing' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'offer' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN updated_at >= ? THEN 1 ELSE 0 END), 0)
		FROM job_applications
		WHERE visibility = 'active'`, since).Scan(&c.Active, &c.Interviewing, &c.Offer, &c.Rejected, &c.RecentlyUpdated)
	if err != nil {
		return models.JobCounts{}, errors.Database("sqlite.JobCounts", err)
	}
	return c, nil
}

func (s *Store) AddJob(ctx context.Context, job models.JobApplication) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO job_applications (`+storage.JobColumns+`) VALUES (`+
		storage.Placeholders(13, 1, false)+`)`, storage.JobArgs(job)...)
	return errors.Database("sqlite.AddJob", err)
}

func (s *Store) GetJob(ctx context.Context, id string) (models.JobApplication, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.JobColumns+` FROM job_applications WHERE id = ?`, id)
	j, err := storage.ScanJob(row)
	if err != nil {
		return models.JobApplication{}, errors.Database("sqlite.GetJob", err)
	}
	return j, nil
}

func (s *Store) ListActiveJobs(ctx context.Context) ([]models.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.JobColumns+` FROM job_applications
		WHERE visibility = 'active'
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, errors.Database("sqlite.ListActiveJobs", err)
	}
	defer rows.Close()

	jobs := []models.JobApplication{}
	for rows.Next() {
		j, err := storage.ScanJob(rows)
		if err != nil {
			return nil, errors.Database("sqlite.ListActiveJobs", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, errors.Database("sqlite.ListActiveJobs", rows.Err())
}

func (s *Store) UpdateJob(ctx context.Context, j models.JobApplication) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE job_applications SET
			title = ?, company = ?, level = ?, employment_type = ?, work_mode = ?,
			posting_url = ?, status = ?, visibility = ?, updated_at = ?
		WHERE id = ?`,
		j.Title, j.Company, j.Level, j.EmploymentType, string(j.WorkMode),
		j.PostingURL, string(j.Status), string(j.Visibility), storage.FormatTime(j.UpdatedAt), j.ID)
	if err != nil {
		return errors.Database("sqlite.UpdateJob", err)
	}
	return requireRow(res, "job application", j.ID)
}
