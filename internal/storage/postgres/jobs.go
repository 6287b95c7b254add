package postgres

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
			COUNT(*) FILTER (WHERE status = 'interviewing'),
			COUNT(*) FILTER (WHERE status = 'offer'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE updated_at >= $1)
		FROM job_applications
		WHERE visibility = 'active'`, since).Scan(&c.Active, &c.Interviewing, &c.Offer, &c.Rejected, &c.RecentlyUpdated)
	if err != nil {
		return models.JobCounts{}, errors.Database("postgres.JobCounts", err)
	}
	return c, nil
}

func (s *Store) AddJob(ctx context.Context, job models.JobApplication) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO job_applications (`+storage.JobColumns+`) VALUES (`+
		storage.Placeholders(13, 1, true)+`)`, storage.JobArgs(job)...)
	return errors.Database("postgres.AddJob", err)
}

func (s *Store) GetJob(ctx context.Context, id string) (models.JobApplication, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storage.JobColumns+` FROM job_applications WHERE id = $1`, id)
	j, err := storage.ScanJob(row)
	if err != nil {
		return models.JobApplication{}, errors.Database("postgres.GetJob", err)
	}
	return j, nil
}

func (s *Store) ListActiveJobs(ctx context.Context) ([]models.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.JobColumns+` FROM job_applications
		WHERE visibility = 'active'
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, errors.Database("postgres.ListActiveJobs", err)
	}
	defer rows.Close()

	jobs := []models.JobApplication{}
	for rows.Next() {
		j, err := storage.ScanJob(rows)
		if err != nil {
			return nil, errors.Database("postgres.ListActiveJobs", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, errors.Database("postgres.ListActiveJobs", rows.Err())
}

func (s *Store) UpdateJob(ctx context.Context, j models.JobApplication) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE job_applications SET
			title = $1, company = $2, level = $3, employment_type = $4, work_mode = $5,
			posting_url = $6, status = $7, visibility = $8, updated_at = $9
		WHERE id = $10`,
		j.Title, j.Company, j.Level, j.EmploymentType, string(j.WorkMode),
		j.PostingURL, string(j.Status), string(j.Visibility), storage.FormatTime(j.UpdatedAt), j.ID)
	if err != nil {
		return errors.Database("postgres.UpdateJob", err)
	}
	return requireRow(res, "job application", j.ID)
}
