// Package jobs manages the job-application pipeline.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/utils"
	"github.com/julianstephens/nocturne/internal/validation"
)

type Service struct {
	store storage.JobSource
	now   func() time.Time
	loc   *time.Location
}

func NewService(store storage.JobSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, now: time.Now, loc: loc}
}

// WithClock replaces the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create adds a draft application. Its slug combines company and title.
func (s *Service) Create(ctx context.Context, in models.CreateJobInput) (models.JobApplication, error) {
	if err := validation.Struct(in); err != nil {
		return models.JobApplication{}, err
	}
	mode, err := models.ParseWorkMode(in.WorkMode)
	if err != nil {
		return models.JobApplication{}, errors.Validation("%v", err)
	}

	now := s.now()
	job := models.JobApplication{
		ID:             uuid.NewString(),
		Slug:           utils.UniqueSlug(in.Company, in.Title),
		Title:          in.Title,
		Company:        in.Company,
		Level:          in.Level,
		EmploymentType: in.EmploymentType,
		WorkMode:       mode,
		PostingURL:     in.PostingURL,
		Status:         models.JobDraft,
		Visibility:     models.VisibilityActive,
		CreatedDate:    utils.DayOf(now, s.loc),
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
	}
	if err := s.store.AddJob(ctx, job); err != nil {
		return models.JobApplication{}, err
	}
	return job, nil
}

// List returns active applications, most recently updated first.
func (s *Service) List(ctx context.Context) ([]models.JobApplication, error) {
	return s.store.ListActiveJobs(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (models.JobApplication, error) {
	return s.store.GetJob(ctx, id)
}

// UpdateStatus moves an application to another stage.
func (s *Service) UpdateStatus(ctx context.Context, in models.UpdateJobStatusInput) (models.JobApplication, error) {
	if err := validation.Struct(in); err != nil {
		return models.JobApplication{}, err
	}
	status, err := models.ParseJobStatus(in.Status)
	if err != nil {
		return models.JobApplication{}, errors.Validation("%v", err)
	}

	job, err := s.store.GetJob(ctx, in.ID)
	if err != nil {
		return models.JobApplication{}, err
	}
	job.Status = status
	job.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateJob(ctx, job); err != nil {
		return models.JobApplication{}, err
	}
	return job, nil
}
