// Package goals manages tracked goals and their progress.
package goals

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
	store storage.GoalSource
	now   func() time.Time
	loc   *time.Location
}

func NewService(store storage.GoalSource, loc *time.Location) *Service {
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

// Create adds an active, not yet started goal with a slug derived from its
// title.
func (s *Service) Create(ctx context.Context, in models.CreateGoalInput) (models.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return models.Goal{}, err
	}
	goalType, err := models.ParseGoalType(in.Type)
	if err != nil {
		return models.Goal{}, errors.Validation("%v", err)
	}

	now := s.now()
	goal := models.Goal{
		ID:          uuid.NewString(),
		Slug:        utils.UniqueSlug(in.Title),
		Title:       in.Title,
		Description: in.Description,
		Type:        goalType,
		Category:    in.Category,
		Visibility:  models.VisibilityActive,
		Status:      models.GoalNotStarted,
		IsOnTrack:   true,
		TargetDate:  in.TargetDate,
		CreatedDate: utils.DayOf(now, s.loc),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := s.store.AddGoal(ctx, goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// List returns active goals that are not completed, newest first.
func (s *Service) List(ctx context.Context) ([]models.Goal, error) {
	return s.store.ListActiveGoals(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (models.Goal, error) {
	return s.store.GetGoal(ctx, id)
}

// Update records progress, status or the on-track flag. Progress on a goal
// that has not started moves it to in progress; reaching 100% completes it
// unless a status is given explicitly.
func (s *Service) Update(ctx context.Context, in models.UpdateGoalInput) (models.Goal, error) {
	if err := validation.Struct(in); err != nil {
		return models.Goal{}, err
	}

	goal, err := s.store.GetGoal(ctx, in.ID)
	if err != nil {
		return models.Goal{}, err
	}

	if in.Progress != nil {
		goal.Progress = *in.Progress
		switch {
		case goal.Progress >= 100:
			goal.Status = models.GoalCompleted
		case goal.Progress > 0 && goal.Status == models.GoalNotStarted:
			goal.Status = models.GoalInProgress
		}
	}
	if in.Status != nil {
		status, err := models.ParseGoalStatus(*in.Status)
		if err != nil {
			return models.Goal{}, errors.Validation("%v", err)
		}
		goal.Status = status
	}
	if in.IsOnTrack != nil {
		goal.IsOnTrack = *in.IsOnTrack
	}
	goal.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}
