// Package habits manages habits, their daily logs and derived analytics.
package habits

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nocturne/internal/analytics"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/utils"
	"github.com/julianstephens/nocturne/internal/validation"
)

const defaultSchedule = "daily"

type Service struct {
	store storage.HabitSource
	now   func() time.Time
	loc   *time.Location
}

// NewService returns a habit service that decides "today" in loc.
func NewService(store storage.HabitSource, loc *time.Location) *Service {
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

func (s *Service) Create(ctx context.Context, in models.CreateHabitInput) (models.Habit, error) {
	if err := validation.Struct(in); err != nil {
		return models.Habit{}, err
	}
	habitType, err := models.ParseHabitType(in.Type)
	if err != nil {
		return models.Habit{}, errors.Validation("%v", err)
	}

	schedule := in.ScheduleType
	if schedule == "" {
		schedule = defaultSchedule
	}

	now := s.now().UTC()
	habit := models.Habit{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Description:  in.Description,
		Type:         habitType,
		Visibility:   models.VisibilityActive,
		ScheduleType: schedule,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.AddHabit(ctx, habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// List returns habits by name, leaving out archived ones unless asked.
func (s *Service) List(ctx context.Context, includeArchived bool) ([]models.Habit, error) {
	return s.store.ListHabits(ctx, includeArchived)
}

func (s *Service) Get(ctx context.Context, id string) (models.Habit, error) {
	return s.store.GetHabit(ctx, id)
}

// Today lists active habits alongside today's log.
func (s *Service) Today(ctx context.Context) ([]models.HabitToday, error) {
	habits, err := s.store.ListHabits(ctx, false)
	if err != nil {
		return nil, err
	}

	today := utils.DayOf(s.now(), s.loc)
	out := []models.HabitToday{}
	for _, h := range habits {
		if h.Visibility != models.VisibilityActive {
			continue
		}
		item := models.HabitToday{Habit: h}
		log, err := s.store.GetHabitLog(ctx, h.ID, today)
		switch {
		case err == nil:
			item.Log = &log
		case !stderrors.Is(err, errors.ErrNotFound):
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Log records the outcome of a habit for a day, replacing any earlier log for
// the same day.
func (s *Service) Log(ctx context.Context, in models.CreateHabitLogInput) (models.HabitLog, error) {
	if err := validation.Struct(in); err != nil {
		return models.HabitLog{}, err
	}
	status, err := models.ParseLogStatus(in.Status)
	if err != nil {
		return models.HabitLog{}, errors.Validation("%v", err)
	}
	if _, err := s.store.GetHabit(ctx, in.HabitID); err != nil {
		return models.HabitLog{}, err
	}

	source := in.Source
	if source == "" {
		source = "manual"
	}

	now := s.now().UTC()
	return s.store.UpsertHabitLog(ctx, models.HabitLog{
		ID:        uuid.NewString(),
		HabitID:   in.HabitID,
		LogDate:   in.LogDate,
		Status:    status,
		Value:     in.Value,
		Note:      in.Note,
		Mood:      in.Mood,
		Energy:    in.Energy,
		Context:   in.Context,
		IsManual:  source == "manual",
		Source:    source,
		LoggedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Analytics derives streak, completion and heatmap figures for habitID from
// the logs dated in [start, end]. The streak is counted back from today.
func (s *Service) Analytics(ctx context.Context, habitID, start, end string) (models.HabitAnalytics, error) {
	if !validation.IsDate(start) {
		return models.HabitAnalytics{}, errors.Validation("invalid start date %q: expected YYYY-MM-DD", start)
	}
	if !validation.IsDate(end) {
		return models.HabitAnalytics{}, errors.Validation("invalid end date %q: expected YYYY-MM-DD", end)
	}
	if span, err := utils.DaysBetween(start, end); err != nil || span < 0 {
		return models.HabitAnalytics{}, errors.Validation("start date %s is after end date %s", start, end)
	}

	if _, err := s.store.GetHabit(ctx, habitID); err != nil {
		return models.HabitAnalytics{}, err
	}

	logs, err := s.store.HabitLogs(ctx, habitID, start, end)
	if err != nil {
		return models.HabitAnalytics{}, err
	}

	return models.HabitAnalytics{
		HabitID:          habitID,
		StartDate:        start,
		EndDate:          end,
		CurrentStreak:    analytics.CurrentStreak(logs, s.now().In(s.loc)),
		CompletionRate:   analytics.CompletionRate(logs),
		ConsistencyScore: analytics.ConsistencyScore(logs),
		Heatmap:          analytics.Heatmap(logs),
	}, nil
}
