// Package journal manages diary pages: manual entries, sub-pages and the
// yearly scaffold of empty primary pages.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/utils"
	"github.com/julianstephens/nocturne/internal/validation"
)

type Service struct {
	store storage.JournalSource
	now   func() time.Time
	loc   *time.Location
}

func NewService(store storage.JournalSource, opts ...Option) *Service {
	o := applyOptions(opts)
	return &Service{store: store, now: o.now, loc: o.loc}
}

func (s *Service) today() string {
	return utils.DayOf(s.now(), s.loc)
}

// Create adds a primary page for a past or current date.
func (s *Service) Create(ctx context.Context, in models.CreateJournalInput) (models.JournalEntry, error) {
	if err := validation.Struct(in); err != nil {
		return models.JournalEntry{}, err
	}
	if err := validation.NewEntryDate(in.EntryDate, s.today()); err != nil {
		return models.JournalEntry{}, err
	}

	taken, err := s.store.PrimaryEntryDates(ctx, in.EntryDate, in.EntryDate)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if len(taken) > 0 {
		return models.JournalEntry{}, errors.Validation("an entry for %s already exists", in.EntryDate)
	}

	day, err := utils.ParseDate(in.EntryDate)
	if err != nil {
		return models.JournalEntry{}, errors.Validation("invalid entry date %q", in.EntryDate)
	}

	now := s.now().UTC()
	entry := stampDate(models.JournalEntry{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Content:    in.Content,
		WordCount:  in.WordCount,
		MoodLabel:  in.MoodLabel,
		MoodRating: in.MoodRating,
		Energy:     in.Energy,
		Stress:     in.Stress,
		Importance: in.Importance,
		IsPrimary:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, day)
	if entry.Title == "" {
		entry.Title = constants.ReflectionTitlePrefix + in.EntryDate
	}

	if err := s.store.AddJournalEntry(ctx, entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// List returns non-deleted primary pages, newest first. A limit of zero or
// less returns all of them.
func (s *Service) List(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	return s.store.ListPrimaryEntries(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id string) (models.JournalEntry, error) {
	return s.store.GetJournalEntry(ctx, id)
}

// Update applies the non-nil fields of in. Entries dated after today are
// locked.
func (s *Service) Update(ctx context.Context, in models.UpdateJournalInput) (models.JournalEntry, error) {
	if err := validation.Struct(in); err != nil {
		return models.JournalEntry{}, err
	}

	entry, err := s.store.GetJournalEntry(ctx, in.ID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if err := validation.EditableEntryDate(entry.EntryDate, s.today()); err != nil {
		return models.JournalEntry{}, err
	}

	if in.Title != nil {
		entry.Title = *in.Title
	}
	if in.Content != nil {
		entry.Content = *in.Content
	}
	if in.WordCount != nil {
		entry.WordCount = *in.WordCount
	}
	if in.MoodLabel != nil {
		entry.MoodLabel = *in.MoodLabel
	}
	if in.MoodRating != nil {
		entry.MoodRating = in.MoodRating
	}
	if in.Energy != nil {
		entry.Energy = in.Energy
	}
	if in.Stress != nil {
		entry.Stress = in.Stress
	}
	if in.Importance != nil {
		entry.Importance = in.Importance
	}
	entry.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateJournalEntry(ctx, entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// SubPages lists the non-deleted pages under parentID in creation order.
func (s *Service) SubPages(ctx context.Context, parentID string) ([]models.JournalEntry, error) {
	if _, err := s.store.GetJournalEntry(ctx, parentID); err != nil {
		return nil, err
	}
	return s.store.ListSubPages(ctx, parentID)
}

// AddSubPage creates a non-primary page dated like its parent.
func (s *Service) AddSubPage(ctx context.Context, in models.CreateSubPageInput) (models.JournalEntry, error) {
	if err := validation.Struct(in); err != nil {
		return models.JournalEntry{}, err
	}

	parent, err := s.store.GetJournalEntry(ctx, in.ParentPageID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if parent.IsDeleted {
		return models.JournalEntry{}, errors.NotFound("journal entry %s", in.ParentPageID)
	}

	content := in.Content
	if content == "" {
		content = constants.EmptyJournalContent
	}

	now := s.now().UTC()
	page := parent
	page.ID = uuid.NewString()
	page.Title = in.Title
	page.Content = content
	page.WordCount = 0
	page.MoodLabel = ""
	page.MoodRating, page.Energy, page.Stress, page.Importance = nil, nil, nil, nil
	page.IsPrimary = false
	page.IsDeleted = false
	page.ParentPageID = parent.ID
	page.CreatedAt = now
	page.UpdatedAt = now

	if err := s.store.AddJournalEntry(ctx, page); err != nil {
		return models.JournalEntry{}, err
	}
	return page, nil
}
