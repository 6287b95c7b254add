package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/logger"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/utils"
	"github.com/julianstephens/nocturne/internal/validation"
)

var tracer trace.Tracer = otel.Tracer("github.com/julianstephens/nocturne/internal/journal")

// Scaffolder pre-creates one empty primary page per calendar day.
type Scaffolder struct {
	store storage.JournalSource
	now   func() time.Time
}

func NewScaffolder(store storage.JournalSource, opts ...Option) *Scaffolder {
	o := applyOptions(opts)
	return &Scaffolder{store: store, now: o.now}
}

// EnsureYearlyEntries creates the primary page for every date of year that
// lacks one and returns how many were created. Dates that already have a
// primary page, deleted or not, are left alone, so running it twice creates
// nothing the second time. The whole year is written in one transaction.
func (s *Scaffolder) EnsureYearlyEntries(ctx context.Context, year int) (created int, err error) {
	ctx, span := tracer.Start(ctx, "journal.scaffold", trace.WithAttributes(attribute.Int("year", year)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("created", created))
		span.End()
	}()

	if err := validation.Year(year); err != nil {
		return 0, err
	}

	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	existing, err := s.store.PrimaryEntryDates(ctx, first.Format(constants.DateFormat), last.Format(constants.DateFormat))
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(existing))
	for _, d := range existing {
		taken[d] = true
	}

	now := s.now().UTC()
	days := utils.DaysInYear(year)
	missing := make([]models.JournalEntry, 0, days-len(taken))
	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		if taken[day.Format(constants.DateFormat)] {
			continue
		}
		missing = append(missing, newPrimaryPage(day, now))
	}

	if len(missing) == 0 {
		logger.Debug("Journal year already scaffolded", "year", year)
		return 0, nil
	}

	created, err = s.store.AddJournalEntries(ctx, missing)
	if err != nil {
		return 0, err
	}
	logger.Info("Scaffolded journal year", "year", year, "created", created)
	return created, nil
}

// newPrimaryPage builds the empty reflection page for day.
func newPrimaryPage(day, now time.Time) models.JournalEntry {
	date := day.Format(constants.DateFormat)
	return stampDate(models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("%s%s", constants.ReflectionTitlePrefix, date),
		Content:   constants.EmptyJournalContent,
		IsPrimary: true,
		CreatedAt: now,
		UpdatedAt: now,
	}, day)
}

// stampDate sets the entry date and its derived calendar fields.
func stampDate(e models.JournalEntry, day time.Time) models.JournalEntry {
	_, week := day.ISOWeek()
	e.EntryDate = day.Format(constants.DateFormat)
	e.Year = day.Year()
	e.Month = int(day.Month())
	e.Day = day.Day()
	e.Week = week
	e.Weekday = utils.WeekdayNumber(day)
	return e
}
