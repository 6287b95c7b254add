package sqlite

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
)

func journalEntry(id, date string, primary bool, words int) models.JournalEntry {
	return models.JournalEntry{
		ID:        id,
		EntryDate: date,
		Year:      2027, Month: 3, Day: 10, Week: 10, Weekday: 3,
		Title:     "Reflection: " + date,
		Content:   `[{"type":"paragraph","content":[]}]`,
		WordCount: words,
		IsPrimary: primary,
		CreatedAt: fixedTime(),
		UpdatedAt: fixedTime(),
	}
}

func TestJournalDay(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	primary := journalEntry("p1", "2027-03-10", true, 120)
	if err := store.AddJournalEntry(ctx, primary); err != nil {
		t.Fatalf("AddJournalEntry() error: %v", err)
	}
	sub := journalEntry("s1", "2027-03-10", false, 30)
	sub.ParentPageID = "p1"
	if err := store.AddJournalEntry(ctx, sub); err != nil {
		t.Fatalf("AddJournalEntry() sub-page error: %v", err)
	}
	deleted := journalEntry("s2", "2027-03-10", false, 500)
	deleted.IsDeleted = true
	if err := store.AddJournalEntry(ctx, deleted); err != nil {
		t.Fatalf("AddJournalEntry() deleted error: %v", err)
	}

	day, err := store.JournalDay(ctx, "2027-03-10")
	if err != nil {
		t.Fatalf("JournalDay() error: %v", err)
	}
	if day.Entries != 2 || day.WordCount != 150 {
		t.Errorf("JournalDay() = %+v, want 2 entries and 150 words", day)
	}

	empty, err := store.JournalDay(ctx, "2027-03-11")
	if err != nil {
		t.Fatalf("JournalDay() error: %v", err)
	}
	if empty.Entries != 0 || empty.WordCount != 0 {
		t.Errorf("JournalDay() empty day = %+v", empty)
	}
}

func TestAddJournalEntriesSkipsTakenDates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.AddJournalEntry(ctx, journalEntry("existing", "2027-01-02", true, 10)); err != nil {
		t.Fatalf("AddJournalEntry() error: %v", err)
	}

	batch := []models.JournalEntry{
		journalEntry("a", "2027-01-01", true, 0),
		journalEntry("b", "2027-01-02", true, 0),
		journalEntry("c", "2027-01-03", true, 0),
	}
	created, err := store.AddJournalEntries(ctx, batch)
	if err != nil {
		t.Fatalf("AddJournalEntries() error: %v", err)
	}
	if created != 2 {
		t.Errorf("AddJournalEntries() created %d, want 2", created)
	}

	dates, err := store.PrimaryEntryDates(ctx, "2027-01-01", "2027-12-31")
	if err != nil {
		t.Fatalf("PrimaryEntryDates() error: %v", err)
	}
	if len(dates) != 3 {
		t.Errorf("PrimaryEntryDates() = %v, want 3 dates", dates)
	}

	got, err := store.GetJournalEntry(ctx, "existing")
	if err != nil {
		t.Fatalf("GetJournalEntry() error: %v", err)
	}
	if got.WordCount != 10 {
		t.Error("existing primary page was overwritten")
	}
}

func TestListAndUpdateJournal(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, e := range []models.JournalEntry{
		journalEntry("d1", "2027-03-01", true, 0),
		journalEntry("d2", "2027-03-02", true, 0),
	} {
		if err := store.AddJournalEntry(ctx, e); err != nil {
			t.Fatalf("AddJournalEntry() error: %v", err)
		}
	}
	sub := journalEntry("sub", "2027-03-02", false, 0)
	sub.ParentPageID = "d2"
	if err := store.AddJournalEntry(ctx, sub); err != nil {
		t.Fatalf("AddJournalEntry() error: %v", err)
	}

	entries, err := store.ListPrimaryEntries(ctx, 0)
	if err != nil {
		t.Fatalf("ListPrimaryEntries() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListPrimaryEntries() = %d entries, want 2", len(entries))
	}
	if entries[0].ID != "d2" {
		t.Errorf("ListPrimaryEntries() first = %q, want newest first", entries[0].ID)
	}

	subs, err := store.ListSubPages(ctx, "d2")
	if err != nil {
		t.Fatalf("ListSubPages() error: %v", err)
	}
	if len(subs) != 1 || subs[0].ParentPageID != "d2" {
		t.Errorf("ListSubPages() = %+v", subs)
	}

	mood := 7
	d1 := entries[1]
	d1.Title = "Quiet day"
	d1.WordCount = 42
	d1.MoodRating = &mood
	if err := store.UpdateJournalEntry(ctx, d1); err != nil {
		t.Fatalf("UpdateJournalEntry() error: %v", err)
	}
	got, _ := store.GetJournalEntry(ctx, "d1")
	if got.Title != "Quiet day" || got.WordCount != 42 || got.MoodRating == nil || *got.MoodRating != 7 {
		t.Errorf("UpdateJournalEntry() stored %+v", got)
	}

	missing := d1
	missing.ID = "nope"
	if err := store.UpdateJournalEntry(ctx, missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateJournalEntry() missing = %v, want not found", err)
	}
	if _, err := store.GetJournalEntry(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetJournalEntry() missing = %v, want not found", err)
	}
}
