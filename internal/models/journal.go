package models

import "time"

// JournalEntry is a diary page. Primary pages hold one calendar day; sub-pages
// hang off a parent and are not bound to a unique date.
type JournalEntry struct {
	ID           string    `json:"id"`
	EntryDate    string    `json:"entry_date"` // YYYY-MM-DD format
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Day          int       `json:"day"`
	Week         int       `json:"week"`    // ISO week
	Weekday      int       `json:"weekday"` // Monday = 1
	Title        string    `json:"title,omitempty"`
	Content      string    `json:"content"` // JSON document
	WordCount    int       `json:"word_count"`
	MoodLabel    string    `json:"mood_label,omitempty"`
	MoodRating   *int      `json:"mood_rating,omitempty"`
	Energy       *int      `json:"energy_level,omitempty"`
	Stress       *int      `json:"stress_level,omitempty"`
	Importance   *int      `json:"importance,omitempty"`
	IsPrimary    bool      `json:"is_primary_page"`
	IsDeleted    bool      `json:"is_deleted"`
	ParentPageID string    `json:"parent_page_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
