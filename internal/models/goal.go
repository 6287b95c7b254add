package models

import "time"

// Goal is a tracked objective with a progress percentage.
type Goal struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Type        GoalType   `json:"type"`
	Category    string     `json:"category,omitempty"`
	Visibility  Visibility `json:"visibility"`
	Status      GoalStatus `json:"status"`
	Progress    float64    `json:"progress_percentage"`
	IsOnTrack   bool       `json:"is_on_track"`
	TargetDate  string     `json:"target_date,omitempty"` // YYYY-MM-DD format
	CreatedDate string     `json:"created_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
