package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Type         HabitType  `json:"type"`
	Visibility   Visibility `json:"visibility"`
	ScheduleType string     `json:"schedule_type"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HabitLog is the single record of a habit on one calendar day. At most one
// exists per (HabitID, LogDate).
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	LogDate   string    `json:"log_date"` // YYYY-MM-DD format
	Status    LogStatus `json:"status"`
	Value     *float64  `json:"value,omitempty"`
	Note      string    `json:"note,omitempty"`
	Mood      string    `json:"mood,omitempty"`
	Energy    *int      `json:"energy_level,omitempty"`
	Context   string    `json:"context,omitempty"`
	IsManual  bool      `json:"is_manual"`
	Source    string    `json:"source,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HeatmapDay is one cell of a habit heatmap.
type HeatmapDay struct {
	Date      string  `json:"date"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
}

// HabitAnalytics is the derived view of a habit over a date range.
type HabitAnalytics struct {
	HabitID          string       `json:"habit_id"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	CurrentStreak    int          `json:"current_streak"`
	CompletionRate   float64      `json:"completion_rate"`
	ConsistencyScore float64      `json:"consistency_score"`
	Heatmap          []HeatmapDay `json:"heatmap"`
}

// HabitToday pairs an active habit with its log for the current day, if any.
type HabitToday struct {
	Habit Habit     `json:"habit"`
	Log   *HabitLog `json:"log,omitempty"`
}
