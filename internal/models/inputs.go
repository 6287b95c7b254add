package models

// CreateHabitInput carries the fields accepted when adding a habit.
type CreateHabitInput struct {
	Name         string `json:"name" validate:"notblank"`
	Description  string `json:"description"`
	Type         string `json:"type" validate:"required,oneof=boolean quantitative duration checklist"`
	ScheduleType string `json:"schedule_type" validate:"omitempty,oneof=daily weekly custom interval"`
}

// CreateHabitLogInput records (or replaces) a habit's outcome for a day.
type CreateHabitLogInput struct {
	HabitID string   `json:"habit_id" validate:"required"`
	LogDate string   `json:"log_date" validate:"required,yyyymmdd"`
	Status  string   `json:"status" validate:"required,oneof=completed partial skipped failed"`
	Value   *float64 `json:"value"`
	Note    string   `json:"note"`
	Mood    string   `json:"mood"`
	Energy  *int     `json:"energy_level" validate:"omitempty,min=1,max=10"`
	Context string   `json:"context"`
	Source  string   `json:"source"`
}

// CreateJournalInput carries a manually written primary journal page.
type CreateJournalInput struct {
	EntryDate  string `json:"entry_date" validate:"required,yyyymmdd"`
	Title      string `json:"title"`
	Content    string `json:"content" validate:"notblank,json"`
	WordCount  int    `json:"word_count" validate:"min=0"`
	MoodLabel  string `json:"mood_label"`
	MoodRating *int   `json:"mood_rating" validate:"omitempty,min=1,max=10"`
	Energy     *int   `json:"energy_level" validate:"omitempty,min=1,max=10"`
	Stress     *int   `json:"stress_level" validate:"omitempty,min=1,max=10"`
	Importance *int   `json:"importance" validate:"omitempty,min=1,max=10"`
}

// UpdateJournalInput changes the editable fields of an entry. Nil fields are
// left untouched.
type UpdateJournalInput struct {
	ID         string  `json:"id" validate:"required"`
	Title      *string `json:"title"`
	Content    *string `json:"content" validate:"omitempty,json"`
	WordCount  *int    `json:"word_count" validate:"omitempty,min=0"`
	MoodLabel  *string `json:"mood_label"`
	MoodRating *int    `json:"mood_rating" validate:"omitempty,min=1,max=10"`
	Energy     *int    `json:"energy_level" validate:"omitempty,min=1,max=10"`
	Stress     *int    `json:"stress_level" validate:"omitempty,min=1,max=10"`
	Importance *int    `json:"importance" validate:"omitempty,min=1,max=10"`
}

// CreateSubPageInput adds a page under an existing entry.
type CreateSubPageInput struct {
	ParentPageID string `json:"parent_page_id" validate:"required"`
	Title        string `json:"title" validate:"notblank"`
	Content      string `json:"content" validate:"omitempty,json"`
}

// CreateGoalInput carries the fields accepted when adding a goal.
type CreateGoalInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=outcome process performance learning"`
	Category    string `json:"category"`
	TargetDate  string `json:"target_date" validate:"omitempty,yyyymmdd"`
}

// UpdateGoalInput changes a goal's progress, status or on-track flag.
type UpdateGoalInput struct {
	ID        string   `json:"id" validate:"required"`
	Progress  *float64 `json:"progress_percentage" validate:"omitempty,min=0,max=100"`
	Status    *string  `json:"status" validate:"omitempty,oneof=not_started in_progress completed failed abandoned"`
	IsOnTrack *bool    `json:"is_on_track"`
}

// CreateJobInput carries the fields accepted when adding a job application.
type CreateJobInput struct {
	Title          string `json:"title" validate:"notblank"`
	Company        string `json:"company" validate:"notblank"`
	Level          string `json:"level" validate:"omitempty,oneof=junior mid senior staff lead"`
	EmploymentType string `json:"employment_type"`
	WorkMode       string `json:"work_mode" validate:"omitempty,oneof=onsite hybrid remote"`
	PostingURL     string `json:"posting_url" validate:"omitempty,url"`
}

// UpdateJobStatusInput moves an application to another pipeline stage.
type UpdateJobStatusInput struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=draft applied interviewing offer rejected withdrawn"`
}
