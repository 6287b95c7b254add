package models

import "time"

// Alerts holds the attention flags raised by a dashboard pass.
type Alerts struct {
	OverdueGoals         bool `json:"overdue_goals"`
	HabitStreakBreakRisk bool `json:"habit_streak_break_risk"`
	JournalGap           bool `json:"journal_gap"`
	JobPipelineStall     bool `json:"job_pipeline_stall"`
	AttentionRequired    bool `json:"attention_required"`
	CriticalAlerts       int  `json:"critical_alerts"`
	WarningAlerts        int  `json:"warning_alerts"`
}

// Snapshot is one immutable dashboard row. Every refresh appends a new one.
type Snapshot struct {
	ID            string `json:"id"`
	Date          string `json:"date"` // YYYY-MM-DD in Timezone
	Timezone      string `json:"timezone"`
	SchemaVersion int    `json:"schema_version"`

	ProductivityScore Metric       `json:"productivity_score"`
	ConsistencyIndex  Metric       `json:"consistency_index"`
	MomentumScore     Metric       `json:"momentum_score"`
	BurnoutRisk       Metric       `json:"burnout_risk"`
	StressLoad        Metric       `json:"stress_load"`
	Confidence        Metric       `json:"confidence"`
	Health            HealthStatus `json:"health"`

	JournalExistsToday    bool `json:"journal_exists_today"`
	JournalWordCountToday int  `json:"journal_word_count_today"`

	HabitsTotal          int     `json:"habits_total"`
	HabitsActive         int     `json:"habits_active"`
	HabitsCompletedToday int     `json:"habits_completed_today"`
	HabitCompletionRate  float64 `json:"habit_completion_rate_today"`

	GoalsActive      int     `json:"goals_active"`
	GoalsCompleted   int     `json:"goals_completed"`
	GoalsOnTrack     int     `json:"goals_on_track"`
	GoalsAtRisk      int     `json:"goals_at_risk"`
	GoalsAvgProgress float64 `json:"goals_avg_progress"`

	JobsActive       int    `json:"jobs_active"`
	JobsInterviewing int    `json:"jobs_interviewing"`
	JobsOffer        int    `json:"jobs_offer"`
	JobsRejected     int    `json:"jobs_rejected"`
	PipelineVelocity Metric `json:"pipeline_velocity"`

	Alerts Alerts `json:"alerts"`

	GeneratedAt         int64  `json:"generated_at"`
	ValidUntil          int64  `json:"valid_until"`
	ComputationDuration int64  `json:"computation_duration_ms"`
	DataSourceVersion   string `json:"data_source_version"`
}

// ValidAt reports whether the snapshot may still be served at now.
func (s Snapshot) ValidAt(now time.Time) bool {
	return now.Unix() < s.ValidUntil
}
