package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nocturne/internal/models"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// FormatTime renders a row timestamp. Timestamps are stored as UTC RFC3339 so
// they compare correctly as text.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses a row timestamp written by FormatTime.
func ParseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// Placeholders returns n comma separated bind parameters starting at start,
// either "?" or "$n" style.
func Placeholders(n, start int, dollar bool) string {
	parts := make([]string, n)
	for i := range parts {
		if dollar {
			parts[i] = fmt.Sprintf("$%d", start+i)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// NullInt maps an optional int to a nullable column value.
func NullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func IntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func NullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// NullString stores an empty string as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const HabitColumns = `id, name, description, habit_type, visibility, schedule_type, created_at, updated_at`

func HabitArgs(h models.Habit) []any {
	return []any{h.ID, h.Name, h.Description, string(h.Type), string(h.Visibility), h.ScheduleType,
		FormatTime(h.CreatedAt), FormatTime(h.UpdatedAt)}
}

func ScanHabit(row RowScanner) (models.Habit, error) {
	var h models.Habit
	var habitType, visibility, createdAt, updatedAt string
	if err := row.Scan(&h.ID, &h.Name, &h.Description, &habitType, &visibility, &h.ScheduleType, &createdAt, &updatedAt); err != nil {
		return models.Habit{}, err
	}

	var err error
	if h.Type, err = models.ParseHabitType(habitType); err != nil {
		return models.Habit{}, err
	}
	if h.Visibility, err = models.ParseVisibility(visibility); err != nil {
		return models.Habit{}, err
	}
	if h.CreatedAt, err = ParseTime("created_at", createdAt); err != nil {
		return models.Habit{}, err
	}
	if h.UpdatedAt, err = ParseTime("updated_at", updatedAt); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

const HabitLogColumns = `id, habit_id, log_date, status, value, note, mood, energy_level, context, is_manual, source, logged_at, created_at, updated_at`

func HabitLogArgs(l models.HabitLog) []any {
	return []any{l.ID, l.HabitID, l.LogDate, string(l.Status), NullFloat(l.Value), l.Note, l.Mood,
		NullInt(l.Energy), l.Context, l.IsManual, l.Source,
		FormatTime(l.LoggedAt), FormatTime(l.CreatedAt), FormatTime(l.UpdatedAt)}
}

func ScanHabitLog(row RowScanner) (models.HabitLog, error) {
	var l models.HabitLog
	var status, loggedAt, createdAt, updatedAt string
	var value sql.NullFloat64
	var energy sql.NullInt64
	if err := row.Scan(&l.ID, &l.HabitID, &l.LogDate, &status, &value, &l.Note, &l.Mood,
		&energy, &l.Context, &l.IsManual, &l.Source, &loggedAt, &createdAt, &updatedAt); err != nil {
		return models.HabitLog{}, err
	}

	var err error
	if l.Status, err = models.ParseLogStatus(status); err != nil {
		return models.HabitLog{}, err
	}
	if value.Valid {
		v := value.Float64
		l.Value = &v
	}
	l.Energy = IntPtr(energy)
	if l.LoggedAt, err = ParseTime("logged_at", loggedAt); err != nil {
		return models.HabitLog{}, err
	}
	if l.CreatedAt, err = ParseTime("created_at", createdAt); err != nil {
		return models.HabitLog{}, err
	}
	if l.UpdatedAt, err = ParseTime("updated_at", updatedAt); err != nil {
		return models.HabitLog{}, err
	}
	return l, nil
}

const JournalColumns = `id, entry_date, year, month, day, week, weekday, title, content, word_count, mood_label, mood_rating, energy_level, stress_level, importance, is_primary_page, is_deleted, parent_page_id, created_at, updated_at`

func JournalArgs(e models.JournalEntry) []any {
	return []any{e.ID, e.EntryDate, e.Year, e.Month, e.Day, e.Week, e.Weekday, e.Title, e.Content,
		e.WordCount, e.MoodLabel, NullInt(e.MoodRating), NullInt(e.Energy), NullInt(e.Stress),
		NullInt(e.Importance), e.IsPrimary, e.IsDeleted, NullString(e.ParentPageID),
		FormatTime(e.CreatedAt), FormatTime(e.UpdatedAt)}
}

func ScanJournalEntry(row RowScanner) (models.JournalEntry, error) {
	var e models.JournalEntry
	var moodRating, energy, stress, importance sql.NullInt64
	var parent sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&e.ID, &e.EntryDate, &e.Year, &e.Month, &e.Day, &e.Week, &e.Weekday, &e.Title,
		&e.Content, &e.WordCount, &e.MoodLabel, &moodRating, &energy, &stress, &importance,
		&e.IsPrimary, &e.IsDeleted, &parent, &createdAt, &updatedAt); err != nil {
		return models.JournalEntry{}, err
	}

	e.MoodRating = IntPtr(moodRating)
	e.Energy = IntPtr(energy)
	e.Stress = IntPtr(stress)
	e.Importance = IntPtr(importance)
	e.ParentPageID = parent.String

	var err error
	if e.CreatedAt, err = ParseTime("created_at", createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	if e.UpdatedAt, err = ParseTime("updated_at", updatedAt); err != nil {
		return models.JournalEntry{}, err
	}
	return e, nil
}

const GoalColumns = `id, slug, title, description, goal_type, category, visibility, status, progress_percentage, is_on_track, target_date, created_date, created_at, updated_at`

func GoalArgs(g models.Goal) []any {
	return []any{g.ID, g.Slug, g.Title, g.Description, string(g.Type), g.Category, string(g.Visibility),
		string(g.Status), g.Progress, g.IsOnTrack, NullString(g.TargetDate), g.CreatedDate,
		FormatTime(g.CreatedAt), FormatTime(g.UpdatedAt)}
}

func ScanGoal(row RowScanner) (models.Goal, error) {
	var g models.Goal
	var goalType, visibility, status, createdAt, updatedAt string
	var target sql.NullString
	if err := row.Scan(&g.ID, &g.Slug, &g.Title, &g.Description, &goalType, &g.Category, &visibility,
		&status, &g.Progress, &g.IsOnTrack, &target, &g.CreatedDate, &createdAt, &updatedAt); err != nil {
		return models.Goal{}, err
	}

	var err error
	if g.Type, err = models.ParseGoalType(goalType); err != nil {
		return models.Goal{}, err
	}
	if g.Visibility, err = models.ParseVisibility(visibility); err != nil {
		return models.Goal{}, err
	}
	if g.Status, err = models.ParseGoalStatus(status); err != nil {
		return models.Goal{}, err
	}
	g.TargetDate = target.String
	if g.CreatedAt, err = ParseTime("created_at", createdAt); err != nil {
		return models.Goal{}, err
	}
	if g.UpdatedAt, err = ParseTime("updated_at", updatedAt); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

const JobColumns = `id, slug, title, company, level, employment_type, work_mode, posting_url, status, visibility, created_date, created_at, updated_at`

func JobArgs(j models.JobApplication) []any {
	return []any{j.ID, j.Slug, j.Title, j.Company, j.Level, j.EmploymentType, string(j.WorkMode),
		j.PostingURL, string(j.Status), string(j.Visibility), j.CreatedDate,
		FormatTime(j.CreatedAt), FormatTime(j.UpdatedAt)}
}

func ScanJob(row RowScanner) (models.JobApplication, error) {
	var j models.JobApplication
	var workMode, status, visibility, createdAt, updatedAt string
	if err := row.Scan(&j.ID, &j.Slug, &j.Title, &j.Company, &j.Level, &j.EmploymentType, &workMode,
		&j.PostingURL, &status, &visibility, &j.CreatedDate, &createdAt, &updatedAt); err != nil {
		return models.JobApplication{}, err
	}

	var err error
	if j.WorkMode, err = models.ParseWorkMode(workMode); err != nil {
		return models.JobApplication{}, err
	}
	if j.Status, err = models.ParseJobStatus(status); err != nil {
		return models.JobApplication{}, err
	}
	if j.Visibility, err = models.ParseVisibility(visibility); err != nil {
		return models.JobApplication{}, err
	}
	if j.CreatedAt, err = ParseTime("created_at", createdAt); err != nil {
		return models.JobApplication{}, err
	}
	if j.UpdatedAt, err = ParseTime("updated_at", updatedAt); err != nil {
		return models.JobApplication{}, err
	}
	return j, nil
}

const SnapshotColumns = `id, snapshot_date, timezone, schema_version,
	productivity_score, consistency_index, momentum_score, burnout_risk, stress_load, confidence, health,
	journal_exists_today, journal_word_count_today,
	habits_total, habits_active, habits_completed_today, habit_completion_rate_today,
	goals_active, goals_completed, goals_on_track, goals_at_risk, goals_avg_progress,
	jobs_active, jobs_interviewing, jobs_offer, jobs_rejected, pipeline_velocity,
	alert_overdue_goals, alert_habit_streak_break_risk, alert_journal_gap, alert_job_pipeline_stall,
	attention_required, critical_alerts, warning_alerts,
	generated_at, valid_until, computation_duration_ms, data_source_version`

// SnapshotColumnCount is the number of columns in SnapshotColumns.
const SnapshotColumnCount = 38

func SnapshotArgs(s models.Snapshot) []any {
	return []any{s.ID, s.Date, s.Timezone, s.SchemaVersion,
		s.ProductivityScore, s.ConsistencyIndex, s.MomentumScore, s.BurnoutRisk, s.StressLoad, s.Confidence, string(s.Health),
		s.JournalExistsToday, s.JournalWordCountToday,
		s.HabitsTotal, s.HabitsActive, s.HabitsCompletedToday, s.HabitCompletionRate,
		s.GoalsActive, s.GoalsCompleted, s.GoalsOnTrack, s.GoalsAtRisk, s.GoalsAvgProgress,
		s.JobsActive, s.JobsInterviewing, s.JobsOffer, s.JobsRejected, s.PipelineVelocity,
		s.Alerts.OverdueGoals, s.Alerts.HabitStreakBreakRisk, s.Alerts.JournalGap, s.Alerts.JobPipelineStall,
		s.Alerts.AttentionRequired, s.Alerts.CriticalAlerts, s.Alerts.WarningAlerts,
		s.GeneratedAt, s.ValidUntil, s.ComputationDuration, s.DataSourceVersion}
}

func ScanSnapshot(row RowScanner) (models.Snapshot, error) {
	var s models.Snapshot
	var health string
	if err := row.Scan(&s.ID, &s.Date, &s.Timezone, &s.SchemaVersion,
		&s.ProductivityScore, &s.ConsistencyIndex, &s.MomentumScore, &s.BurnoutRisk, &s.StressLoad, &s.Confidence, &health,
		&s.JournalExistsToday, &s.JournalWordCountToday,
		&s.HabitsTotal, &s.HabitsActive, &s.HabitsCompletedToday, &s.HabitCompletionRate,
		&s.GoalsActive, &s.GoalsCompleted, &s.GoalsOnTrack, &s.GoalsAtRisk, &s.GoalsAvgProgress,
		&s.JobsActive, &s.JobsInterviewing, &s.JobsOffer, &s.JobsRejected, &s.PipelineVelocity,
		&s.Alerts.OverdueGoals, &s.Alerts.HabitStreakBreakRisk, &s.Alerts.JournalGap, &s.Alerts.JobPipelineStall,
		&s.Alerts.AttentionRequired, &s.Alerts.CriticalAlerts, &s.Alerts.WarningAlerts,
		&s.GeneratedAt, &s.ValidUntil, &s.ComputationDuration, &s.DataSourceVersion); err != nil {
		return models.Snapshot{}, err
	}

	var err error
	if s.Health, err = models.ParseHealthStatus(health); err != nil {
		return models.Snapshot{}, err
	}
	return s, nil
}
