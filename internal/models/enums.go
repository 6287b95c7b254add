package models

import "fmt"

// Visibility is shared by habits, goals and job applications.
type Visibility string

const (
	VisibilityActive   Visibility = "active"
	VisibilityPaused   Visibility = "paused"
	VisibilityArchived Visibility = "archived"
)

// HabitType describes how a habit is measured.
type HabitType string

const (
	HabitTypeBoolean      HabitType = "boolean"
	HabitTypeQuantitative HabitType = "quantitative"
	HabitTypeDuration     HabitType = "duration"
	HabitTypeChecklist    HabitType = "checklist"
)

// LogStatus is the outcome recorded for a habit on a day.
type LogStatus string

const (
	LogCompleted LogStatus = "completed"
	LogPartial   LogStatus = "partial"
	LogSkipped   LogStatus = "skipped"
	LogFailed    LogStatus = "failed"
)

// GoalType classifies a goal.
type GoalType string

const (
	GoalTypeOutcome     GoalType = "outcome"
	GoalTypeProcess     GoalType = "process"
	GoalTypePerformance GoalType = "performance"
	GoalTypeLearning    GoalType = "learning"
)

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalFailed     GoalStatus = "failed"
	GoalAbandoned  GoalStatus = "abandoned"
)

// JobStatus is the pipeline stage of a job application.
type JobStatus string

const (
	JobDraft        JobStatus = "draft"
	JobApplied      JobStatus = "applied"
	JobInterviewing JobStatus = "interviewing"
	JobOffer        JobStatus = "offer"
	JobRejected     JobStatus = "rejected"
	JobWithdrawn    JobStatus = "withdrawn"
)

// WorkMode is where a job is performed.
type WorkMode string

const (
	WorkOnsite WorkMode = "onsite"
	WorkHybrid WorkMode = "hybrid"
	WorkRemote WorkMode = "remote"
)

// HealthStatus summarises a snapshot's alerts.
type HealthStatus string

const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthWarning   HealthStatus = "warning"
	HealthCritical  HealthStatus = "critical"
)

var (
	visibilities = []Visibility{VisibilityActive, VisibilityPaused, VisibilityArchived}
	habitTypes   = []HabitType{HabitTypeBoolean, HabitTypeQuantitative, HabitTypeDuration, HabitTypeChecklist}
	logStatuses  = []LogStatus{LogCompleted, LogPartial, LogSkipped, LogFailed}
	goalTypes    = []GoalType{GoalTypeOutcome, GoalTypeProcess, GoalTypePerformance, GoalTypeLearning}
	goalStatuses = []GoalStatus{GoalNotStarted, GoalInProgress, GoalCompleted, GoalFailed, GoalAbandoned}
	jobStatuses  = []JobStatus{JobDraft, JobApplied, JobInterviewing, JobOffer, JobRejected, JobWithdrawn}
	workModes    = []WorkMode{WorkOnsite, WorkHybrid, WorkRemote}
	healths      = []HealthStatus{HealthExcellent, HealthGood, HealthWarning, HealthCritical}
)

func parseEnum[T ~string](kind, s string, allowed []T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q: must be one of %v", kind, s, allowed)
}

func ParseVisibility(s string) (Visibility, error) {
	return parseEnum("visibility", s, visibilities)
}

func ParseHabitType(s string) (HabitType, error) {
	return parseEnum("habit type", s, habitTypes)
}

func ParseLogStatus(s string) (LogStatus, error) {
	return parseEnum("log status", s, logStatuses)
}

func ParseGoalType(s string) (GoalType, error) {
	return parseEnum("goal type", s, goalTypes)
}

func ParseGoalStatus(s string) (GoalStatus, error) {
	return parseEnum("goal status", s, goalStatuses)
}

func ParseJobStatus(s string) (JobStatus, error) {
	return parseEnum("job status", s, jobStatuses)
}

// ParseWorkMode accepts an empty string as "not specified".
func ParseWorkMode(s string) (WorkMode, error) {
	if s == "" {
		return "", nil
	}
	return parseEnum("work mode", s, workModes)
}

func ParseHealthStatus(s string) (HealthStatus, error) {
	return parseEnum("health status", s, healths)
}
