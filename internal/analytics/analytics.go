// Package analytics derives habit statistics from daily logs. Every function
// is pure and tolerates logs in any order.
package analytics

import (
	"time"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/models"
)

// CurrentStreak counts consecutive calendar days ending at asOf whose log is
// completed. A missing or non-completed day ends the streak, so a habit with
// no completed log on asOf has a streak of 0. Logs dated after asOf are
// ignored.
func CurrentStreak(logs []models.HabitLog, asOf time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	completed := make(map[string]bool, len(logs))
	for _, l := range logs {
		if l.Status == models.LogCompleted {
			completed[l.LogDate] = true
		}
	}

	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	for completed[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CompletionRate is the fraction of logs that are completed, in [0, 1].
// An empty slice yields exactly 0.
func CompletionRate(logs []models.HabitLog) float64 {
	if len(logs) == 0 {
		return 0
	}

	done := 0
	for _, l := range logs {
		if l.Status == models.LogCompleted {
			done++
		}
	}
	return float64(done) / float64(len(logs))
}

// ConsistencyScore scales CompletionRate to [0, 100].
func ConsistencyScore(logs []models.HabitLog) float64 {
	return CompletionRate(logs) * 100
}

// Heatmap maps each log to one cell, preserving input order.
func Heatmap(logs []models.HabitLog) []models.HeatmapDay {
	days := make([]models.HeatmapDay, 0, len(logs))
	for _, l := range logs {
		cell := models.HeatmapDay{Date: l.LogDate}
		switch l.Status {
		case models.LogCompleted:
			cell.Count = 1
			cell.Intensity = 1.0
		case models.LogPartial:
			cell.Intensity = 0.5
		}
		days = append(days, cell)
	}
	return days
}
