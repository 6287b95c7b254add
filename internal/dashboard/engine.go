// Package dashboard aggregates the journal, habit, goal and job domains into
// cached snapshots.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/storage"
	"github.com/julianstephens/nocturne/internal/utils"
)

var tracer trace.Tracer = otel.Tracer("github.com/julianstephens/nocturne/internal/dashboard")

// Sources are the domain reads a dashboard pass needs.
type Sources struct {
	Journal storage.JournalSource
	Habits  storage.HabitSource
	Goals   storage.GoalSource
	Jobs    storage.JobSource
}

type Engine struct {
	src     Sources
	loc     *time.Location
	now     func() time.Time
	version storage.Versioner
}

func NewEngine(src Sources, opts ...Option) *Engine {
	o := applyOptions(opts)
	return &Engine{src: src, loc: o.loc, now: o.now, version: o.version}
}

// Compute runs one aggregation pass. It reads the four domains concurrently
// and fails as a whole if any read fails. The result is not persisted.
func (e *Engine) Compute(ctx context.Context) (snap models.Snapshot, err error) {
	ctx, span := tracer.Start(ctx, "dashboard.compute")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()
	now := e.now()
	today := utils.DayOf(now, e.loc)
	since := now.Add(-constants.JobStallWindow).UTC().Format(time.RFC3339)

	var (
		journal models.JournalDay
		habits  models.HabitCounts
		goals   models.GoalCounts
		jobs    models.JobCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		journal, err = e.src.Journal.JournalDay(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		habits, err = e.src.Habits.HabitCounts(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = e.src.Goals.GoalCounts(gctx, today)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = e.src.Jobs.JobCounts(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Snapshot{}, err
	}

	version := "unknown"
	if e.version != nil {
		if version, err = e.version.DataVersion(ctx); err != nil {
			return models.Snapshot{}, err
		}
	}

	snap = models.Snapshot{
		ID:            uuid.NewString(),
		Date:          today,
		Timezone:      e.loc.String(),
		SchemaVersion: constants.SnapshotSchemaVersion,

		ProductivityScore: models.Pending(),
		ConsistencyIndex:  models.Pending(),
		MomentumScore:     models.Pending(),
		BurnoutRisk:       models.Pending(),
		StressLoad:        models.Pending(),
		Confidence:        models.Pending(),

		JournalExistsToday:    journal.Entries > 0,
		JournalWordCountToday: journal.WordCount,

		HabitsTotal:          habits.Total,
		HabitsActive:         habits.Active,
		HabitsCompletedToday: habits.CompletedToday,
		HabitCompletionRate:  ratio(habits.CompletedToday, habits.Active),

		GoalsActive:      goals.Active,
		GoalsCompleted:   goals.Completed,
		GoalsOnTrack:     goals.OnTrack,
		GoalsAtRisk:      goals.AtRisk,
		GoalsAvgProgress: goals.AvgProgress,

		JobsActive:       jobs.Active,
		JobsInterviewing: jobs.Interviewing,
		JobsOffer:        jobs.Offer,
		JobsRejected:     jobs.Rejected,
		PipelineVelocity: models.Pending(),

		Alerts: evaluateAlerts(journal, habits, goals, jobs),

		GeneratedAt:       now.Unix(),
		ValidUntil:        now.Add(constants.SnapshotValidity).Unix(),
		DataSourceVersion: version,
	}
	snap.Health = health(snap.Alerts)
	snap.ComputationDuration = time.Since(start).Milliseconds()

	span.SetAttributes(
		attribute.String("snapshot.date", snap.Date),
		attribute.String("snapshot.health", string(snap.Health)),
	)
	return snap, nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// evaluateAlerts raises the attention flags. Overdue goals are critical; the
// other flags are warnings.
func evaluateAlerts(journal models.JournalDay, habits models.HabitCounts, goals models.GoalCounts, jobs models.JobCounts) models.Alerts {
	a := models.Alerts{
		OverdueGoals:         goals.AtRisk > 0,
		JournalGap:           journal.WordCount == 0,
		HabitStreakBreakRisk: habits.Active > habits.CompletedToday,
		JobPipelineStall:     jobs.Active > 0 && jobs.RecentlyUpdated == 0,
	}

	if a.OverdueGoals {
		a.CriticalAlerts++
	}
	for _, warn := range []bool{a.JournalGap, a.HabitStreakBreakRisk, a.JobPipelineStall} {
		if warn {
			a.WarningAlerts++
		}
	}
	a.AttentionRequired = a.CriticalAlerts+a.WarningAlerts > 0
	return a
}

func health(a models.Alerts) models.HealthStatus {
	switch {
	case a.CriticalAlerts > 0:
		return models.HealthCritical
	case a.WarningAlerts >= 2:
		return models.HealthWarning
	case a.WarningAlerts == 1:
		return models.HealthGood
	default:
		return models.HealthExcellent
	}
}
