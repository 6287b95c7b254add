package dashboards

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/dashboard"
	"github.com/julianstephens/nocturne/internal/models"
)

type ShowCmd struct {
	Refresh bool `help:"Recompute the snapshot even if the cached one is still valid."`
	JSON    bool `name:"json" help:"Print the snapshot as JSON."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Dashboard().Get(ctx.RunContext(), c.Refresh)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(snap)
	}
	fmt.Fprintln(ctx.Writer(), Render(snap))
	return nil
}

type PruneCmd struct {
	KeepDays int `name:"keep-days" help:"Keep snapshots from the last N days (default from config)."`
}

func (c *PruneCmd) Run(ctx *cli.Context) error {
	keep := c.KeepDays
	if keep == 0 && ctx.Config != nil {
		keep = ctx.Config.SnapshotRetentionDays
	}
	removed, err := dashboard.Prune(ctx.RunContext(), ctx.Store, keep, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "✓ Pruned %d snapshot(s) older than %d days\n", removed, keep)
	return nil
}

// Render lays a snapshot out as titled sections.
func Render(s models.Snapshot) string {
	title := cli.TitleStyle.Render(fmt.Sprintf("Dashboard %s (%s)", s.Date, s.Timezone))
	healthLine := cli.Row("Health", cli.HealthStyle(s.Health).Render(string(s.Health)))

	scores := section("Scores",
		cli.Row("Productivity", cli.RenderMetric(s.ProductivityScore)),
		cli.Row("Consistency", cli.RenderMetric(s.ConsistencyIndex)),
		cli.Row("Momentum", cli.RenderMetric(s.MomentumScore)),
		cli.Row("Burnout risk", cli.RenderMetric(s.BurnoutRisk)),
		cli.Row("Stress load", cli.RenderMetric(s.StressLoad)),
		cli.Row("Confidence", cli.RenderMetric(s.Confidence)),
	)

	journal := section("Journal",
		cli.Row("Written today", yesNo(s.JournalExistsToday)),
		cli.Row("Words today", fmt.Sprint(s.JournalWordCountToday)),
	)

	habits := section("Habits",
		cli.Row("Completed today", fmt.Sprintf("%d / %d", s.HabitsCompletedToday, s.HabitsActive)),
		cli.Row("Completion rate", fmt.Sprintf("%.0f%%", s.HabitCompletionRate*100)),
		cli.Row("Tracked", fmt.Sprint(s.HabitsTotal)),
	)

	goals := section("Goals",
		cli.Row("Active", fmt.Sprint(s.GoalsActive)),
		cli.Row("Completed", fmt.Sprint(s.GoalsCompleted)),
		cli.Row("On track", fmt.Sprint(s.GoalsOnTrack)),
		cli.Row("At risk", fmt.Sprint(s.GoalsAtRisk)),
		cli.Row("Average progress", fmt.Sprintf("%.1f%%", s.GoalsAvgProgress)),
	)

	jobs := section("Jobs",
		cli.Row("Active", fmt.Sprint(s.JobsActive)),
		cli.Row("Interviewing", fmt.Sprint(s.JobsInterviewing)),
		cli.Row("Offers", fmt.Sprint(s.JobsOffer)),
		cli.Row("Rejected", fmt.Sprint(s.JobsRejected)),
		cli.Row("Pipeline velocity", cli.RenderMetric(s.PipelineVelocity)),
	)

	footer := cli.MutedStyle.Render(fmt.Sprintf("generated %s · valid until %s · %dms · %s",
		time.Unix(s.GeneratedAt, 0).Format(time.RFC3339),
		time.Unix(s.ValidUntil, 0).Format(time.RFC3339),
		s.ComputationDuration, s.DataSourceVersion))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		healthLine,
		alerts(s.Alerts),
		scores, journal, habits, goals, jobs,
		footer,
	)
}

func section(name string, rows ...string) string {
	body := cli.TitleStyle.Render(name) + "\n" + strings.Join(rows, "\n")
	return cli.SectionStyle.Render(body)
}

func alerts(a models.Alerts) string {
	if !a.AttentionRequired {
		return cli.OKStyle.Render("No alerts")
	}
	var lines []string
	if a.OverdueGoals {
		lines = append(lines, cli.ErrorStyle.Render("● goals past their target date"))
	}
	if a.HabitStreakBreakRisk {
		lines = append(lines, cli.WarnStyle.Render("● habits still open today"))
	}
	if a.JournalGap {
		lines = append(lines, cli.WarnStyle.Render("● nothing journaled today"))
	}
	if a.JobPipelineStall {
		lines = append(lines, cli.WarnStyle.Render("● no job application updated in two weeks"))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
