package goals

import (
	"fmt"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal."`
	List     GoalListCmd     `cmd:"" help:"List active goals."`
	Show     GoalShowCmd     `cmd:"" help:"Show one goal."`
	Progress GoalProgressCmd `cmd:"" help:"Update a goal's progress, status or on-track flag."`
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Type        string `help:"outcome, process, performance or learning." default:"outcome"`
	Category    string `help:"Free-form category."`
	Target      string `help:"Target date in YYYY-MM-DD format."`
	Description string `help:"Optional description."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Goals().Create(ctx.RunContext(), models.CreateGoalInput{
		Title:       c.Title,
		Description: c.Description,
		Type:        c.Type,
		Category:    c.Category,
		TargetDate:  c.Target,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Added goal: %s (%s)\n", g.Title, g.Slug)
	return nil
}

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	goals, err := ctx.Goals().List(ctx.RunContext())
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Fprintln(out, "No active goals.")
		return nil
	}
	for _, g := range goals {
		fmt.Fprintf(out, "%s  %-32s %5.1f%%  %s%s\n", g.ID, g.Title, g.Progress, g.Status, trackMarker(g))
	}
	return nil
}

func trackMarker(g models.Goal) string {
	if g.IsOnTrack {
		return ""
	}
	return " " + cli.WarnStyle.Render("[OFF TRACK]")
}

type GoalShowCmd struct {
	ID   string `arg:"" help:"Goal ID."`
	JSON bool   `name:"json" help:"Print the goal as JSON."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Goals().Get(ctx.RunContext(), c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(g)
	}

	out := ctx.Writer()
	fmt.Fprintln(out, cli.TitleStyle.Render(g.Title))
	fmt.Fprintln(out, cli.Row("Slug", g.Slug))
	fmt.Fprintln(out, cli.Row("Type", string(g.Type)))
	fmt.Fprintln(out, cli.Row("Status", string(g.Status)))
	fmt.Fprintln(out, cli.Row("Progress", fmt.Sprintf("%.1f%%", g.Progress)))
	fmt.Fprintln(out, cli.Row("On track", fmt.Sprint(g.IsOnTrack)))
	if g.TargetDate != "" {
		fmt.Fprintln(out, cli.Row("Target date", g.TargetDate))
	}
	fmt.Fprintln(out, cli.Row("Created", g.CreatedDate))
	return nil
}

type GoalProgressCmd struct {
	ID       string   `arg:"" help:"Goal ID."`
	Percent  *float64 `name:"percent" help:"Progress percentage 0-100."`
	Status   *string  `help:"not_started, in_progress, completed, failed or abandoned."`
	OnTrack  bool     `name:"on-track" help:"Mark the goal as on track."`
	OffTrack bool     `name:"off-track" help:"Mark the goal as off track."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	if c.OnTrack && c.OffTrack {
		return errors.Validation("use either --on-track or --off-track, not both")
	}
	in := models.UpdateGoalInput{ID: c.ID, Progress: c.Percent, Status: c.Status}
	if c.OnTrack || c.OffTrack {
		v := c.OnTrack
		in.IsOnTrack = &v
	}
	if in.Progress == nil && in.Status == nil && in.IsOnTrack == nil {
		return errors.Validation("nothing to update: pass --percent, --status or a track flag")
	}

	g, err := ctx.Goals().Update(ctx.RunContext(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "%s: %.1f%% (%s)\n", g.Title, g.Progress, g.Status)
	return nil
}
