package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
	"github.com/julianstephens/nocturne/internal/utils"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Today     HabitTodayCmd     `cmd:"" help:"Show today's habit status."`
	Log       HabitLogCmd       `cmd:"" help:"Record a habit outcome for a day."`
	Analytics HabitAnalyticsCmd `cmd:"" help:"Show streak, completion and heatmap for a habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Type        string `help:"boolean, quantitative, duration or checklist." default:"boolean"`
	Schedule    string `help:"daily, weekly, custom or interval." default:"daily"`
	Description string `help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Habits().Create(ctx.RunContext(), models.CreateHabitInput{
		Name:         c.Name,
		Description:  c.Description,
		Type:         c.Type,
		ScheduleType: c.Schedule,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Added habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	habits, err := ctx.Habits().List(ctx.RunContext(), c.Archived)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Fprintln(out, "No habits found.")
		return nil
	}

	for _, h := range habits {
		status := ""
		if h.Visibility != models.VisibilityActive {
			status = " [" + strings.ToUpper(string(h.Visibility)) + "]"
		}
		fmt.Fprintf(out, "%s  %s (%s, %s)%s\n", h.ID, h.Name, h.Type, h.ScheduleType, status)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	items, err := ctx.Habits().Today(ctx.RunContext())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "No active habits.")
		return nil
	}

	fmt.Fprintf(out, "Habits for %s:\n\n", ctx.Today())
	recorded := 0
	for _, item := range items {
		mark := "[ ]"
		if item.Log != nil {
			mark = statusMark(item.Log.Status)
			recorded++
		}
		fmt.Fprintf(out, "%s %s\n", mark, item.Habit.Name)
	}
	fmt.Fprintf(out, "\nRecorded: %d/%d\n", recorded, len(items))
	return nil
}

func statusMark(s models.LogStatus) string {
	switch s {
	case models.LogCompleted:
		return "[x]"
	case models.LogPartial:
		return "[~]"
	case models.LogSkipped:
		return "[-]"
	default:
		return "[!]"
	}
}

type HabitLogCmd struct {
	HabitID string   `arg:"" help:"Habit ID."`
	Date    string   `help:"Date in YYYY-MM-DD format (default: today)."`
	Status  string   `help:"completed, partial, skipped or failed." default:"completed"`
	Value   *float64 `help:"Measured value for quantitative or duration habits."`
	Energy  *int     `help:"Energy level 1-10."`
	Mood    string   `help:"Mood label."`
	Note    string   `help:"Optional note."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	day := c.Date
	if day == "" {
		day = ctx.Today()
	}
	log, err := ctx.Habits().Log(ctx.RunContext(), models.CreateHabitLogInput{
		HabitID: c.HabitID,
		LogDate: day,
		Status:  c.Status,
		Value:   c.Value,
		Energy:  c.Energy,
		Mood:    c.Mood,
		Note:    c.Note,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Logged %s for %s\n", log.Status, log.LogDate)
	return nil
}

type HabitAnalyticsCmd struct {
	HabitID string `arg:"" help:"Habit ID."`
	Start   string `help:"First date of the range (default: 29 days before end)."`
	End     string `help:"Last date of the range (default: today)."`
	JSON    bool   `name:"json" help:"Print the analytics as JSON."`
}

func (c *HabitAnalyticsCmd) Run(ctx *cli.Context) error {
	end := c.End
	if end == "" {
		end = ctx.Today()
	}
	start := c.Start
	if start == "" {
		var err error
		if start, err = utils.AddDays(end, -29); err != nil {
			return errors.Validation("invalid end date %q: expected YYYY-MM-DD", end)
		}
	}

	a, err := ctx.Habits().Analytics(ctx.RunContext(), c.HabitID, start, end)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(a)
	}

	out := ctx.Writer()
	fmt.Fprintln(out, cli.TitleStyle.Render(fmt.Sprintf("Habit %s, %s to %s", a.HabitID, a.StartDate, a.EndDate)))
	fmt.Fprintln(out, cli.Row("Current streak", fmt.Sprintf("%d day(s)", a.CurrentStreak)))
	fmt.Fprintln(out, cli.Row("Completion rate", fmt.Sprintf("%.0f%%", a.CompletionRate*100)))
	fmt.Fprintln(out, cli.Row("Consistency score", fmt.Sprintf("%.1f", a.ConsistencyScore)))
	fmt.Fprintln(out, cli.Row("Logged days", heatmapRow(a.Heatmap)))
	return nil
}

// heatmapRow draws one cell per logged day: full, half or empty.
func heatmapRow(days []models.HeatmapDay) string {
	if len(days) == 0 {
		return cli.MutedStyle.Render("none")
	}
	var b strings.Builder
	for _, d := range days {
		switch {
		case d.Intensity >= 1:
			b.WriteString("█")
		case d.Intensity > 0:
			b.WriteString("▒")
		default:
			b.WriteString("·")
		}
	}
	return b.String()
}
