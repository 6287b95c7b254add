package jobs

import (
	"fmt"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/models"
)

type JobCmd struct {
	Add    JobAddCmd    `cmd:"" help:"Track a job application."`
	List   JobListCmd   `cmd:"" help:"List active applications."`
	Show   JobShowCmd   `cmd:"" help:"Show one application."`
	Status JobStatusCmd `cmd:"" help:"Move an application to another stage."`
}

type JobAddCmd struct {
	Company    string `arg:"" help:"Company name."`
	Title      string `arg:"" help:"Role title."`
	Level      string `help:"junior, mid, senior, staff or lead."`
	Employment string `help:"Employment type, e.g. full-time."`
	WorkMode   string `name:"work-mode" help:"onsite, hybrid or remote."`
	URL        string `name:"url" help:"Posting URL."`
}

func (c *JobAddCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Jobs().Create(ctx.RunContext(), models.CreateJobInput{
		Title:          c.Title,
		Company:        c.Company,
		Level:          c.Level,
		EmploymentType: c.Employment,
		WorkMode:       c.WorkMode,
		PostingURL:     c.URL,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Added application: %s at %s (%s)\n", j.Title, j.Company, j.Slug)
	return nil
}

type JobListCmd struct{}

func (c *JobListCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	jobs, err := ctx.Jobs().List(ctx.RunContext())
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No active applications.")
		return nil
	}
	for _, j := range jobs {
		fmt.Fprintf(out, "%s  %-20s %-28s %s\n", j.ID, j.Company, j.Title, statusStyle(j.Status))
	}
	return nil
}

func statusStyle(s models.JobStatus) string {
	switch s {
	case models.JobOffer:
		return cli.OKStyle.Render(string(s))
	case models.JobInterviewing:
		return cli.WarnStyle.Render(string(s))
	case models.JobRejected, models.JobWithdrawn:
		return cli.MutedStyle.Render(string(s))
	default:
		return string(s)
	}
}

type JobShowCmd struct {
	ID   string `arg:"" help:"Application ID."`
	JSON bool   `name:"json" help:"Print the application as JSON."`
}

func (c *JobShowCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Jobs().Get(ctx.RunContext(), c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(j)
	}

	out := ctx.Writer()
	fmt.Fprintln(out, cli.TitleStyle.Render(j.Title+" at "+j.Company))
	fmt.Fprintln(out, cli.Row("Slug", j.Slug))
	fmt.Fprintln(out, cli.Row("Status", statusStyle(j.Status)))
	for _, r := range [][2]string{
		{"Level", j.Level},
		{"Employment", j.EmploymentType},
		{"Work mode", string(j.WorkMode)},
		{"Posting", j.PostingURL},
	} {
		if r[1] != "" {
			fmt.Fprintln(out, cli.Row(r[0], r[1]))
		}
	}
	fmt.Fprintln(out, cli.Row("Created", j.CreatedDate))
	return nil
}

type JobStatusCmd struct {
	ID     string `arg:"" help:"Application ID."`
	Status string `arg:"" help:"draft, applied, interviewing, offer, rejected or withdrawn."`
}

func (c *JobStatusCmd) Run(ctx *cli.Context) error {
	j, err := ctx.Jobs().UpdateStatus(ctx.RunContext(), models.UpdateJobStatusInput{ID: c.ID, Status: c.Status})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "%s at %s is now %s\n", j.Title, j.Company, j.Status)
	return nil
}
