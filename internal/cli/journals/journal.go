package journals

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/models"
)

type JournalCmd struct {
	Add      JournalAddCmd      `cmd:"" help:"Write a journal page for a day."`
	List     JournalListCmd     `cmd:"" help:"List primary pages, newest first."`
	Show     JournalShowCmd     `cmd:"" help:"Show one page."`
	Edit     JournalEditCmd     `cmd:"" help:"Edit a page."`
	Subpages struct {
		List JournalSubpageListCmd `cmd:"" help:"List the sub-pages of a page." default:"withargs"`
		Add  JournalSubpageAddCmd  `cmd:"" help:"Add a sub-page."`
	} `cmd:"" help:"Manage sub-pages."`
	Scaffold JournalScaffoldCmd `cmd:"" help:"Create an empty page for every day of a year."`
}

// body resolves the --content/--text pair into a JSON document and a word
// count. Plain text becomes a single paragraph.
func body(content, text string) (string, int, error) {
	if content != "" && text != "" {
		return "", 0, errors.Validation("use either --content or --text, not both")
	}
	if text == "" {
		return content, 0, nil
	}
	doc := []map[string]any{{
		"type":    "paragraph",
		"content": []map[string]string{{"type": "text", "text": text}},
	}}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", 0, errors.Internal("encode journal text", err)
	}
	return string(raw), len(strings.Fields(text)), nil
}

type JournalAddCmd struct {
	Date       string `help:"Date in YYYY-MM-DD format (default: today)."`
	Title      string `help:"Page title (default: Reflection: <date>)."`
	Text       string `help:"Plain-text body."`
	Content    string `help:"Body as a JSON block document."`
	MoodLabel  string `name:"mood-label" help:"Mood label."`
	Mood       *int   `help:"Mood rating 1-10."`
	Energy     *int   `help:"Energy level 1-10."`
	Stress     *int   `help:"Stress level 1-10."`
	Importance *int   `help:"Importance 1-10."`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	day := c.Date
	if day == "" {
		day = ctx.Today()
	}
	content, words, err := body(c.Content, c.Text)
	if err != nil {
		return err
	}
	if content == "" {
		content = constants.EmptyJournalContent
	}

	entry, err := ctx.Journal().Create(ctx.RunContext(), models.CreateJournalInput{
		EntryDate:  day,
		Title:      c.Title,
		Content:    content,
		WordCount:  words,
		MoodLabel:  c.MoodLabel,
		MoodRating: c.Mood,
		Energy:     c.Energy,
		Stress:     c.Stress,
		Importance: c.Importance,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Added journal page %q (%s)\n", entry.Title, entry.ID)
	return nil
}

type JournalListCmd struct {
	Limit int `help:"Maximum number of pages to show (0 for all)." default:"14"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	entries, err := ctx.Journal().List(ctx.RunContext(), c.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journal pages found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-32s %5d words  %s\n", e.EntryDate, e.Title, e.WordCount, cli.MutedStyle.Render(e.ID))
	}
	return nil
}

type JournalShowCmd struct {
	ID   string `arg:"" help:"Page ID."`
	JSON bool   `name:"json" help:"Print the page as JSON."`
}

func (c *JournalShowCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Journal().Get(ctx.RunContext(), c.ID)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(e)
	}

	out := ctx.Writer()
	fmt.Fprintln(out, cli.TitleStyle.Render(e.Title))
	fmt.Fprintln(out, cli.Row("Date", fmt.Sprintf("%s (week %d, day %d)", e.EntryDate, e.Week, e.Weekday)))
	fmt.Fprintln(out, cli.Row("Words", fmt.Sprint(e.WordCount)))
	if e.MoodLabel != "" {
		fmt.Fprintln(out, cli.Row("Mood", e.MoodLabel))
	}
	for _, r := range []struct {
		label string
		v     *int
	}{
		{"Mood rating", e.MoodRating},
		{"Energy", e.Energy},
		{"Stress", e.Stress},
		{"Importance", e.Importance},
	} {
		if r.v != nil {
			fmt.Fprintln(out, cli.Row(r.label, fmt.Sprintf("%d/10", *r.v)))
		}
	}
	if e.ParentPageID != "" {
		fmt.Fprintln(out, cli.Row("Parent", e.ParentPageID))
	}
	fmt.Fprintln(out, e.Content)
	return nil
}

type JournalEditCmd struct {
	ID         string  `arg:"" help:"Page ID."`
	Title      *string `help:"New title."`
	Text       string  `help:"Replace the body with plain text."`
	Content    string  `help:"Replace the body with a JSON block document."`
	Words      *int    `help:"Override the word count."`
	MoodLabel  *string `name:"mood-label" help:"Mood label."`
	Mood       *int    `help:"Mood rating 1-10."`
	Energy     *int    `help:"Energy level 1-10."`
	Stress     *int    `help:"Stress level 1-10."`
	Importance *int    `help:"Importance 1-10."`
}

func (c *JournalEditCmd) Run(ctx *cli.Context) error {
	in := models.UpdateJournalInput{
		ID:         c.ID,
		Title:      c.Title,
		WordCount:  c.Words,
		MoodLabel:  c.MoodLabel,
		MoodRating: c.Mood,
		Energy:     c.Energy,
		Stress:     c.Stress,
		Importance: c.Importance,
	}

	content, words, err := body(c.Content, c.Text)
	if err != nil {
		return err
	}
	if content != "" {
		in.Content = &content
		if c.Text != "" && in.WordCount == nil {
			in.WordCount = &words
		}
	}

	entry, err := ctx.Journal().Update(ctx.RunContext(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Updated journal page %q\n", entry.Title)
	return nil
}

type JournalSubpageListCmd struct {
	ParentID string `arg:"" help:"Parent page ID."`
}

func (c *JournalSubpageListCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	pages, err := ctx.Journal().SubPages(ctx.RunContext(), c.ParentID)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintln(out, "No sub-pages.")
		return nil
	}
	for _, p := range pages {
		fmt.Fprintf(out, "%s  %s\n", p.ID, p.Title)
	}
	return nil
}

type JournalSubpageAddCmd struct {
	ParentID string `arg:"" help:"Parent page ID."`
	Title    string `arg:"" help:"Sub-page title."`
	Text     string `help:"Plain-text body."`
	Content  string `help:"Body as a JSON block document."`
}

func (c *JournalSubpageAddCmd) Run(ctx *cli.Context) error {
	content, _, err := body(c.Content, c.Text)
	if err != nil {
		return err
	}
	page, err := ctx.Journal().AddSubPage(ctx.RunContext(), models.CreateSubPageInput{
		ParentPageID: c.ParentID,
		Title:        c.Title,
		Content:      content,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "Added sub-page %q (%s)\n", page.Title, page.ID)
	return nil
}

type JournalScaffoldCmd struct {
	Year int `help:"Year to scaffold (default: current year)."`
}

func (c *JournalScaffoldCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Now().In(ctx.Loc()).Year()
	}
	runCtx := ctx.RunContext()
	ctx.PerformAutomaticBackup(runCtx)

	created, err := ctx.Scaffolder().EnsureYearlyEntries(runCtx, year)
	if err != nil {
		return err
	}
	if created == 0 {
		fmt.Fprintf(ctx.Writer(), "Journal for %d is already complete\n", year)
		return nil
	}
	fmt.Fprintf(ctx.Writer(), "✓ Created %d journal page(s) for %d\n", created, year)
	return nil
}
