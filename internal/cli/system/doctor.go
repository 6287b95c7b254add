package system

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/utils"
)

type DoctorCmd struct{}

// report prints one check line. Hard failures set failed; warnings do not.
type report struct {
	out    io.Writer
	failed bool
}

func (r *report) check(name string, err error) {
	if err != nil {
		fmt.Fprintf(r.out, "❌ %s: FAIL\n", name)
		fmt.Fprintf(r.out, "   Error: %v\n", err)
		r.failed = true
		return
	}
	fmt.Fprintf(r.out, "✓ %s: OK\n", name)
}

func (r *report) warn(name string, err error) {
	if err != nil {
		fmt.Fprintf(r.out, "⚠ %s: WARNING\n", name)
		fmt.Fprintf(r.out, "   %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "✓ %s: OK\n", name)
}

func (r *report) skip(name, reason string) {
	fmt.Fprintf(r.out, "⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	runCtx := ctx.RunContext()
	r := &report{out: out}

	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	reachErr := checkDBReachable(runCtx, ctx)
	r.check("Database reachable", reachErr)
	dbReachable := reachErr == nil

	dbChecks := []struct {
		name string
		fn   func(context.Context, *cli.Context) error
		soft bool
	}{
		{"Schema version", checkSchemaVersion, false},
		{"Migrations complete", checkMigrationsComplete, false},
		{"Journal scaffold", checkJournalScaffold, true},
		{"Dashboard snapshot", checkSnapshotFresh, true},
	}
	for _, c := range dbChecks {
		switch {
		case !dbReachable:
			r.skip(c.name, "database not reachable")
		case c.soft:
			r.warn(c.name, c.fn(runCtx, ctx))
		default:
			r.check(c.name, c.fn(runCtx, ctx))
		}
	}

	if ctx.BackupManager() == nil {
		r.skip("Backups present", "not a SQLite database")
	} else {
		r.warn("Backups present", checkBackupsPresent(ctx))
	}

	r.check("Clock/timezone", checkClockTimezone(ctx))

	if ctx.Mirror == nil {
		r.skip("Redis mirror", "not configured")
	} else {
		r.warn("Redis mirror", checkMirror(runCtx, ctx))
	}

	fmt.Fprintln(out)
	if r.failed {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return errors.Internal("doctor", fmt.Errorf("one or more health checks failed"))
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func checkDBReachable(runCtx context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	_, err := ctx.Store.DataVersion(runCtx)
	return err
}

func checkSchemaVersion(runCtx context.Context, ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	_, err := m.MigrationStatus(runCtx)
	return err
}

func checkMigrationsComplete(runCtx context.Context, ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus(runCtx)
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("%d pending migration(s), run 'nocturne migrate'", len(st.Pending))
	}
	return nil
}

func checkJournalScaffold(runCtx context.Context, ctx *cli.Context) error {
	today := utils.DayOf(ctx.Now(), ctx.Location)
	dates, err := ctx.Store.PrimaryEntryDates(runCtx, today, today)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		return fmt.Errorf("no journal page for %s - run 'nocturne journal scaffold'", today)
	}
	return nil
}

func checkSnapshotFresh(runCtx context.Context, ctx *cli.Context) error {
	snap, ok, err := ctx.Store.LatestSnapshot(runCtx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no dashboard snapshot yet - run 'nocturne dashboard'")
	}
	if !snap.ValidAt(ctx.Now()) {
		return fmt.Errorf("latest snapshot expired at %s", time.Unix(snap.ValidUntil, 0).Format(time.RFC3339))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.BackupManager().List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'nocturne backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	return nil
}

func checkMirror(runCtx context.Context, ctx *cli.Context) error {
	_, _, err := ctx.Mirror.Latest(runCtx)
	return err
}
