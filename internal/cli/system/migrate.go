package system

import (
	"fmt"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/errors"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version and pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return errors.Validation("storage backend does not support migrations")
	}
	out := ctx.Writer()
	runCtx := ctx.RunContext()

	st, err := m.MigrationStatus(runCtx)
	if err != nil {
		return err
	}
	if c.Status {
		fmt.Fprintf(out, "Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, p := range st.Pending {
			fmt.Fprintf(out, "  pending %03d %s\n", p.Version, p.Name)
		}
		return nil
	}

	if len(st.Pending) > 0 {
		ctx.PerformAutomaticBackup(runCtx)
	}
	applied, err := m.Migrate(runCtx, func(msg string) {
		fmt.Fprintln(out, msg)
	})
	if err != nil {
		return err
	}
	if applied > 0 {
		fmt.Fprintf(out, "✓ Applied %d migration(s)\n", applied)
	}
	return nil
}
