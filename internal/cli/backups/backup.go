package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return errors.Validation("backups are only supported for SQLite databases")
	}
	path, err := mgr.Create(ctx.RunContext())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Writer(), "✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return errors.Validation("backups are only supported for SQLite databases")
	}
	out := ctx.Writer()

	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.Dir())
	return nil
}
