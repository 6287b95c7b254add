package system

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/nocturne/internal/cli"
	"github.com/julianstephens/nocturne/internal/errors"
	"github.com/julianstephens/nocturne/internal/keyring"
	"github.com/julianstephens/nocturne/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()

	err := postgres.ValidateConnString(cmd.ConnectionString)
	switch {
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		fmt.Fprintln(out, "⚠ Connection string contains a password; it will be stored in the encrypted OS keyring.")
	case err != nil:
		return err
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Connection string stored in OS keyring")
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			return errors.NotFound("no connection string stored in keyring")
		}
		return err
	}
	fmt.Fprintln(ctx.Writer(), "✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	if !keyring.IsAvailable() {
		fmt.Fprintln(out, "❌ OS keyring is not available on this system")
		return errors.Io("keyring status", keyring.ErrKeyringUnavailable)
	}
	fmt.Fprintln(out, "✓ OS keyring is available")

	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		fmt.Fprintf(out, "✓ Stored connection string: %s\n", MaskPassword(connStr))
	case stderrors.Is(err, keyring.ErrNotFound):
		fmt.Fprintln(out, "ℹ No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

// MaskPassword hides the password of a connection URL or DSN.
func MaskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return u.String()
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
