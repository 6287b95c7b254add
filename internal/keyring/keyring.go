// Package keyring keeps the Postgres connection string in the OS credential
// store so it never has to appear on the command line.
package keyring

import (
	stderrors "errors"
	"os"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
)

// EnvConnection overrides the keyring entry when set.
const EnvConnection = constants.EnvPrefix + "DB_CONNECTION"

var (
	ErrNotFound           = stderrors.New("credentials not found in keyring")
	ErrKeyringUnavailable = stderrors.New("OS keyring is not available")
)

// GetConnectionString reads the stored connection string. A missing entry is
// reported as ErrNotFound with KindNotFound.
func GetConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case err == nil:
		return connStr, nil
	case stderrors.Is(err, gokeyring.ErrNotFound):
		return "", &errors.Error{Kind: errors.KindNotFound, Op: "keyring get", Err: ErrNotFound}
	default:
		return "", &errors.Error{Kind: errors.KindIo, Op: "keyring get", Msg: err.Error(), Err: ErrKeyringUnavailable}
	}
}

func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.Validation("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return errors.Io("keyring set", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if stderrors.Is(err, gokeyring.ErrNotFound) {
		return &errors.Error{Kind: errors.KindNotFound, Op: "keyring delete", Err: ErrNotFound}
	}
	return errors.Io("keyring delete", err)
}

// ResolveConnectionString returns the connection string from the environment,
// falling back to the keyring. ok is false when neither source has one.
func ResolveConnectionString() (connStr string, ok bool, err error) {
	if v := strings.TrimSpace(os.Getenv(EnvConnection)); v != "" {
		return v, true, nil
	}
	connStr, err = GetConnectionString()
	if stderrors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return connStr, true, nil
}

// IsAvailable probes the keyring with a read. An empty keyring still counts.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || stderrors.Is(err, gokeyring.ErrNotFound)
}
