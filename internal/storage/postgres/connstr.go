package postgres

import (
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/nocturne/internal/constants"
	"github.com/julianstephens/nocturne/internal/errors"
)

var (
	ErrInvalidConnectionString = stderrors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = stderrors.New("connection string must not contain a password")
)

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// withSearchPath pins search_path to the application schema unless the caller
// already chose one.
func withSearchPath(connStr string) (string, error) {
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String(), nil
	}

	if hasDSNParam(connStr, "search_path") {
		return connStr, nil
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName, nil
}

// hasDSNParam reports whether a key=value style connection string sets key
// (case-insensitive).
func hasDSNParam(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks URL and DSN forms for an sslmode parameter.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNParam(connStr, "sslmode")
}

// ValidateConnString checks that connStr is a usable PostgreSQL URI or DSN
// that carries no password. Passwords belong in PGPASSWORD or ~/.pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.Validation("%v: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return errors.Validation("%v: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return errors.Validation("%v: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return &errors.Error{Kind: errors.KindUnauthorized, Err: ErrEmbeddedCredentials}
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return errors.Validation("%v: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if hasDSNParam(connStr, "password") {
		return &errors.Error{Kind: errors.KindUnauthorized, Err: ErrEmbeddedCredentials}
	}
	return nil
}
