package errors

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/julianstephens/nocturne/internal/logger"
)

// Kind classifies a failure so callers can react without string matching.
type Kind string

const (
	KindDatabase     Kind = "database"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
	KindIo           Kind = "io"
	KindMigration    Kind = "migration"
	KindUnauthorized Kind = "unauthorized"
)

func (k Kind) label() string {
	switch k {
	case KindDatabase:
		return "Database error"
	case KindValidation:
		return "Validation error"
	case KindNotFound:
		return "Not found"
	case KindIo:
		return "IO error"
	case KindMigration:
		return "Migration error"
	case KindUnauthorized:
		return "Unauthorized"
	default:
		return "Internal error"
	}
}

// Error is a classified application error.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is comparisons by kind.
var (
	ErrDatabase     = &Error{Kind: KindDatabase}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrInternal     = &Error{Kind: KindInternal}
	ErrIo           = &Error{Kind: KindIo}
	ErrMigration    = &Error{Kind: KindMigration}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

func (e *Error) Error() string {
	msg := e.Kind.label()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is a bare kind sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Msg != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first classified error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Database wraps a storage failure. sql.ErrNoRows is reported as NotFound.
// A nil err yields nil.
func Database(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return err
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return &Error{Kind: KindNotFound, Op: op, Err: err}
	}
	return &Error{Kind: KindDatabase, Op: op, Err: err}
}

// Validation reports a rejected input.
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Internal reports an unexpected failure such as a serialization error.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// Io wraps a filesystem failure.
func Io(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIo, Op: op, Err: err}
}

// Migration wraps a schema migration failure.
func Migration(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindMigration, Op: op, Err: err}
}

// Unauthorized reports a rejected credential or connection string.
func Unauthorized(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report logs err and writes it to w with the "Error: " prefix. It returns
// the process exit code: 0 for a nil error, 1 otherwise.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	logger.Error("Command execution failed", "error", err, "kind", KindOf(err))
	fmt.Fprintln(w, Format(err))
	return 1
}
