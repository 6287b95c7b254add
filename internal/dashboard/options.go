package dashboard

import (
	"time"

	"github.com/julianstephens/nocturne/internal/storage"
)

type options struct {
	loc     *time.Location
	now     func() time.Time
	version storage.Versioner
	mirror  Mirror
}

// Option configures an Engine or a Cache. Options that do not apply to the
// value being built are ignored.
type Option func(*options)

// WithLocation sets the timezone that decides the snapshot date.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDataVersion records which backend produced each snapshot.
func WithDataVersion(v storage.Versioner) Option {
	return func(o *options) { o.version = v }
}

// WithMirror shares the latest snapshot with other processes.
func WithMirror(m Mirror) Option {
	return func(o *options) { o.mirror = m }
}

func applyOptions(opts []Option) options {
	o := options{loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
