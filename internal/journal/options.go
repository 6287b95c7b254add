package journal

import "time"

type options struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Scaffolder or Service.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLocation sets the timezone that decides what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
