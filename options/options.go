// Package options holds the process-wide runtime options record mutated by
// the forwarding state machine's command dispatcher and read by the polling
// driver. There's exactly one writer (dispatch of a ++COMMAND message) and
// one reader (the driver loop), both running on the same goroutine in the
// reference deployment; Options still guards its fields with a mutex so a
// future display/notification consumer can read them from another
// goroutine without a data race.
package options

import "sync"

// Default verbosity, matching syslog's LOG_NOTICE.
const DefaultVerbosity = 5

// Default soft-expiry window.
const DefaultExpire = 24 * 60 * 60 // seconds; the Linux build overrides this to three days.

// Options is the process-wide runtime options record described in the data
// model: verbosity, syslog duplication, deletion/forwarding/multipart/header
// toggles, soft expiry, and the daemon version string.
type Options struct {
	mu sync.Mutex

	Verbosity int
	Syslog    bool
	SlowRead  bool
	MayDelete bool
	Forward   bool
	Multipart bool
	Header    bool
	Expire    bool
	Version   string
}

// New returns an Options record with the defaults a fresh driver run starts
// with: deletion, forwarding and expiry enabled, multipart and syslog off,
// verbosity at NOTICE.
func New(version string) *Options {
	return &Options{
		Verbosity: DefaultVerbosity,
		MayDelete: true,
		Forward:   true,
		Expire:    true,
		Version:   version,
	}
}

// Snapshot is a point-in-time, race-free copy of Options' fields.
type Snapshot struct {
	Verbosity int
	Syslog    bool
	SlowRead  bool
	MayDelete bool
	Forward   bool
	Multipart bool
	Header    bool
	Expire    bool
	Version   string
}

// Snapshot takes a consistent copy of the current options.
func (o *Options) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Verbosity: o.Verbosity,
		Syslog:    o.Syslog,
		SlowRead:  o.SlowRead,
		MayDelete: o.MayDelete,
		Forward:   o.Forward,
		Multipart: o.Multipart,
		Header:    o.Header,
		Expire:    o.Expire,
		Version:   o.Version,
	}
}

// SetVerbosity clamps level to 0..7 and applies it.
func (o *Options) SetVerbosity(level int) {
	if level < 0 {
		level = 0
	}
	if level > 7 {
		level = 7
	}
	o.mu.Lock()
	o.Verbosity = level
	o.mu.Unlock()
}

// SetMayDelete toggles the deletion permission.
func (o *Options) SetMayDelete(on bool) {
	o.mu.Lock()
	o.MayDelete = on
	o.mu.Unlock()
}

// SetForward toggles whether unseen messages are forwarded.
func (o *Options) SetForward(on bool) {
	o.mu.Lock()
	o.Forward = on
	o.mu.Unlock()
}

// SetMultipart toggles whether long forwarded bodies are split into
// concatenated SMS rather than truncated.
func (o *Options) SetMultipart(on bool) {
	o.mu.Lock()
	o.Multipart = on
	o.mu.Unlock()
}

// SetHeader toggles whether the sender/timestamp tag is prepended (true) or
// appended (false) to the forwarded body.
func (o *Options) SetHeader(on bool) {
	o.mu.Lock()
	o.Header = on
	o.mu.Unlock()
}

// SetExpire toggles soft expiry of stale cache entries.
func (o *Options) SetExpire(on bool) {
	o.mu.Lock()
	o.Expire = on
	o.mu.Unlock()
}
