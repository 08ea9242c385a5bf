package idle

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source the guard reads and schedules against.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled callback. Stop reports whether the callback was
// still pending.
type Timer interface {
	Stop() bool
}

// NewClock adapts a clockwork clock.
func NewClock(c clockwork.Clock) Clock {
	return clockworkClock{c: c}
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return NewClock(clockwork.NewRealClock())
}

type clockworkClock struct {
	c clockwork.Clock
}

func (cc clockworkClock) Now() time.Time { return cc.c.Now() }

func (cc clockworkClock) AfterFunc(d time.Duration, f func()) Timer {
	return cc.c.AfterFunc(d, f)
}
