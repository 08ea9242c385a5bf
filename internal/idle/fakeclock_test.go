package idle

import (
	"time"
)

// fakeClock fires callbacks synchronously inside Advance, earliest first,
// with ties in the order they were armed.
type fakeClock struct {
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *fakeClock
	at    time.Time
	seq   int
	f     func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2030, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	return t.clock.remove(t)
}

func (c *fakeClock) remove(t *fakeTimer) bool {
	for i, p := range c.timers {
		if p == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, firing every timer due on the way.
func (c *fakeClock) Advance(d time.Duration) {
	end := c.now.Add(d)
	for {
		next := c.nextDue(end)
		if next == nil {
			break
		}
		c.remove(next)
		c.now = next.at
		next.f()
	}
	c.now = end
}

// AdvanceTo moves the clock to offset from start.
func (c *fakeClock) AdvanceTo(start time.Time, offset time.Duration) {
	c.Advance(start.Add(offset).Sub(c.now))
}

func (c *fakeClock) nextDue(end time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range c.timers {
		if t.at.After(end) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

// Pending is the number of armed timers.
func (c *fakeClock) Pending() int { return len(c.timers) }

type countingTerminator struct{ calls int }

func (c *countingTerminator) Terminate() { c.calls++ }

// newTestGuard wires a guard to a fake clock with synchronous dispatch.
func newTestGuard(cfg Config) (*Guard, *fakeClock, *countingTerminator) {
	clock := newFakeClock()
	term := &countingTerminator{}
	var g *Guard
	g = NewGuard(Options{
		Config:     cfg,
		Clock:      clock,
		Dispatch:   func(ev Event) { g.Handle(ev) },
		Terminator: term,
	})
	return g, clock, term
}
