// Package idle logs an authenticated operator out after a period without
// input. A session moves ACTIVE -> WARNING after the inactivity timeout,
// counts down for the warning period, and ends TERMINATED unless the
// operator stays or touches an input device.
//
// The transitions live in Step, a pure function. Guard applies its effects
// against a Clock, and Loop serializes every event onto one goroutine.
package idle

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseWarning
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseWarning:
		return "warning"
	case PhaseTerminated:
		return "terminated"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Config holds the guard's timings.
type Config struct {
	InactivityTimeout time.Duration
	WarningPeriod     time.Duration
	TickInterval      time.Duration
	Debounce          time.Duration
}

// DefaultConfig is five minutes of inactivity followed by a thirty second
// countdown in one second steps.
func DefaultConfig() Config {
	return Config{
		InactivityTimeout: 5 * time.Minute,
		WarningPeriod:     30 * time.Second,
		TickInterval:      time.Second,
		Debounce:          time.Second,
	}
}

// Validate checks that every duration is usable and that the warning period
// is a whole number of ticks.
func (c Config) Validate() error {
	var errs []error
	if c.InactivityTimeout <= 0 {
		errs = append(errs, fmt.Errorf("inactivity timeout must be positive, got %s", c.InactivityTimeout))
	}
	if c.WarningPeriod <= 0 {
		errs = append(errs, fmt.Errorf("warning period must be positive, got %s", c.WarningPeriod))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	} else if c.WarningPeriod > 0 && c.WarningPeriod%c.TickInterval != 0 {
		errs = append(errs, fmt.Errorf("warning period %s is not a multiple of tick interval %s", c.WarningPeriod, c.TickInterval))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}
	return errors.Join(errs...)
}

// Countdown is the number of ticks in the warning period.
func (c Config) Countdown() int {
	if c.TickInterval <= 0 {
		return 0
	}
	return int(c.WarningPeriod / c.TickInterval)
}

// State is the liveness of one session. Epoch increases on every phase
// entry and on every inactivity restart; timers carry the epoch they were
// armed in.
type State struct {
	Phase            Phase
	LastActivityAt   time.Time
	SecondsRemaining int
	Epoch            uint64
}

// EventKind names what happened.
type EventKind int

const (
	EventActivity EventKind = iota + 1
	EventStay
	EventLogoutNow
	EventInactivityElapsed
	EventTick
	EventHardDeadline
)

func (k EventKind) String() string {
	switch k {
	case EventActivity:
		return "activity"
	case EventStay:
		return "stay"
	case EventLogoutNow:
		return "logout_now"
	case EventInactivityElapsed:
		return "inactivity_elapsed"
	case EventTick:
		return "tick"
	case EventHardDeadline:
		return "hard_deadline"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// fromTimer reports whether events of this kind come from an armed timer.
func (k EventKind) fromTimer() bool {
	return k == EventInactivityElapsed || k == EventTick || k == EventHardDeadline
}

// Event is one input to Step. Epoch is only meaningful for timer events.
type Event struct {
	Kind  EventKind
	At    time.Time
	Epoch uint64
}

// Activity is a user interaction observed at at.
func Activity(at time.Time) Event { return Event{Kind: EventActivity, At: at} }

// Stay is the operator choosing to keep the session from the warning.
func Stay(at time.Time) Event { return Event{Kind: EventStay, At: at} }

// LogoutNow is the operator choosing to end the session from the warning.
func LogoutNow(at time.Time) Event { return Event{Kind: EventLogoutNow, At: at} }

// TimerKind identifies one of the three guard timers.
type TimerKind int

const (
	TimerInactivity TimerKind = iota
	TimerTick
	TimerHardDeadline

	numTimers
)

func (t TimerKind) String() string {
	switch t {
	case TimerInactivity:
		return "inactivity"
	case TimerTick:
		return "tick"
	case TimerHardDeadline:
		return "hard_deadline"
	}
	return fmt.Sprintf("timer(%d)", int(t))
}

func (t TimerKind) event() EventKind {
	switch t {
	case TimerTick:
		return EventTick
	case TimerHardDeadline:
		return EventHardDeadline
	default:
		return EventInactivityElapsed
	}
}

// EffectKind is what the guard must do after a step.
type EffectKind int

const (
	EffectCancel EffectKind = iota + 1
	EffectArm
	EffectTerminate
)

// Effect is one side effect of a step, applied in order.
type Effect struct {
	Kind  EffectKind
	Timer TimerKind
	After time.Duration
	Epoch uint64
}

func cancel(t TimerKind) Effect { return Effect{Kind: EffectCancel, Timer: t} }

func arm(t TimerKind, after time.Duration, epoch uint64) Effect {
	return Effect{Kind: EffectArm, Timer: t, After: after, Epoch: epoch}
}

// Initial is the state of a freshly authenticated session at now, with the
// inactivity timer to arm.
func Initial(cfg Config, now time.Time) (State, []Effect) {
	s := State{
		Phase:            PhaseActive,
		LastActivityAt:   now,
		SecondsRemaining: cfg.Countdown(),
		Epoch:            1,
	}
	return s, []Effect{arm(TimerInactivity, cfg.InactivityTimeout, s.Epoch)}
}

// Step is the transition function. It never mutates s and returns the
// effects the caller must apply in order. TERMINATED is absorbing, and a
// timer event from an earlier epoch is ignored.
func Step(cfg Config, s State, ev Event) (State, []Effect) {
	if s.Phase == PhaseTerminated {
		return s, nil
	}
	if ev.Kind.fromTimer() && ev.Epoch != s.Epoch {
		return s, nil
	}
	switch s.Phase {
	case PhaseActive:
		return stepActive(cfg, s, ev)
	case PhaseWarning:
		return stepWarning(cfg, s, ev)
	}
	return s, nil
}

func stepActive(cfg Config, s State, ev Event) (State, []Effect) {
	switch ev.Kind {
	case EventActivity:
		if !qualifies(cfg, s, ev.At) {
			return s, nil
		}
		s.LastActivityAt = ev.At
		s.Epoch++
		return s, []Effect{
			cancel(TimerInactivity),
			arm(TimerInactivity, cfg.InactivityTimeout, s.Epoch),
		}
	case EventInactivityElapsed:
		s.Phase = PhaseWarning
		s.SecondsRemaining = cfg.Countdown()
		s.Epoch++
		return s, []Effect{
			cancel(TimerInactivity),
			arm(TimerTick, cfg.TickInterval, s.Epoch),
			arm(TimerHardDeadline, cfg.WarningPeriod, s.Epoch),
		}
	}
	// Stay and LogoutNow only mean something while the warning is shown.
	return s, nil
}

func stepWarning(cfg Config, s State, ev Event) (State, []Effect) {
	switch ev.Kind {
	case EventActivity:
		if !qualifies(cfg, s, ev.At) {
			return s, nil
		}
		return resetToActive(cfg, s, ev.At)
	case EventStay:
		return resetToActive(cfg, s, ev.At)
	case EventTick:
		s.SecondsRemaining--
		if s.SecondsRemaining <= 0 {
			return terminate(s)
		}
		return s, []Effect{arm(TimerTick, cfg.TickInterval, s.Epoch)}
	case EventHardDeadline, EventLogoutNow:
		return terminate(s)
	}
	return s, nil
}

// qualifies reports whether an interaction at at is past the debounce
// window. Debounced events do not move LastActivityAt.
func qualifies(cfg Config, s State, at time.Time) bool {
	return at.Sub(s.LastActivityAt) > cfg.Debounce
}

func resetToActive(cfg Config, s State, at time.Time) (State, []Effect) {
	s.Phase = PhaseActive
	s.LastActivityAt = at
	s.SecondsRemaining = cfg.Countdown()
	s.Epoch++
	return s, []Effect{
		cancel(TimerTick),
		cancel(TimerHardDeadline),
		arm(TimerInactivity, cfg.InactivityTimeout, s.Epoch),
	}
}

func terminate(s State) (State, []Effect) {
	s.Phase = PhaseTerminated
	s.SecondsRemaining = 0
	s.Epoch++
	return s, []Effect{
		cancel(TimerInactivity),
		cancel(TimerTick),
		cancel(TimerHardDeadline),
		{Kind: EffectTerminate},
	}
}
