package engine

import (
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

// State is the full set of life clock values for one birth date at one instant.
// States are values: Tick returns a new State and never modifies the receiver.
type State struct {
	Birth         BirthRecord
	Age           AgeSnapshot
	Countdown     CountdownSnapshot
	Life          LifeProjection
	BirthdayToday bool
}

// Recompute evaluates every value from birth and now. It is the reference the
// incremental Tick path must agree with.
func Recompute(birth BirthRecord, now time.Time) (State, error) {
	age, err := ComputeAge(birth, now)
	if err != nil {
		return State{}, err
	}

	return State{
		Birth:         birth,
		Age:           age,
		Countdown:     ComputeCountdown(birth, now),
		Life:          Project(age.Years),
		BirthdayToday: IsBirthdayToday(birth, now),
	}, nil
}

// At is the instant the state was evaluated for.
func (s State) At() time.Time {
	return s.Age.At
}

// Tick advances the state by exactly one second without recomputing the elapsed
// duration from the birth instant.
//
// Integer fields always match Recompute(s.Birth, s.At()+1s). Heartbeats and
// breaths accumulate their fractional rates and stay within one unit of it.
func (s State) Tick() State {
	prev := s.Age.At
	at := prev.Add(config.TickInterval)

	next := s
	next.Age = s.Age.advance(at)

	// Calendar fields only move when the date does; the borrow chain is
	// re-anchored on the new date, together with everything derived from it.
	if !sameDate(prev, at) {
		cal := CalendarBreakdown(s.Birth, at)
		next.Age.Years, next.Age.Months, next.Age.Days = cal.Years, cal.Months, cal.Days
		next.Life = Project(cal.Years)
		next.BirthdayToday = IsBirthdayToday(s.Birth, at)
	}

	next.Countdown = s.Countdown.decrement()
	if next.Countdown.IsZero() {
		next.Countdown = ComputeCountdown(s.Birth, at)
	}

	return next
}

// advance applies one second to the display fields and the total counters.
// Each carry gates the next one.
func (a AgeSnapshot) advance(at time.Time) AgeSnapshot {
	a.At = at

	a.Seconds = (a.Seconds + 1) % config.SecondsPerMinute
	if a.Seconds == 0 {
		a.Minutes = (a.Minutes + 1) % config.MinutesPerHour
		if a.Minutes == 0 {
			a.Hours = (a.Hours + 1) % config.HoursPerDay
		}
	}

	t := &a.Total
	t.Seconds++
	if t.Seconds%config.SecondsPerMinute == 0 {
		t.Minutes++
		if t.Minutes%config.MinutesPerHour == 0 {
			t.Hours++
			if t.Hours%config.HoursPerDay == 0 {
				t.Days++
			}
		}
	}

	t.Heartbeats += config.HeartbeatsPerSecond
	t.Breaths += config.BreathsPerSecond
	t.SleepDays = sleepDays(t.Days)

	return a
}

// decrement removes one second from the countdown, borrowing upwards.
// A zero countdown stays at zero.
func (c CountdownSnapshot) decrement() CountdownSnapshot {
	if c.IsZero() {
		return c
	}

	c.Seconds--
	if c.Seconds < 0 {
		c.Seconds = config.SecondsPerMinute - 1
		c.Minutes--
		if c.Minutes < 0 {
			c.Minutes = config.MinutesPerHour - 1
			c.Hours--
			if c.Hours < 0 {
				c.Hours = config.HoursPerDay - 1
				c.Days--
			}
		}
	}
	return c
}
