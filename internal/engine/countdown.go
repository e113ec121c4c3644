package engine

import (
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

// CountdownSnapshot is the time left until Target, the next anniversary.
type CountdownSnapshot struct {
	Target time.Time

	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Remaining reassembles the countdown fields into a duration (whole seconds).
func (c CountdownSnapshot) Remaining() time.Duration {
	return time.Duration(c.Days)*24*time.Hour +
		time.Duration(c.Hours)*time.Hour +
		time.Duration(c.Minutes)*time.Minute +
		time.Duration(c.Seconds)*time.Second
}

// IsZero reports whether every field of the countdown is zero.
func (c CountdownSnapshot) IsZero() bool {
	return c.Days == 0 && c.Hours == 0 && c.Minutes == 0 && c.Seconds == 0
}

// NextAnniversary returns midnight of the birth month/day in now's year, or in the
// following year when now is already past it.
//
// time.Date normalizes Feb 29 to March 1st when the target year is not a leap year.
func NextAnniversary(birth BirthRecord, now time.Time) time.Time {
	loc := now.Location()
	candidate := time.Date(now.Year(), birth.Month, birth.Day, 0, 0, 0, 0, loc)
	if now.After(candidate) {
		candidate = time.Date(now.Year()+1, birth.Month, birth.Day, 0, 0, 0, 0, loc)
	}
	return candidate
}

// ComputeCountdown returns the countdown from now to the next anniversary.
// A countdown that would read zero belongs to an anniversary that has just been
// reached, so it is computed once more against the following year.
func ComputeCountdown(birth BirthRecord, now time.Time) CountdownSnapshot {
	target := NextAnniversary(birth, now)
	cd := countdownTo(target, now)
	if cd.IsZero() {
		target = time.Date(target.Year()+1, birth.Month, birth.Day, 0, 0, 0, 0, now.Location())
		cd = countdownTo(target, now)
	}
	return cd
}

func countdownTo(target, now time.Time) CountdownSnapshot {
	raw := Diff(now, target)
	return CountdownSnapshot{
		Target:  target,
		Days:    int(raw.TotalDays),
		Hours:   int(raw.TotalHours % config.HoursPerDay),
		Minutes: int(raw.TotalMinutes % config.MinutesPerHour),
		Seconds: int(raw.TotalSeconds % config.SecondsPerMinute),
	}
}

// IsBirthdayToday reports whether now falls on the birth month and day.
func IsBirthdayToday(birth BirthRecord, now time.Time) bool {
	return now.Month() == birth.Month && now.Day() == birth.Day
}
