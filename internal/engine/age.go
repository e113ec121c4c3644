package engine

import (
	"math"
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

// TotalCounters are the absolute, never-wrapping counters of an age.
type TotalCounters struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64

	// Heartbeats and Breaths accumulate a fractional per-second rate between
	// full recomputes. Read them through HeartbeatCount and BreathCount.
	Heartbeats float64
	Breaths    float64

	SleepDays int64
}

// HeartbeatCount is the floored heartbeat estimate.
func (t TotalCounters) HeartbeatCount() int64 {
	return int64(math.Floor(t.Heartbeats))
}

// BreathCount is the floored breath estimate.
func (t TotalCounters) BreathCount() int64 {
	return int64(math.Floor(t.Breaths))
}

// AgeSnapshot is an age evaluated at instant At.
//
// Years/Months/Days come from the calendar breakdown while Hours/Minutes/Seconds
// are the hour, minute and second remainders of the raw elapsed duration. The two
// decompositions are independent.
type AgeSnapshot struct {
	At time.Time

	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int

	Total TotalCounters
}

// ComputeAge evaluates the age of birth at now. It returns ErrInvalidInput when
// birth is later than now.
func ComputeAge(birth BirthRecord, now time.Time) (AgeSnapshot, error) {
	if birth.IsAfter(now) {
		return AgeSnapshot{}, ErrInvalidInput
	}

	raw := Diff(birth.In(now.Location()), now)
	cal := CalendarBreakdown(birth, now)

	return AgeSnapshot{
		At:      now,
		Years:   cal.Years,
		Months:  cal.Months,
		Days:    cal.Days,
		Hours:   int(raw.TotalHours % config.HoursPerDay),
		Minutes: int(raw.TotalMinutes % config.MinutesPerHour),
		Seconds: int(raw.TotalSeconds % config.SecondsPerMinute),
		Total: TotalCounters{
			Days:       raw.TotalDays,
			Hours:      raw.TotalHours,
			Minutes:    raw.TotalMinutes,
			Seconds:    raw.TotalSeconds,
			Heartbeats: math.Floor(float64(raw.TotalSeconds) * config.HeartbeatsPerSecond),
			Breaths:    math.Floor(float64(raw.TotalSeconds) * config.BreathsPerSecond),
			SleepDays:  sleepDays(raw.TotalDays),
		},
	}, nil
}

// sleepDays estimates the days spent asleep out of totalDays.
func sleepDays(totalDays int64) int64 {
	return int64(math.Floor(float64(totalDays) * config.SleepFraction))
}
