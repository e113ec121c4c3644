package engine

import (
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

// RawDuration is an elapsed time expressed in nested absolute units.
// Every field is a truncating division of the one before it.
type RawDuration struct {
	TotalSeconds int64
	TotalMinutes int64
	TotalHours   int64
	TotalDays    int64
}

// Breakdown is the calendar decomposition of an age.
type Breakdown struct {
	Years  int
	Months int
	Days   int
}

// Diff decomposes to-from in milliseconds down through seconds, minutes, hours
// and days. No rounding is applied at any level.
func Diff(from, to time.Time) RawDuration {
	ms := to.Sub(from).Milliseconds()

	seconds := ms / 1000
	minutes := seconds / config.SecondsPerMinute
	hours := minutes / config.MinutesPerHour
	days := hours / config.HoursPerDay

	return RawDuration{
		TotalSeconds: seconds,
		TotalMinutes: minutes,
		TotalHours:   hours,
		TotalDays:    days,
	}
}

// CalendarBreakdown returns the years/months/days between birth and the calendar
// date of now.
//
// The day remainder is borrowed first, from the month preceding now's month, and
// only then the month remainder from the year. Swapping the two borrows gives
// wrong results around month and year boundaries.
func CalendarBreakdown(birth BirthRecord, now time.Time) Breakdown {
	years := now.Year() - birth.Year
	months := int(now.Month()) - int(birth.Month)
	days := now.Day() - birth.Day

	if days < 0 {
		months--
		days += daysInPrecedingMonth(now)
		// Birth day beyond the end of the preceding month (Jan 31 -> Mar 1).
		if days < 0 {
			days = 0
		}
	}

	if months < 0 {
		years--
		months += config.MonthsPerYear
	}

	return Breakdown{Years: years, Months: months, Days: days}
}

// daysInPrecedingMonth returns the length of the month before now's month, in now's year.
// Day 0 of a month normalizes to the last day of the previous one.
func daysInPrecedingMonth(now time.Time) int {
	return time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, time.UTC).Day()
}

// sameDate reports whether a and b fall on the same calendar day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
