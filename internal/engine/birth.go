package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

var (
	// ErrInvalidInput reports a birth date later than the evaluation instant.
	// It is an expected user-input state: callers report the results as absent.
	ErrInvalidInput = errors.New(config.ErrDateFuture)

	// ErrMalformedDate reports text that is not a recognizable calendar date.
	ErrMalformedDate = errors.New(config.ErrDateParse)
)

// BirthRecord is a calendar date without a time component.
type BirthRecord struct {
	Year  int
	Month time.Month
	Day   int
}

// NewBirthRecord validates that year/month/day name an existing calendar day
// (e.g. rejects 2023-02-29).
func NewBirthRecord(year int, month time.Month, day int) (BirthRecord, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return BirthRecord{}, fmt.Errorf("%w: %s: %04d-%02d-%02d", ErrMalformedDate, config.ErrDateInvalid, year, int(month), day)
	}
	return BirthRecord{Year: year, Month: month, Day: day}, nil
}

// ParseBirthRecord accepts ISO dates plus the full-date forms found in vCard BDAY fields.
// Only the written calendar date is kept: a time of day or UTC offset is
// ignored and never shifts the day, so "2000-01-01T23:00:00-05:00" is
// 2000-01-01 even though that instant is already January 2 in UTC.
func ParseBirthRecord(value string) (BirthRecord, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			// time.Parse has already rejected impossible days. t stays in the
			// parsed offset, so these are the literal date fields.
			return BirthRecord{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
		}
	}

	return BirthRecord{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
}

// In returns midnight of the birth date in loc. The birth instant of a
// BirthRecord is always taken in the location of the instant it is compared to.
func (b BirthRecord) In(loc *time.Location) time.Time {
	return time.Date(b.Year, b.Month, b.Day, 0, 0, 0, 0, loc)
}

// IsAfter reports whether the birth date lies strictly after now.
func (b BirthRecord) IsAfter(now time.Time) bool {
	return b.In(now.Location()).After(now)
}

// String formats the record as YYYY-MM-DD.
func (b BirthRecord) String() string {
	return b.In(time.UTC).Format(config.DateFormatFullDash)
}

// MarshalText implements encoding.TextMarshaler.
func (b BirthRecord) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BirthRecord) UnmarshalText(text []byte) error {
	rec, err := ParseBirthRecord(string(text))
	if err != nil {
		return err
	}
	*b = rec
	return nil
}
