package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeclock/internal/engine"
)

func TestParseBirthRecord(t *testing.T) {
	tests := []struct {
		input string
		want  engine.BirthRecord
	}{
		{"2000-01-01", birthOf(2000, time.January, 1)},
		{"19960229", birthOf(1996, time.February, 29)},
		{"1990-05-01T23:30:00+02:00", birthOf(1990, time.May, 1)},
		{"1990-05-01T10:00:00Z", birthOf(1990, time.May, 1)},
		// The offset never moves the date into UTC's calendar day.
		{"2000-01-01T23:00:00-05:00", birthOf(2000, time.January, 1)},
		{"2000-01-01T01:00:00+09:00", birthOf(2000, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := engine.ParseBirthRecord(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBirthRecord_Rejects(t *testing.T) {
	for _, input := range []string{"", "--06-15", "2023-02-29", "2024-13-01", "15/06/2024"} {
		_, err := engine.ParseBirthRecord(input)
		assert.ErrorIs(t, err, engine.ErrMalformedDate, "input %q", input)
	}
}

func TestNewBirthRecord(t *testing.T) {
	rec, err := engine.NewBirthRecord(2024, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", rec.String())

	_, err = engine.NewBirthRecord(2023, time.February, 29)
	assert.ErrorIs(t, err, engine.ErrMalformedDate)
}

func TestBirthRecord_Text(t *testing.T) {
	var rec engine.BirthRecord
	require.NoError(t, rec.UnmarshalText([]byte("1984-10-15")))

	text, err := rec.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1984-10-15", string(text))

	assert.Error(t, rec.UnmarshalText([]byte("soon")))
	assert.Equal(t, "1984-10-15", rec.String(), "failed unmarshal leaves the record untouched")
}

func TestBirthRecord_IsAfter(t *testing.T) {
	rec := birthOf(2024, time.June, 15)

	assert.False(t, rec.IsAfter(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, rec.IsAfter(time.Date(2024, 6, 14, 23, 59, 59, 0, time.UTC)))
}
