package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeclock/internal/engine"
)

// assertEquivalent compares an incrementally ticked state with a full recompute.
// Heartbeats and breaths are accumulators and may differ by one unit.
func assertEquivalent(t *testing.T, want, got engine.State) bool {
	t.Helper()

	ok := assert.True(t, want.Age.At.Equal(got.Age.At), "instant %s vs %s", want.Age.At, got.Age.At)
	wa, ga := want.Age, got.Age
	ok = ok && assert.Equal(t,
		[]int{wa.Years, wa.Months, wa.Days, wa.Hours, wa.Minutes, wa.Seconds},
		[]int{ga.Years, ga.Months, ga.Days, ga.Hours, ga.Minutes, ga.Seconds},
		"calendar fields at %s", want.Age.At)
	ok = ok && assert.Equal(t,
		[]int64{wa.Total.Days, wa.Total.Hours, wa.Total.Minutes, wa.Total.Seconds, wa.Total.SleepDays},
		[]int64{ga.Total.Days, ga.Total.Hours, ga.Total.Minutes, ga.Total.Seconds, ga.Total.SleepDays},
		"totals at %s", want.Age.At)
	ok = ok && assert.InDelta(t, wa.Total.HeartbeatCount(), ga.Total.HeartbeatCount(), 1)
	ok = ok && assert.InDelta(t, wa.Total.BreathCount(), ga.Total.BreathCount(), 1)
	ok = ok && assert.Equal(t, want.Countdown, got.Countdown, "countdown at %s", want.Age.At)
	ok = ok && assert.Equal(t, want.Life, got.Life)
	ok = ok && assert.Equal(t, want.BirthdayToday, got.BirthdayToday, "birthday flag at %s", want.Age.At)
	return ok
}

// TestTick_EquivalentToRecompute ticks through month, year, leap-day and
// anniversary boundaries and checks every intermediate state.
func TestTick_EquivalentToRecompute(t *testing.T) {
	tests := []struct {
		name  string
		birth engine.BirthRecord
		start time.Time
		ticks int
	}{
		{
			name:  "Into a leap day and out of February",
			birth: birthOf(2000, time.January, 31),
			start: time.Date(2024, 2, 28, 23, 59, 50, 0, time.UTC),
			ticks: 2*86400 + 30,
		},
		{
			name:  "New Year's Eve birthday and year change",
			birth: birthOf(1990, time.December, 31),
			start: time.Date(2024, 12, 30, 23, 59, 30, 0, time.UTC),
			ticks: 2*86400 + 60,
		},
		{
			name:  "Leapling anniversary in a common year",
			birth: birthOf(1996, time.February, 29),
			start: time.Date(2023, 2, 28, 23, 59, 58, 0, time.UTC),
			ticks: 86400 + 10,
		},
		{
			name:  "Fractional start instant",
			birth: birthOf(2000, time.January, 1),
			start: time.Date(2024, 6, 15, 23, 59, 30, 750_000_000, time.UTC),
			ticks: 3600,
		},
		{
			name:  "Born today",
			birth: birthOf(2024, time.June, 15),
			start: time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC),
			ticks: 2 * 3600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := engine.Recompute(tt.birth, tt.start)
			require.NoError(t, err)

			for k := 1; k <= tt.ticks; k++ {
				state = state.Tick()

				want, err := engine.Recompute(tt.birth, tt.start.Add(time.Duration(k)*time.Second))
				require.NoError(t, err)
				if !assertEquivalent(t, want, state) {
					t.Fatalf("diverged after %d ticks", k)
				}
			}
		})
	}
}

// TestTick_LongRun checks equivalence after a month of ticks without intermediate
// recomputes, where accumulated rounding would show.
func TestTick_LongRun(t *testing.T) {
	birth := birthOf(1975, time.March, 31)
	start := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	const ticks = 31 * 86400

	state, err := engine.Recompute(birth, start)
	require.NoError(t, err)

	prevSleep := state.Age.Total.SleepDays
	for k := 0; k < ticks; k++ {
		state = state.Tick()
		if state.Age.Total.SleepDays < prevSleep {
			t.Fatalf("sleep estimate decreased after %d ticks", k+1)
		}
		prevSleep = state.Age.Total.SleepDays
	}

	want, err := engine.Recompute(birth, start.Add(ticks*time.Second))
	require.NoError(t, err)
	assertEquivalent(t, want, state)
}

// TestTick_CountdownCycle verifies the countdown decreases by exactly one second
// per tick and restarts from a fresh next-year countdown at the anniversary.
func TestTick_CountdownCycle(t *testing.T) {
	birth := birthOf(1990, time.June, 20)
	start := time.Date(2025, 6, 19, 23, 0, 0, 0, time.UTC)

	state, err := engine.Recompute(birth, start)
	require.NoError(t, err)
	require.Equal(t, time.Hour, state.Countdown.Remaining())

	rolled := false
	for k := 1; k <= 2*3600; k++ {
		prev := state.Countdown
		state = state.Tick()

		if state.Countdown.Target.Equal(prev.Target) {
			require.Equal(t, prev.Remaining()-time.Second, state.Countdown.Remaining(), "tick %d", k)
			continue
		}

		// The only target change is the anniversary itself.
		require.False(t, rolled, "rolled over twice")
		rolled = true
		assert.Equal(t, 3600, k)
		assert.Equal(t, time.Second, prev.Remaining())
		assert.Equal(t, engine.ComputeCountdown(birth, state.At()), state.Countdown)
		assert.Equal(t, time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), state.Countdown.Target)
		assert.True(t, state.BirthdayToday, "flag turns on at midnight")
	}
	assert.True(t, rolled)
}

func TestTick_DisplayFieldsStayInRange(t *testing.T) {
	state, err := engine.Recompute(birthOf(1999, time.December, 31), time.Date(2025, 12, 31, 22, 58, 0, 0, time.UTC))
	require.NoError(t, err)

	for k := 0; k < 3*3600; k++ {
		state = state.Tick()
		a := state.Age
		require.True(t, a.Seconds >= 0 && a.Seconds <= 59)
		require.True(t, a.Minutes >= 0 && a.Minutes <= 59)
		require.True(t, a.Hours >= 0 && a.Hours <= 23)
		require.True(t, state.Countdown.Seconds >= 0 && state.Countdown.Minutes >= 0 && state.Countdown.Hours >= 0 && state.Countdown.Days >= 0)
	}
}

func TestTick_DoesNotModifyReceiver(t *testing.T) {
	state, err := engine.Recompute(birthOf(2000, time.January, 1), time.Date(2024, 6, 15, 10, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	before := state

	next := state.Tick()

	assert.Equal(t, before, state)
	assert.Equal(t, 11, next.Age.Hours)
	assert.Equal(t, 0, next.Age.Minutes)
	assert.Equal(t, 0, next.Age.Seconds)
	assert.InDelta(t, state.Age.Total.Heartbeats+1.2, next.Age.Total.Heartbeats, 1e-9)
	assert.InDelta(t, state.Age.Total.Breaths+0.267, next.Age.Total.Breaths, 1e-9)
}
