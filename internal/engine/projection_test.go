package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeclock/internal/engine"
)

func TestProject(t *testing.T) {
	tests := []struct {
		years       int
		wantYears   int
		wantDays    int64
		wantPercent float64
	}{
		{years: 30, wantYears: 40, wantDays: 14610, wantPercent: 42.857142857},
		{years: 0, wantYears: 70, wantDays: 25567, wantPercent: 0},
		{years: 70, wantYears: 0, wantDays: 0, wantPercent: 100},
		// Past the average: remaining years go negative, the percentage stays at 100.
		{years: 85, wantYears: -15, wantDays: -5479, wantPercent: 100},
	}

	for _, tt := range tests {
		p := engine.Project(tt.years)

		assert.Equal(t, tt.wantYears, p.ExpectedYearsRemaining, "years=%d", tt.years)
		assert.Equal(t, tt.wantDays, p.ExpectedDaysRemaining, "years=%d", tt.years)
		assert.InDelta(t, tt.wantPercent, p.PercentComplete, 1e-6, "years=%d", tt.years)
	}
}
