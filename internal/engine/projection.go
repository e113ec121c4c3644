package engine

import (
	"math"

	"github.com/tartampluch/go-lifeclock/internal/config"
)

// LifeProjection estimates the remaining life against config.AverageLifespanYears.
type LifeProjection struct {
	// ExpectedYearsRemaining goes negative past the average lifespan; it is not clamped.
	ExpectedYearsRemaining int
	ExpectedDaysRemaining  int64
	// PercentComplete is clamped to [0, 100].
	PercentComplete float64
}

// Project computes the life projection for yearsElapsed completed years.
func Project(yearsElapsed int) LifeProjection {
	remaining := config.AverageLifespanYears - yearsElapsed

	percent := float64(yearsElapsed) / float64(config.AverageLifespanYears) * 100
	percent = math.Max(0, math.Min(percent, 100))

	return LifeProjection{
		ExpectedYearsRemaining: remaining,
		ExpectedDaysRemaining:  int64(math.Floor(float64(remaining) * config.DaysPerYear)),
		PercentComplete:        percent,
	}
}
