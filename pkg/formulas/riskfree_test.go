package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyRiskFreeRate_Compounding(t *testing.T) {
	got := DailyRiskFreeRate(0.05)

	expected := math.Pow(1.05, 1.0/365) - 1
	assert.InDelta(t, expected, got, 1e-15)

	// Compounding back up over a year recovers the annual rate.
	assert.InDelta(t, 0.05, math.Pow(1+got, 365)-1, 1e-12)
}

func TestDailyRiskFreeRate_NotSimpleDivision(t *testing.T) {
	got := DailyRiskFreeRate(0.05)

	naive := 0.05 / 365
	assert.Greater(t, math.Abs(got-naive), 1e-7, "simple division by 365 is the wrong convention")
	assert.Less(t, got, naive, "compounding daily rate is below the simple-division rate")
}

func TestDailyRiskFreeRate_Zero(t *testing.T) {
	assert.Equal(t, 0.0, DailyRiskFreeRate(0))
}
