// Package formulas provides shared numeric primitives for performance
// metric calculations.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PeriodsPerYear is the annualization basis for daily data. Calendar days,
// not the 252 trading-day convention: the whole pipeline uses the 365-day
// convention so that ratios stay comparable with the reference methodology.
const PeriodsPerYear = 365.0

// SecondsPerYear is the average number of seconds in a year (leap-year
// aware), used for fractional-year CAGR.
const SecondsPerYear = 365.25 * 24 * 60 * 60

// NonzeroEpsilon is the threshold below which a return counts as zero for
// the time-in-market diagnostic.
const NonzeroEpsilon = 1e-8

// Mean calculates the arithmetic mean of a slice of float64 values.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (ddof=1) of a slice of
// float64 values.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Correlation calculates the Pearson correlation coefficient between two
// equally sized datasets.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}
	return stat.Correlation(x, y, nil)
}

// CompoundGrowth returns the compounded growth factor (1+r1)*(1+r2)*...*(1+rn).
func CompoundGrowth(returns []float64) float64 {
	factor := 1.0
	for _, r := range returns {
		factor *= 1 + r
	}
	return factor
}

// DownsideDeviation returns sqrt(sum(negative returns squared) / N) where N
// is the total observation count, not the count of negative observations.
// The total-count denominator is the Sortino convention this pipeline
// reports and must not be "fixed" to the downside count.
func DownsideDeviation(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	var sumSquares float64
	for _, r := range returns {
		if r < 0 {
			sumSquares += r * r
		}
	}
	return math.Sqrt(sumSquares / float64(len(returns)))
}

// ExcessReturns subtracts a constant daily risk-free rate from every
// observation.
func ExcessReturns(returns []float64, rfDaily float64) []float64 {
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfDaily
	}
	return excess
}

// CountNonzero returns the number of observations with magnitude above
// NonzeroEpsilon.
func CountNonzero(returns []float64) int {
	count := 0
	for _, r := range returns {
		if math.Abs(r) > NonzeroEpsilon {
			count++
		}
	}
	return count
}
