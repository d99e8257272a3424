package formulas

import "math"

// DailyRiskFreeRate converts an annual risk-free rate (as a fraction, e.g.
// 0.05 for 5%) to a compounding daily rate on the 365-day calendar basis:
//
//	rf_daily = (1 + rf_annual)^(1/365) - 1
//
// Simple division by 365 is NOT equivalent and would understate the
// compounding effect; excess returns are computed against this daily rate
// uniformly, weekends and holidays included.
func DailyRiskFreeRate(annual float64) float64 {
	if annual == 0 {
		return 0
	}
	return math.Pow(1+annual, 1.0/PeriodsPerYear) - 1
}
