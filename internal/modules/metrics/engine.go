// Package metrics computes total return, CAGR, Sharpe and Sortino from
// date-matched return series.
//
// Two engines implement domain.MetricEngine: CustomEngine carries the
// in-house methodology and ReferenceEngine an independent one built on
// gonum/stat. They share conventions (365-day annualization, compounding
// risk-free de-annualization, sample standard deviation) but differ in
// their internal filtering, most visibly in the Sortino denominator; the
// reconciler exists to bound that divergence, not to eliminate it.
package metrics

import (
	"math"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// annualizationFactor scales a daily ratio to annual terms on the calendar
// basis used throughout the pipeline.
var annualizationFactor = math.Sqrt(formulas.PeriodsPerYear)

// newResult seeds a MetricResult with the series metadata every engine
// reports identically.
func newResult(series domain.ReturnSeries, engine domain.EngineName) domain.MetricResult {
	result := domain.MetricResult{
		Symbol:         series.Symbol,
		Engine:         engine,
		SampleSize:     len(series.Values),
		NonzeroReturns: formulas.CountNonzero(series.Values),
	}
	if len(series.Dates) > 0 {
		result.PeriodStart = series.Dates[0]
		result.PeriodEnd = series.Dates[len(series.Dates)-1]
	}
	return result
}

// yearFrac returns the fractional number of years covered by the series,
// using average-length years (365.25 days) for leap-year awareness.
func yearFrac(series domain.ReturnSeries) float64 {
	if len(series.Dates) < 2 {
		return 0
	}
	last := series.Dates[len(series.Dates)-1]
	return last.Sub(series.Dates[0]).Seconds() / formulas.SecondsPerYear
}

// finite reports whether v is a usable metric value.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ptr(v float64) *float64 {
	return &v
}
