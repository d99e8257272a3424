// Package returns converts aligned price tables into date-matched daily
// return series.
package returns

import (
	"math"

	"github.com/aristath/quantfolio/internal/domain"
)

// Calculator derives simple daily returns from aligned prices and applies
// the date-matching truncation that keeps all symbols' analysis windows
// synchronized.
type Calculator struct{}

// New creates a return Calculator.
func New() *Calculator {
	return &Calculator{}
}

// Daily computes per-symbol simple returns r[t] = p[t]/p[t-1] - 1 over the
// aligned table, then truncates every series to the shared start date: the
// latest first-non-zero-return date across all symbols. Dead pre-listing or
// stale-price stretches would otherwise dilute the metrics and desynchronize
// the symbols' windows.
//
// Symbols whose returns are all zero put no constraint on the shared start;
// they stay in the table and are flagged in AllZero. Non-finite returns are
// replaced with 0 instead of dropping rows, preserving alignment.
func (c *Calculator) Daily(table *domain.PriceTable) (*domain.ReturnTable, error) {
	if table.Len() < 2 {
		return nil, &domain.InsufficientDataError{Have: table.Len(), Need: 2}
	}

	result := &domain.ReturnTable{
		Dates:   table.Dates[1:],
		Returns: make(map[string][]float64, len(table.Prices)),
		AllZero: make(map[string]bool),
	}

	sharedStart := 0
	for _, symbol := range table.Symbols() {
		values := simpleReturns(table.Prices[symbol])
		result.Returns[symbol] = values

		first := firstNonzeroIndex(values)
		if first < 0 {
			result.AllZero[symbol] = true
			continue
		}
		if first > sharedStart {
			sharedStart = first
		}
	}

	if sharedStart > 0 {
		result.Dates = result.Dates[sharedStart:]
		for symbol, values := range result.Returns {
			result.Returns[symbol] = values[sharedStart:]
		}
	}
	if len(result.AllZero) == 0 {
		result.AllZero = nil
	}
	return result, nil
}

// Cumulative computes per-symbol cumulative returns (1+r1)*...*(1+rt) - 1
// over the date-matched table, rebased so the series starts at the shared
// start date. Consumed by external charting and export collaborators.
func (c *Calculator) Cumulative(table *domain.ReturnTable) map[string][]float64 {
	cumulative := make(map[string][]float64, len(table.Returns))
	for symbol, values := range table.Returns {
		series := make([]float64, len(values))
		factor := 1.0
		for i, r := range values {
			factor *= 1 + r
			series[i] = factor - 1
		}
		cumulative[symbol] = series
	}
	return cumulative
}

func simpleReturns(prices []float64) []float64 {
	values := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		r := prices[i]/prices[i-1] - 1
		// Aligned prices are positive, but keep the fill-with-zero policy
		// for anything non-finite that slips through.
		if math.IsNaN(r) || math.IsInf(r, 0) {
			r = 0
		}
		values[i-1] = r
	}
	return values
}

func firstNonzeroIndex(values []float64) int {
	for i, r := range values {
		if r != 0 {
			return i
		}
	}
	return -1
}
