// Package domain provides core domain models and types.
package domain

import (
	"sort"
	"time"
)

// EngineName identifies the methodology that produced a MetricResult.
type EngineName string

const (
	// EngineCustom is the in-house metric methodology.
	EngineCustom EngineName = "custom"
	// EngineReference is the independent reference methodology used for
	// cross-validation.
	EngineReference EngineName = "reference"
)

// Metric names used in MetricResult.Degenerate and reconciliation reports.
const (
	MetricTotalReturn = "total_return"
	MetricCAGR        = "cagr"
	MetricSharpe      = "sharpe"
	MetricSortino     = "sortino"
)

// PricePoint is a single raw daily price observation for one symbol.
// Raw points may still contain zeros, negatives or duplicate dates; the
// aligner owns cleaning.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceTable holds aligned daily close prices for a set of symbols.
//
// Invariants once finalized: Dates are strictly increasing, every symbol has
// exactly len(Dates) prices and every price is positive.
type PriceTable struct {
	Dates  []time.Time          `json:"dates"`
	Prices map[string][]float64 `json:"prices"`
}

// Len returns the number of dates in the table.
func (t *PriceTable) Len() int {
	return len(t.Dates)
}

// Symbols returns the table's symbols in sorted order.
func (t *PriceTable) Symbols() []string {
	symbols := make([]string, 0, len(t.Prices))
	for symbol := range t.Prices {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// ReturnSeries holds daily simple returns for one symbol.
type ReturnSeries struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// ReturnTable holds the date-matched daily returns for all symbols of an
// analysis. All series share the same date index. AllZero flags symbols
// whose returns were all zero; they are kept in the table but were excluded
// from the shared-start computation.
type ReturnTable struct {
	Dates   []time.Time          `json:"dates"`
	Returns map[string][]float64 `json:"returns"`
	AllZero map[string]bool      `json:"all_zero,omitempty"`
}

// Len returns the number of observations per symbol.
func (t *ReturnTable) Len() int {
	return len(t.Dates)
}

// Symbols returns the table's symbols in sorted order.
func (t *ReturnTable) Symbols() []string {
	symbols := make([]string, 0, len(t.Returns))
	for symbol := range t.Returns {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Series extracts one symbol's return series. The returned slices share the
// table's backing arrays and must be treated as read-only.
func (t *ReturnTable) Series(symbol string) ReturnSeries {
	return ReturnSeries{
		Symbol: symbol,
		Dates:  t.Dates,
		Values: t.Returns[symbol],
	}
}

// MetricResult holds the performance metrics computed by one engine for one
// symbol's return series.
//
// CAGR, Sharpe and Sortino are nil when the metric is degenerate (for
// example a zero-variance series makes Sharpe undefined). Degenerate lists
// the affected metric names. Degeneracy is advisory: it never fails the
// analysis.
type MetricResult struct {
	Symbol         string     `json:"symbol"`
	Engine         EngineName `json:"engine"`
	PeriodStart    time.Time  `json:"period_start"`
	PeriodEnd      time.Time  `json:"period_end"`
	SampleSize     int        `json:"sample_size"`
	NonzeroReturns int        `json:"nonzero_returns"`
	TotalReturn    float64    `json:"total_return"`
	CAGR           *float64   `json:"cagr"`
	Sharpe         *float64   `json:"sharpe"`
	Sortino        *float64   `json:"sortino"`
	Degenerate     []string   `json:"degenerate,omitempty"`
}

// TimeInMarket returns the fraction of observations with a meaningful
// non-zero return, a data-quality diagnostic.
func (m *MetricResult) TimeInMarket() float64 {
	if m.SampleSize == 0 {
		return 0
	}
	return float64(m.NonzeroReturns) / float64(m.SampleSize)
}

// IsDegenerate reports whether the named metric was flagged degenerate.
func (m *MetricResult) IsDegenerate(metric string) bool {
	for _, name := range m.Degenerate {
		if name == metric {
			return true
		}
	}
	return false
}
