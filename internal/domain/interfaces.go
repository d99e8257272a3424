package domain

import (
	"context"
	"time"
)

// PriceSource supplies raw daily prices for a set of symbols over an
// inclusive date range. Implementations may return dirty data (zeros,
// duplicates, gaps); cleaning and alignment happen downstream.
//
// A symbol with no known data should map to an empty slice; the aligner
// turns that into a DataError with the symbol's name.
type PriceSource interface {
	DailyPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]PricePoint, error)
}

// MetricEngine computes performance metrics from a date-matched return
// series and a daily risk-free rate. Two independent implementations run
// side by side so the reconciler can bound their divergence.
type MetricEngine interface {
	Name() EngineName
	Compute(series ReturnSeries, rfDaily float64) MetricResult
}
