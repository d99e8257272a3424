package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriceTable_Symbols_Sorted(t *testing.T) {
	table := &PriceTable{
		Prices: map[string][]float64{
			"MSFT": {1},
			"AAPL": {1},
			"GOOG": {1},
		},
	}
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT"}, table.Symbols())
}

func TestReturnTable_Series(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	table := &ReturnTable{
		Dates:   dates,
		Returns: map[string][]float64{"AAPL": {0.01, -0.02}},
	}

	series := table.Series("AAPL")
	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, dates, series.Dates)
	assert.Equal(t, []float64{0.01, -0.02}, series.Values)
}

func TestMetricResult_TimeInMarket(t *testing.T) {
	result := MetricResult{SampleSize: 200, NonzeroReturns: 150}
	assert.InDelta(t, 0.75, result.TimeInMarket(), 1e-12)

	empty := MetricResult{}
	assert.Equal(t, 0.0, empty.TimeInMarket())
}

func TestMetricResult_IsDegenerate(t *testing.T) {
	result := MetricResult{Degenerate: []string{MetricSharpe, MetricSortino}}
	assert.True(t, result.IsDegenerate(MetricSharpe))
	assert.True(t, result.IsDegenerate(MetricSortino))
	assert.False(t, result.IsDegenerate(MetricCAGR))
}
