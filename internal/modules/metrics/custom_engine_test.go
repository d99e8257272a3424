package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

var base = time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

// series builds a ReturnSeries on consecutive calendar days.
func series(values []float64) domain.ReturnSeries {
	datesList := make([]time.Time, len(values))
	for i := range values {
		datesList[i] = base.AddDate(0, 0, i)
	}
	return domain.ReturnSeries{Symbol: "TEST", Dates: datesList, Values: values}
}

// spanSeries builds a ReturnSeries whose dates span exactly the given
// number of average years (365.25 days each).
func spanSeries(values []float64, years float64) domain.ReturnSeries {
	datesList := make([]time.Time, len(values))
	datesList[0] = base
	span := time.Duration(years * 365.25 * 24 * float64(time.Hour))
	step := span / time.Duration(len(values)-1)
	for i := 1; i < len(values); i++ {
		datesList[i] = base.Add(step * time.Duration(i))
	}
	// Pin the last date so rounding in the step cannot shift the span.
	datesList[len(values)-1] = base.Add(span)
	return domain.ReturnSeries{Symbol: "TEST", Dates: datesList, Values: values}
}

func TestCustomEngine_TotalReturn(t *testing.T) {
	result := NewCustomEngine().Compute(series([]float64{0.1, -0.1, 0.05}), 0)

	assert.InDelta(t, 1.1*0.9*1.05-1, result.TotalReturn, 1e-12)
	assert.Equal(t, domain.EngineCustom, result.Engine)
	assert.Equal(t, 3, result.SampleSize)
	assert.Equal(t, 3, result.NonzeroReturns)
}

func TestCustomEngine_CAGR_OneYearFlatTenPercent(t *testing.T) {
	// 10% total return over exactly one average year: CAGR is 10%.
	result := NewCustomEngine().Compute(spanSeries([]float64{0.1, 0, 0}, 1), 0)

	require.NotNil(t, result.CAGR)
	assert.InDelta(t, 0.10, *result.CAGR, 1e-9)
}

func TestCustomEngine_CAGR_TwoYearCompounding(t *testing.T) {
	// The same 10% total return over two years compounds down to
	// (1.1)^(1/2) - 1 ≈ 4.88%.
	result := NewCustomEngine().Compute(spanSeries([]float64{0.1, 0, 0}, 2), 0)

	require.NotNil(t, result.CAGR)
	assert.InDelta(t, math.Sqrt(1.1)-1, *result.CAGR, 1e-9)
	assert.InDelta(t, 0.0488, *result.CAGR, 1e-4)
}

func TestCustomEngine_CAGR_SingleObservationDegenerate(t *testing.T) {
	result := NewCustomEngine().Compute(series([]float64{0.1}), 0)

	assert.Nil(t, result.CAGR)
	assert.True(t, result.IsDegenerate(domain.MetricCAGR))
}

func TestCustomEngine_Sharpe_ZeroVarianceDegenerate(t *testing.T) {
	// Constant returns have zero variance: Sharpe must be flagged, never
	// inf and never a crash.
	result := NewCustomEngine().Compute(series([]float64{0.01, 0.01, 0.01, 0.01}), 0)

	assert.Nil(t, result.Sharpe)
	assert.True(t, result.IsDegenerate(domain.MetricSharpe))
	assert.NotNil(t, result.CAGR, "other metrics still reported")
}

func TestCustomEngine_Sharpe_Manual(t *testing.T) {
	values := []float64{0.01, -0.02, 0.015, 0.005, -0.01}
	rfDaily := formulas.DailyRiskFreeRate(0.05)

	result := NewCustomEngine().Compute(series(values), rfDaily)

	excess := formulas.ExcessReturns(values, rfDaily)
	expected := formulas.Mean(excess) / formulas.StdDev(excess) * math.Sqrt(365)
	require.NotNil(t, result.Sharpe)
	assert.InDelta(t, expected, *result.Sharpe, 1e-9)
}

func TestCustomEngine_Sortino_TotalCountDenominator(t *testing.T) {
	// For [0.01, -0.02, 0.01, -0.01] the downside deviation divides by 4
	// observations, not by the 2 negative ones.
	values := []float64{0.01, -0.02, 0.01, -0.01}

	result := NewCustomEngine().Compute(series(values), 0)

	mean := (0.01 - 0.02 + 0.01 - 0.01) / 4
	deviation := math.Sqrt((0.02*0.02 + 0.01*0.01) / 4)
	expected := mean / deviation * math.Sqrt(365)
	require.NotNil(t, result.Sortino)
	assert.InDelta(t, expected, *result.Sortino, 1e-9)

	wrongDeviation := math.Sqrt((0.02*0.02 + 0.01*0.01) / 2)
	wrong := mean / wrongDeviation * math.Sqrt(365)
	assert.Greater(t, math.Abs(*result.Sortino-wrong), 1e-3)
}

func TestCustomEngine_Sortino_NoDownsideDegenerate(t *testing.T) {
	result := NewCustomEngine().Compute(series([]float64{0.01, 0.02, 0.005}), 0)

	assert.Nil(t, result.Sortino)
	assert.True(t, result.IsDegenerate(domain.MetricSortino))
}

func TestCustomEngine_FullYearScenario(t *testing.T) {
	// 252 daily observations with a mild upward drift and regular
	// drawdowns, rf 5% annual: everything must come out finite.
	values := make([]float64, 252)
	for i := range values {
		if i%3 == 2 {
			values[i] = -0.004
		} else {
			values[i] = 0.005
		}
	}
	rfDaily := formulas.DailyRiskFreeRate(0.05)

	result := NewCustomEngine().Compute(series(values), rfDaily)

	require.NotNil(t, result.Sharpe)
	require.NotNil(t, result.Sortino)
	require.NotNil(t, result.CAGR)
	assert.False(t, math.IsNaN(*result.Sharpe))
	assert.False(t, math.IsInf(*result.Sortino, 0))
	assert.Empty(t, result.Degenerate)
	assert.Equal(t, 252, result.SampleSize)
	assert.Equal(t, 1.0, result.TimeInMarket())

	// CAGR cross-check against the closed form over 251 elapsed days.
	total := result.TotalReturn
	years := 251.0 * 24 * 3600 / formulas.SecondsPerYear
	assert.InDelta(t, math.Pow(1+total, 1/years)-1, *result.CAGR, 1e-9)
}
