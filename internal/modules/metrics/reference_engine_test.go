package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

func TestReferenceEngine_AgreesWithCustomOnTotalReturn(t *testing.T) {
	values := []float64{0.01, -0.02, 0.015, 0.005, -0.01}

	custom := NewCustomEngine().Compute(series(values), 0)
	reference := NewReferenceEngine().Compute(series(values), 0)

	assert.InDelta(t, custom.TotalReturn, reference.TotalReturn, 1e-12)
}

func TestReferenceEngine_AgreesWithCustomOnCAGR(t *testing.T) {
	custom := NewCustomEngine().Compute(spanSeries([]float64{0.1, 0, 0}, 1), 0)
	reference := NewReferenceEngine().Compute(spanSeries([]float64{0.1, 0, 0}, 1), 0)

	require.NotNil(t, custom.CAGR)
	require.NotNil(t, reference.CAGR)
	assert.InDelta(t, *custom.CAGR, *reference.CAGR, 1e-9)
}

func TestReferenceEngine_SharpeMatchesGonum(t *testing.T) {
	values := []float64{0.01, -0.02, 0.015, 0.005, -0.01, 0.002}
	rfDaily := formulas.DailyRiskFreeRate(0.05)

	result := NewReferenceEngine().Compute(series(values), rfDaily)

	excess := formulas.ExcessReturns(values, rfDaily)
	expected := stat.Mean(excess, nil) / stat.StdDev(excess, nil) * math.Sqrt(365)
	require.NotNil(t, result.Sharpe)
	assert.InDelta(t, expected, *result.Sharpe, 1e-12)
}

func TestReferenceEngine_SortinoUsesClippedSampleDeviation(t *testing.T) {
	values := []float64{0.01, -0.02, 0.01, -0.01, 0.005}

	custom := NewCustomEngine().Compute(series(values), 0)
	reference := NewReferenceEngine().Compute(series(values), 0)

	require.NotNil(t, custom.Sortino)
	require.NotNil(t, reference.Sortino)

	// Clip from the second observation on, sample standard deviation.
	clipped := []float64{math.Min(-0.02, 0), 0, math.Min(-0.01, 0), 0}
	expected := stat.Mean(values, nil) / stat.StdDev(clipped, nil) * math.Sqrt(365)
	assert.InDelta(t, expected, *reference.Sortino, 1e-9)

	// The methodologies are expected to disagree here; that is what the
	// reconciler is for.
	assert.Greater(t, math.Abs(*custom.Sortino-*reference.Sortino), 1e-6)
}

func TestReferenceEngine_ZeroVarianceDegenerate(t *testing.T) {
	result := NewReferenceEngine().Compute(series([]float64{0.02, 0.02, 0.02}), 0)

	assert.Nil(t, result.Sharpe)
	assert.True(t, result.IsDegenerate(domain.MetricSharpe))
}

func TestReferenceEngine_SortinoNeedsThreeObservations(t *testing.T) {
	result := NewReferenceEngine().Compute(series([]float64{0.01, -0.02}), 0)

	assert.Nil(t, result.Sortino)
	assert.True(t, result.IsDegenerate(domain.MetricSortino))
}

func TestReferenceEngine_FullYearScenarioFinite(t *testing.T) {
	values := make([]float64, 252)
	for i := range values {
		if i%4 == 3 {
			values[i] = -0.006
		} else {
			values[i] = 0.004
		}
	}
	rfDaily := formulas.DailyRiskFreeRate(0.05)

	result := NewReferenceEngine().Compute(series(values), rfDaily)

	require.NotNil(t, result.Sharpe)
	require.NotNil(t, result.Sortino)
	require.NotNil(t, result.CAGR)
	assert.Empty(t, result.Degenerate)
}
