package metrics

import (
	"math"

	"github.com/aristath/quantfolio/internal/domain"
	"github.com/aristath/quantfolio/pkg/formulas"
)

// CustomEngine is the in-house metric methodology. All statistics are
// computed with explicit loops so the engine stays numerically independent
// from the gonum-backed reference engine it is reconciled against.
type CustomEngine struct{}

// NewCustomEngine creates the in-house metric engine.
func NewCustomEngine() *CustomEngine {
	return &CustomEngine{}
}

// Name implements domain.MetricEngine.
func (e *CustomEngine) Name() domain.EngineName {
	return domain.EngineCustom
}

// Compute calculates all metrics for one symbol's date-matched returns.
// Degenerate metrics (zero variance, no downside, empty period) are
// reported as nil with a flag; they never abort the other metrics.
func (e *CustomEngine) Compute(series domain.ReturnSeries, rfDaily float64) domain.MetricResult {
	result := newResult(series, domain.EngineCustom)

	result.TotalReturn = e.totalReturn(series.Values)

	if cagr, ok := e.cagr(series); ok {
		result.CAGR = ptr(cagr)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricCAGR)
	}

	excess := formulas.ExcessReturns(series.Values, rfDaily)

	if sharpe, ok := e.sharpe(excess); ok {
		result.Sharpe = ptr(sharpe)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricSharpe)
	}

	if sortino, ok := e.sortino(excess); ok {
		result.Sortino = ptr(sortino)
	} else {
		result.Degenerate = append(result.Degenerate, domain.MetricSortino)
	}

	return result
}

// totalReturn compounds the raw (not excess) returns: (1+r1)*...*(1+rn) - 1.
func (e *CustomEngine) totalReturn(values []float64) float64 {
	factor := 1.0
	for _, r := range values {
		factor *= 1 + r
	}
	return factor - 1
}

// cagr annualizes the compounded total return over the fractional number of
// years between the first and last observation date.
func (e *CustomEngine) cagr(series domain.ReturnSeries) (float64, bool) {
	if len(series.Values) < 2 {
		return 0, false
	}
	years := yearFrac(series)
	if years <= 0 {
		return 0, false
	}
	factor := 1 + e.totalReturn(series.Values)
	if factor <= 0 {
		return 0, false
	}
	cagr := math.Pow(factor, 1/years) - 1
	return cagr, finite(cagr)
}

// sharpe is mean(excess) / stddev(excess, ddof=1), annualized by sqrt(365).
// A zero-variance series makes the ratio undefined.
func (e *CustomEngine) sharpe(excess []float64) (float64, bool) {
	if len(excess) < 2 {
		return 0, false
	}
	mean := e.mean(excess)
	var sumSquares float64
	for _, r := range excess {
		d := r - mean
		sumSquares += d * d
	}
	std := math.Sqrt(sumSquares / float64(len(excess)-1))
	if std == 0 || math.IsNaN(std) {
		return 0, false
	}
	sharpe := mean / std * annualizationFactor
	return sharpe, finite(sharpe)
}

// sortino is mean(excess) / downsideDeviation, annualized by sqrt(365).
// The downside deviation divides by the TOTAL observation count, not the
// number of negative observations; this asymmetric denominator is part of
// the methodology, not a bug.
func (e *CustomEngine) sortino(excess []float64) (float64, bool) {
	if len(excess) < 2 {
		return 0, false
	}
	var sumSquares float64
	downside := 0
	for _, r := range excess {
		if r < 0 {
			sumSquares += r * r
			downside++
		}
	}
	if downside == 0 {
		return 0, false
	}
	deviation := math.Sqrt(sumSquares / float64(len(excess)))
	if deviation == 0 || math.IsNaN(deviation) {
		return 0, false
	}
	sortino := e.mean(excess) / deviation * annualizationFactor
	return sortino, finite(sortino)
}

func (e *CustomEngine) mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
